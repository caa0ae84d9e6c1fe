package repository

import (
	"strings"
	"testing"
	"time"

	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func TestQuoteItemRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 2, 3, 12, 30, 0, 0, time.UTC)
	q := entities.Quote{
		ID:           "id-1",
		QuoteID:      "Q-2026-001",
		Status:       entities.QuoteStatusPreview,
		CompanyName:  "Acme GmbH",
		ContactName:  "Jamie",
		ContactEmail: "jamie@acme.example",
		LineItems: []entities.LineItem{
			{Category: "standard", Quantity: 4, UnitPrice: decimal.NewFromFloat(108.5), Subtotal: decimal.NewFromInt(434)},
		},
		ImplementationPrice: decimal.NewFromInt(1000),
		Timeline: []entities.TimelineEvent{
			{Type: entities.EventCreated, Timestamp: createdAt, Actor: "alice", Detail: "quote created"},
		},
		CreatedBy: "alice",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Version:   3,
	}

	got := fromQuoteItem(toQuoteItem(q))

	if got.ID != q.ID || got.QuoteID != q.QuoteID || got.Status != q.Status {
		t.Fatalf("identity fields lost: %+v", got)
	}
	if len(got.LineItems) != 1 || !got.LineItems[0].UnitPrice.Equal(decimal.NewFromFloat(108.5)) {
		t.Fatalf("line items lost precision: %+v", got.LineItems)
	}
	if !got.ImplementationPrice.Equal(q.ImplementationPrice) {
		t.Fatalf("implementation price changed: %s", got.ImplementationPrice)
	}
	if len(got.Timeline) != 1 || got.Timeline[0].Type != entities.EventCreated {
		t.Fatalf("timeline lost: %+v", got.Timeline)
	}
	if !got.Timeline[0].Timestamp.Equal(createdAt) {
		t.Fatalf("timestamp changed: %v", got.Timeline[0].Timestamp)
	}
	if !got.CreatedAt.Equal(createdAt) || got.Version != 3 {
		t.Fatalf("bookkeeping fields lost: %+v", got)
	}
}

func TestMarkerKey(t *testing.T) {
	if got := markerKey("  Q-2026-001  "); got != "quoteid#q-2026-001" {
		t.Fatalf("unexpected marker key %q", got)
	}
	// Case variants of the same business id collide on the marker, so
	// uniqueness is case-insensitive.
	if markerKey("Q-1") != markerKey("q-1") {
		t.Fatal("expected case-insensitive marker keys")
	}
}

func TestHasConditionalCheckFailure(t *testing.T) {
	code := "ConditionalCheckFailed"
	other := "None"

	canceled := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: &other}, {Code: &code}},
	}
	if !hasConditionalCheckFailure(canceled) {
		t.Fatal("expected conditional check failure to be detected")
	}

	canceled = &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: &other}, {Code: nil}},
	}
	if hasConditionalCheckFailure(canceled) {
		t.Fatal("expected no conditional check failure")
	}
}

func TestBuildListFilter(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		expr, names, values := buildListFilter(interfaces.ListFilter{})

		if expr != "attribute_exists(#quote_id)" {
			t.Fatalf("unexpected expression %q", expr)
		}
		if names["#quote_id"] != "quote_id" {
			t.Fatalf("unexpected names %v", names)
		}
		if len(values) != 0 {
			t.Fatalf("expected no values, got %v", values)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		expr, _, values := buildListFilter(interfaces.ListFilter{Status: entities.QuoteStatusSent})

		if !strings.Contains(expr, "#status = :status") {
			t.Fatalf("unexpected expression %q", expr)
		}
		status, ok := values[":status"].(*types.AttributeValueMemberS)
		if !ok || status.Value != "SENT" {
			t.Fatalf("unexpected status value %v", values[":status"])
		}
	})

	t.Run("search filter covers id, company and email", func(t *testing.T) {
		expr, names, values := buildListFilter(interfaces.ListFilter{Search: " acme "})

		for _, fragment := range []string{
			"contains(#quote_id, :search)",
			"contains(#company_name, :search)",
			"contains(#contact_email, :search)",
		} {
			if !strings.Contains(expr, fragment) {
				t.Fatalf("expected %q in expression %q", fragment, expr)
			}
		}
		if names["#company_name"] != "company_name" || names["#contact_email"] != "contact_email" {
			t.Fatalf("unexpected names %v", names)
		}
		search, ok := values[":search"].(*types.AttributeValueMemberS)
		if !ok || search.Value != "acme" {
			t.Fatalf("expected trimmed search value, got %v", values[":search"])
		}
	})

	t.Run("created_by filter", func(t *testing.T) {
		expr, _, values := buildListFilter(interfaces.ListFilter{CreatedBy: "alice"})

		if !strings.Contains(expr, "#created_by = :created_by") {
			t.Fatalf("unexpected expression %q", expr)
		}
		createdBy, ok := values[":created_by"].(*types.AttributeValueMemberS)
		if !ok || createdBy.Value != "alice" {
			t.Fatalf("unexpected created_by value %v", values[":created_by"])
		}
	})
}
