package request

import (
	"testing"

	"quotedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestCreateQuoteRequest_ToInput(t *testing.T) {
	r := CreateQuoteRequest{
		QuoteID:      "  Q-2026-001  ",
		CompanyName:  "Acme GmbH",
		ContactEmail: "jamie@acme.example",
		LineItems: []LineItemRequest{
			{Category: " standard ", Quantity: 4, UnitPrice: 108},
			{Category: "premium", Quantity: 2},
		},
		ImplementationPrice: 1000,
	}

	input := r.ToInput("alice")

	if input.QuoteID != "Q-2026-001" {
		t.Fatalf("expected trimmed quote id, got %q", input.QuoteID)
	}
	if input.CreatedBy != "alice" {
		t.Fatalf("expected created by alice, got %q", input.CreatedBy)
	}
	if len(input.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(input.LineItems))
	}
	if input.LineItems[0].Category != "standard" {
		t.Fatalf("expected trimmed category, got %q", input.LineItems[0].Category)
	}
	if !input.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(108)) {
		t.Fatalf("unexpected unit price %s", input.LineItems[0].UnitPrice)
	}
	if !input.LineItems[1].UnitPrice.IsZero() {
		t.Fatalf("missing unit price must stay zero, got %s", input.LineItems[1].UnitPrice)
	}
	if !input.ImplementationPrice.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected implementation price %s", input.ImplementationPrice)
	}
}

func TestUpdateQuoteRequest_ToPatch(t *testing.T) {
	t.Run("absent fields stay nil", func(t *testing.T) {
		patch := UpdateQuoteRequest{}.ToPatch()
		if patch.CompanyName != nil || patch.ContactName != nil || patch.ContactEmail != nil ||
			patch.LineItems != nil || patch.ImplementationPrice != nil {
			t.Fatalf("expected empty patch, got %+v", patch)
		}
	})

	t.Run("present fields map through", func(t *testing.T) {
		name := "New Co"
		price := 1200.0
		items := []LineItemRequest{{Category: "standard", Quantity: 1, UnitPrice: 99}}
		patch := UpdateQuoteRequest{
			CompanyName:         &name,
			ImplementationPrice: &price,
			LineItems:           &items,
		}.ToPatch()

		if patch.CompanyName == nil || *patch.CompanyName != "New Co" {
			t.Fatalf("unexpected company name %+v", patch.CompanyName)
		}
		if patch.ImplementationPrice == nil || !patch.ImplementationPrice.Equal(decimal.NewFromInt(1200)) {
			t.Fatalf("unexpected implementation price %+v", patch.ImplementationPrice)
		}
		if patch.LineItems == nil || len(*patch.LineItems) != 1 {
			t.Fatalf("unexpected line items %+v", patch.LineItems)
		}
	})
}

func TestChangeStatusRequest_ResolveStatus(t *testing.T) {
	cases := []struct {
		in   string
		want entities.QuoteStatus
		ok   bool
	}{
		{"SENT", entities.QuoteStatusSent, true},
		{"sent", entities.QuoteStatusSent, true},
		{"  preview  ", entities.QuoteStatusPreview, true},
		{"BOGUS", "BOGUS", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ChangeStatusRequest{Status: tc.in}.ResolveStatus()
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ResolveStatus(%q) = (%s, %v), expected (%s, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
