package pdf

import (
	"strings"
	"testing"

	"quotedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestBuildQuoteHTML(t *testing.T) {
	q := entities.Quote{
		QuoteID:     "Q-2026-001",
		CompanyName: "Acme GmbH",
		ContactName: "Jamie",
		LineItems: []entities.LineItem{
			{Category: "standard", Quantity: 4, UnitPrice: decimal.NewFromInt(108)},
			{Category: "premium", Quantity: 2, UnitPrice: decimal.NewFromInt(250)},
		},
		ImplementationPrice: decimal.NewFromInt(1000),
	}

	html, err := buildQuoteHTML(q, entities.ComputeTotals(q))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{
		"Quote Q-2026-001",
		"Acme GmbH",
		"standard",
		"premium",
		"432.00",
		"500.00",
		"Implementation",
		"1000.00",
		"1932.00",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected document to contain %q", fragment)
		}
	}

	// premium sorts before standard, keeping the document stable.
	if strings.Index(html, "premium") > strings.Index(html, "standard") {
		t.Fatal("expected line items in category order")
	}
}

func TestBuildQuoteHTML_NoImplementationRow(t *testing.T) {
	q := entities.Quote{
		QuoteID: "Q-1",
		LineItems: []entities.LineItem{
			{Category: "standard", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	html, err := buildQuoteHTML(q, entities.ComputeTotals(q))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(html, "Implementation") {
		t.Fatal("expected no implementation row for a zero price")
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney(decimal.NewFromFloat(1432.5)); got != "1432.50" {
		t.Fatalf("unexpected formatting %q", got)
	}
	if got := formatMoney(decimal.Zero); got != "0.00" {
		t.Fatalf("unexpected formatting %q", got)
	}
}
