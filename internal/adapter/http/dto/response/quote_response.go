package response

import (
	"time"

	"quotedesk/internal/domain/entities"
)

type LineItemResponse struct {
	Category  string  `json:"category"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type TimelineEventResponse struct {
	Type      string    `json:"type"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail"`
}

type TotalsResponse struct {
	LineSubtotals       map[string]float64 `json:"line_subtotals"`
	ImplementationPrice float64            `json:"implementation_price"`
	Total               float64            `json:"total"`
}

type QuoteResponse struct {
	ID                  string                  `json:"id"`
	QuoteID             string                  `json:"quote_id"`
	Status              string                  `json:"status"`
	LineItems           []LineItemResponse      `json:"line_items"`
	ImplementationPrice float64                 `json:"implementation_price"`
	CompanyName         string                  `json:"company_name"`
	ContactName         string                  `json:"contact_name"`
	ContactEmail        string                  `json:"contact_email"`
	Timeline            []TimelineEventResponse `json:"timeline"`
	Totals              TotalsResponse          `json:"totals"`
	CreatedBy           string                  `json:"created_by"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

type QuoteListResponse struct {
	Items    []QuoteResponse `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// FromQuote maps the aggregate (plus its derived totals) into the API shape.
// The timeline is returned newest-first for display.
func FromQuote(q entities.Quote) QuoteResponse {
	lineItems := make([]LineItemResponse, 0, len(q.LineItems))
	for _, item := range q.LineItems {
		lineItems = append(lineItems, LineItemResponse{
			Category:  item.Category,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Subtotal:  item.Subtotal.InexactFloat64(),
		})
	}

	timeline := make([]TimelineEventResponse, 0, len(q.Timeline))
	for i := len(q.Timeline) - 1; i >= 0; i-- {
		ev := q.Timeline[i]
		timeline = append(timeline, TimelineEventResponse{
			Type:      string(ev.Type),
			Label:     ev.Type.Label(),
			Timestamp: ev.Timestamp,
			Actor:     ev.Actor,
			Detail:    ev.Detail,
		})
	}

	return QuoteResponse{
		ID:                  q.ID,
		QuoteID:             q.QuoteID,
		Status:              string(q.Status),
		LineItems:           lineItems,
		ImplementationPrice: q.ImplementationPrice.InexactFloat64(),
		CompanyName:         q.CompanyName,
		ContactName:         q.ContactName,
		ContactEmail:        q.ContactEmail,
		Timeline:            timeline,
		Totals:              FromTotals(entities.ComputeTotals(q)),
		CreatedBy:           q.CreatedBy,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
}

func FromTotals(t entities.Totals) TotalsResponse {
	subtotals := make(map[string]float64, len(t.LineSubtotals))
	for category, subtotal := range t.LineSubtotals {
		subtotals[category] = subtotal.InexactFloat64()
	}
	return TotalsResponse{
		LineSubtotals:       subtotals,
		ImplementationPrice: t.ImplementationPrice.InexactFloat64(),
		Total:               t.Total.InexactFloat64(),
	}
}

func FromQuoteList(quotes []entities.Quote, total, page, pageSize int) QuoteListResponse {
	items := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, FromQuote(q))
	}
	return QuoteListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}
}
