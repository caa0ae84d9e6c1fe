package request

import (
	"strings"

	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase"

	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	Category  string  `json:"category" binding:"required"`
	Quantity  int64   `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
}

// CreateQuoteRequest is the payload for POST /v1/quotes. A missing unit price
// falls back to the configured default for the category.
type CreateQuoteRequest struct {
	QuoteID             string            `json:"quote_id" binding:"required"`
	CompanyName         string            `json:"company_name"`
	ContactName         string            `json:"contact_name"`
	ContactEmail        string            `json:"contact_email"`
	LineItems           []LineItemRequest `json:"line_items"`
	ImplementationPrice float64           `json:"implementation_price"`
}

func (r CreateQuoteRequest) ToInput(createdBy string) usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		QuoteID:             strings.TrimSpace(r.QuoteID),
		CompanyName:         r.CompanyName,
		ContactName:         r.ContactName,
		ContactEmail:        r.ContactEmail,
		LineItems:           toLineItemInputs(r.LineItems),
		ImplementationPrice: decimal.NewFromFloat(r.ImplementationPrice),
		CreatedBy:           createdBy,
	}
}

// UpdateQuoteRequest is the payload for PUT /v1/quotes/:id. Absent fields are
// left unchanged; status is deliberately not part of this payload.
type UpdateQuoteRequest struct {
	CompanyName         *string            `json:"company_name"`
	ContactName         *string            `json:"contact_name"`
	ContactEmail        *string            `json:"contact_email"`
	LineItems           *[]LineItemRequest `json:"line_items"`
	ImplementationPrice *float64           `json:"implementation_price"`
}

func (r UpdateQuoteRequest) ToPatch() usecase.UpdateQuotePatch {
	patch := usecase.UpdateQuotePatch{
		CompanyName:  r.CompanyName,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
	}
	if r.LineItems != nil {
		items := toLineItemInputs(*r.LineItems)
		patch.LineItems = &items
	}
	if r.ImplementationPrice != nil {
		price := decimal.NewFromFloat(*r.ImplementationPrice)
		patch.ImplementationPrice = &price
	}
	return patch
}

// ChangeStatusRequest is the payload for PATCH /v1/quotes/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ResolveStatus normalizes the requested status; ok is false when it is not
// a known lifecycle state.
func (r ChangeStatusRequest) ResolveStatus() (entities.QuoteStatus, bool) {
	status := entities.QuoteStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
	return status, status.Valid()
}

// SendQuoteRequest is the payload for POST /v1/quotes/:id/send.
type SendQuoteRequest struct {
	OverrideEmail string `json:"override_email"`
}

func toLineItemInputs(items []LineItemRequest) []usecase.LineItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]usecase.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, usecase.LineItemInput{
			Category:  strings.TrimSpace(item.Category),
			Quantity:  item.Quantity,
			UnitPrice: decimal.NewFromFloat(item.UnitPrice),
		})
	}
	return inputs
}
