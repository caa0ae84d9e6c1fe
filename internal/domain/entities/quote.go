package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle state of a commercial quote.
//
// Domain notes:
//   - The status field is only ever written through the transition guard;
//     the timeline is the historical record, the status is the current state.
//   - ACCEPTED and REJECTED are terminal.

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusPreview  QuoteStatus = "PREVIEW"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusPreview, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further status change is possible from s.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusAccepted || s == QuoteStatusRejected
}

// LineItem is a priced group inside a quote (e.g. "standard" licenses).
//
// Subtotal is stored at entry time (quantity x unit price when the item was
// written) and is NOT recomputed on read; explicit recomputation goes through
// ComputeTotals.
type LineItem struct {
	Category  string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Quote is the aggregate root persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (opaque, assigned at creation)
//   - quote_id is the human-facing business identifier, kept unique through a
//     marker item written in the same transaction as the quote.
//   - version is the optimistic-concurrency token; every entity update is
//     conditional on it and bumps it by one. Timeline appends do not touch it.
type Quote struct {
	ID                  string
	QuoteID             string
	Status              QuoteStatus
	LineItems           []LineItem
	ImplementationPrice decimal.Decimal
	CompanyName         string
	ContactName         string
	ContactEmail        string
	Timeline            []TimelineEvent
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
}
