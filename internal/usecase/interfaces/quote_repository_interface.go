package interfaces

import (
	"context"
	"errors"

	"quotedesk/internal/domain/entities"
)

// Persistence-level sentinels surfaced by IQuoteRepository implementations.
var (
	// ErrDuplicateQuoteID is returned by Create when the business identifier
	// is already taken (including by quotes deleted since; ids are never
	// reused).
	ErrDuplicateQuoteID = errors.New("quote id already exists")

	// ErrConflict is returned by Update when the stored version no longer
	// matches the version the caller loaded. The caller may reload and
	// re-evaluate; the stale write is never applied.
	ErrConflict = errors.New("quote was modified concurrently")
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status    entities.QuoteStatus
	Search    string
	CreatedBy string
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Contract notes:
//   - GetByID returns a zero-value Quote (ID == "") and a nil error when the
//     id does not resolve.
//   - Create and Update own the createdAt/updatedAt/version bookkeeping.
//   - AppendTimelineEvent is atomic with respect to concurrent appends on the
//     same quote: two racing appends never lose an event.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]entities.Quote, int, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
	AppendTimelineEvent(ctx context.Context, id string, event entities.TimelineEvent) error
	Delete(ctx context.Context, id string) error
}
