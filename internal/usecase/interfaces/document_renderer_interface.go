package interfaces

import (
	"context"

	"quotedesk/internal/domain/entities"
)

// IDocumentRenderer abstracts the printable-document generator (HTML to PDF).
//
// RenderQuote must be bounded by a timeout internally; a timeout is reported
// as an ordinary error. The returned bytes are the finished artifact, ready
// to attach to an email.
type IDocumentRenderer interface {
	RenderQuote(ctx context.Context, q entities.Quote, totals entities.Totals) ([]byte, error)
}
