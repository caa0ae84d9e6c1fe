package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrDuplicateQuoteID  = errors.New("quote id already exists")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrInvalidQuoteInput = errors.New("invalid quote input")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrQuoteNotEditable  = errors.New("quote is no longer editable")
	ErrQuoteNotDeletable = errors.New("only draft quotes can be deleted")
	ErrInvalidRecipient  = errors.New("no valid recipient email")
	ErrRenderFailed      = errors.New("document rendering failed")
	ErrDispatchFailed    = errors.New("mail dispatch failed")
	ErrConflict          = errors.New("quote was modified concurrently")
)

// QuoteDefaults carries creation-time fallback values. Default unit prices
// per line-item category live in configuration, not in any form layer.
type QuoteDefaults struct {
	UnitPrices map[string]decimal.Decimal
}

// LineItemInput is one priced group on an incoming create/update.
// A zero UnitPrice falls back to the configured default for the category.
type LineItemInput struct {
	Category  string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateQuoteInput is the domain command for Create.
type CreateQuoteInput struct {
	QuoteID             string
	CompanyName         string
	ContactName         string
	ContactEmail        string
	LineItems           []LineItemInput
	ImplementationPrice decimal.Decimal
	CreatedBy           string
}

// UpdateQuotePatch lists the mutable fields of a draft. Nil means "leave
// unchanged". Status is deliberately absent: it only moves through
// ChangeStatus and the transition guard.
type UpdateQuotePatch struct {
	CompanyName         *string
	ContactName         *string
	ContactEmail        *string
	LineItems           *[]LineItemInput
	ImplementationPrice *decimal.Decimal
}

// IQuoteUseCase exposes the quote lifecycle operations.
//
// Every mutating operation persists the entity change first and appends its
// timeline event last, so a crash can leave a detectable gap but never an
// event for a change that did not happen.

type IQuoteUseCase interface {
	Create(ctx context.Context, input CreateQuoteInput, actor string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter interfaces.ListFilter, page, pageSize int) ([]entities.Quote, int, error)
	UpdateDraft(ctx context.Context, id string, patch UpdateQuotePatch, actor string) (entities.Quote, error)
	ChangeStatus(ctx context.Context, id string, requested entities.QuoteStatus, actor string) (entities.Quote, error)
	Send(ctx context.Context, id, actor, overrideEmail string) (entities.Quote, error)
	Remove(ctx context.Context, id string) error
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	guard    interfaces.ITransitionGuard
	renderer interfaces.IDocumentRenderer
	mailer   interfaces.IMailDispatcher
	defaults QuoteDefaults
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	guard interfaces.ITransitionGuard,
	renderer interfaces.IDocumentRenderer,
	mailer interfaces.IMailDispatcher,
	defaults QuoteDefaults,
) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, guard: guard, renderer: renderer, mailer: mailer, defaults: defaults}
}

func (u *QuoteUseCase) Create(ctx context.Context, input CreateQuoteInput, actor string) (entities.Quote, error) {
	input.QuoteID = strings.TrimSpace(input.QuoteID)
	if input.QuoteID == "" {
		return entities.Quote{}, fmt.Errorf("%w: quote_id is required", ErrInvalidQuoteInput)
	}

	q := entities.Quote{
		ID:                  uuid.NewString(),
		QuoteID:             input.QuoteID,
		Status:              entities.QuoteStatusDraft,
		LineItems:           u.buildLineItems(input.LineItems),
		ImplementationPrice: input.ImplementationPrice,
		CompanyName:         strings.TrimSpace(input.CompanyName),
		ContactName:         strings.TrimSpace(input.ContactName),
		ContactEmail:        strings.TrimSpace(input.ContactEmail),
		CreatedBy:           strings.TrimSpace(input.CreatedBy),
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateQuoteID) {
			return entities.Quote{}, fmt.Errorf("%w: %s", ErrDuplicateQuoteID, input.QuoteID)
		}
		return entities.Quote{}, err
	}

	return u.appendEvent(ctx, created, entities.NewTimelineEvent(entities.EventCreated, actor, "quote created"))
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, filter interfaces.ListFilter, page, pageSize int) ([]entities.Quote, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return u.repo.List(ctx, filter, page, pageSize)
}

func (u *QuoteUseCase) UpdateDraft(ctx context.Context, id string, patch UpdateQuotePatch, actor string) (entities.Quote, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}

	// Content edits stop once a quote leaves the drafting stages; after SENT
	// the document the client received must match what is stored.
	if q.Status != entities.QuoteStatusDraft && q.Status != entities.QuoteStatusPreview {
		return entities.Quote{}, fmt.Errorf("%w: status is %s", ErrQuoteNotEditable, q.Status)
	}

	if patch.CompanyName != nil {
		q.CompanyName = strings.TrimSpace(*patch.CompanyName)
	}
	if patch.ContactName != nil {
		q.ContactName = strings.TrimSpace(*patch.ContactName)
	}
	if patch.ContactEmail != nil {
		q.ContactEmail = strings.TrimSpace(*patch.ContactEmail)
	}
	if patch.LineItems != nil {
		q.LineItems = u.buildLineItems(*patch.LineItems)
	}
	if patch.ImplementationPrice != nil {
		q.ImplementationPrice = *patch.ImplementationPrice
	}

	updated, err := u.update(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	return u.appendEvent(ctx, updated, entities.NewTimelineEvent(entities.EventDraftSaved, actor, "draft saved"))
}

func (u *QuoteUseCase) ChangeStatus(ctx context.Context, id string, requested entities.QuoteStatus, actor string) (entities.Quote, error) {
	if !requested.Valid() {
		return entities.Quote{}, fmt.Errorf("%w: %q", ErrInvalidStatus, requested)
	}

	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}

	if q.Status == requested {
		return entities.Quote{}, fmt.Errorf("%w: quote is already %s", ErrInvalidTransition, requested)
	}
	if !u.guard.CanTransition(q.Status, requested) {
		return entities.Quote{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, requested)
	}

	previous := q.Status
	q.Status = requested
	updated, err := u.update(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	event := entities.NewTimelineEvent(
		entities.EventTypeForStatus(requested),
		actor,
		fmt.Sprintf("status changed from %s to %s", previous, requested),
	)
	return u.appendEvent(ctx, updated, event)
}

// Send renders the quote document and emails it to the resolved recipient.
//
// Send is idempotent with respect to status: on an already SENT quote it is a
// resend and records a "resent" event without touching the status. Every send
// attempt leaves exactly one timeline event; failures after the quote was
// loaded are recorded as "send_error" AND surfaced to the caller.
func (u *QuoteUseCase) Send(ctx context.Context, id, actor, overrideEmail string) (entities.Quote, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] send start id=%s quote_id=%s status=%s", q.ID, q.QuoteID, q.Status)

	// Terminal quotes cannot be sent or resent. Rejected before any side
	// effect, so no event is recorded.
	if q.Status.Terminal() {
		return entities.Quote{}, fmt.Errorf("%w: quote is %s", ErrInvalidTransition, q.Status)
	}

	to, ok := resolveRecipient(overrideEmail, q.ContactEmail)
	if !ok {
		u.recordSendError(ctx, q, actor, "send rejected: no valid recipient email")
		log.Printf("[quote][usecase] send rejected id=%s reason=invalid_recipient", q.ID)
		return entities.Quote{}, ErrInvalidRecipient
	}

	totals := entities.ComputeTotals(q)

	artifact, err := u.render(ctx, q, totals)
	if err != nil {
		u.recordSendError(ctx, q, actor, fmt.Sprintf("document rendering failed: %v", err))
		log.Printf("[quote][usecase] render failed id=%s err=%v", q.ID, err)
		return entities.Quote{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	subject := fmt.Sprintf("Quote %s", q.QuoteID)
	body := buildMailBody(q, totals)
	attachmentName := fmt.Sprintf("quote-%s.pdf", q.QuoteID)

	if err := u.dispatch(ctx, to, subject, body, attachmentName, artifact); err != nil {
		u.recordSendError(ctx, q, actor, fmt.Sprintf("mail dispatch to %s failed: %v", to, err))
		log.Printf("[quote][usecase] dispatch failed id=%s to=%s err=%v", q.ID, to, err)
		return entities.Quote{}, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	// Dispatch succeeded. A quote that is already SENT stays SENT: this call
	// was a resend, observable in the timeline but invisible to status.
	if q.Status == entities.QuoteStatusSent {
		log.Printf("[quote][usecase] resend success id=%s to=%s", q.ID, to)
		return u.appendEvent(ctx, q, entities.NewTimelineEvent(entities.EventResent, actor, "resent to "+to))
	}

	if !u.guard.CanTransition(q.Status, entities.QuoteStatusSent) {
		return entities.Quote{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, entities.QuoteStatusSent)
	}
	q.Status = entities.QuoteStatusSent
	updated, err := u.update(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	log.Printf("[quote][usecase] send success id=%s to=%s total=%s", q.ID, to, totals.Total.StringFixed(2))
	return u.appendEvent(ctx, updated, entities.NewTimelineEvent(entities.EventSent, actor, "sent to "+to))
}

func (u *QuoteUseCase) Remove(ctx context.Context, id string) error {
	q, err := u.load(ctx, id)
	if err != nil {
		return err
	}

	// Deleting a quote with history would contradict the audit trail; only
	// drafts can go.
	if q.Status != entities.QuoteStatusDraft {
		return fmt.Errorf("%w: status is %s", ErrQuoteNotDeletable, q.Status)
	}

	return u.repo.Delete(ctx, q.ID)
}

// load normalizes the id and resolves it, mapping absence to ErrQuoteNotFound.
func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// update persists an entity mutation, mapping a stale version to ErrConflict.
func (u *QuoteUseCase) update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	updated, err := u.repo.Update(ctx, q)
	if err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			return entities.Quote{}, ErrConflict
		}
		return entities.Quote{}, err
	}
	return updated, nil
}

// appendEvent durably appends the event, then mirrors it onto the in-memory
// copy so callers see the state they just produced. The append is always the
// last durable step; if it fails the entity write stands and the gap is
// reported to the caller.
func (u *QuoteUseCase) appendEvent(ctx context.Context, q entities.Quote, event entities.TimelineEvent) (entities.Quote, error) {
	if err := u.repo.AppendTimelineEvent(ctx, q.ID, event); err != nil {
		log.Printf("[quote][usecase] timeline append failed id=%s type=%s err=%v", q.ID, event.Type, err)
		return entities.Quote{}, err
	}
	q.Timeline = append(q.Timeline, event)
	return q, nil
}

// recordSendError appends the audit trace for a failed send attempt. The
// failure itself is still surfaced by the caller; a second failure while
// recording it must not mask the primary error.
func (u *QuoteUseCase) recordSendError(ctx context.Context, q entities.Quote, actor, detail string) {
	// appendEvent already logs append failures.
	_, _ = u.appendEvent(ctx, q, entities.NewTimelineEvent(entities.EventSendError, actor, detail))
}

func (u *QuoteUseCase) render(ctx context.Context, q entities.Quote, totals entities.Totals) ([]byte, error) {
	if u.renderer == nil {
		return nil, errors.New("document renderer not configured")
	}
	return u.renderer.RenderQuote(ctx, q, totals)
}

func (u *QuoteUseCase) dispatch(ctx context.Context, to, subject, body, attachmentName string, attachment []byte) error {
	if u.mailer == nil {
		return errors.New("mail dispatcher not configured")
	}
	return u.mailer.Send(ctx, to, subject, body, attachmentName, attachment)
}

// buildLineItems converts inputs into stored line items, applying configured
// default unit prices and computing the entry-time subtotal.
func (u *QuoteUseCase) buildLineItems(inputs []LineItemInput) []entities.LineItem {
	if len(inputs) == 0 {
		return nil
	}
	items := make([]entities.LineItem, 0, len(inputs))
	for _, in := range inputs {
		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			if def, ok := u.defaults.UnitPrices[strings.ToLower(strings.TrimSpace(in.Category))]; ok {
				unitPrice = def
			}
		}
		items = append(items, entities.LineItem{
			Category:  strings.TrimSpace(in.Category),
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  unitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		})
	}
	return items
}

// resolveRecipient prefers a syntactically valid override, falls back to the
// stored contact email, and reports failure when neither parses.
func resolveRecipient(override, stored string) (string, bool) {
	for _, candidate := range []string{override, stored} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if addr, err := mail.ParseAddress(candidate); err == nil {
			return addr.Address, true
		}
	}
	return "", false
}

func buildMailBody(q entities.Quote, totals entities.Totals) string {
	var b strings.Builder
	b.WriteString("<p>Hello")
	if q.ContactName != "" {
		b.WriteString(" " + q.ContactName)
	}
	b.WriteString(",</p>")
	b.WriteString(fmt.Sprintf("<p>Please find attached quote <strong>%s</strong>", q.QuoteID))
	if q.CompanyName != "" {
		b.WriteString(" for " + q.CompanyName)
	}
	b.WriteString(fmt.Sprintf(", totalling <strong>%s</strong>.</p>", totals.Total.StringFixed(2)))
	b.WriteString("<p>We look forward to hearing from you.</p>")
	return b.String()
}
