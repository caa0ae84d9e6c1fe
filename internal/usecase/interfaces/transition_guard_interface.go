package interfaces

import "quotedesk/internal/domain/entities"

// ITransitionGuard decides whether a status change is legal. It is a pure
// decision function: it never mutates state, callers apply the result.
// Requesting the current status is not a transition and must be rejected.
type ITransitionGuard interface {
	CanTransition(current, requested entities.QuoteStatus) bool
}
