package fsm

import (
	loopfsm "github.com/looplab/fsm"

	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase/interfaces"
)

// Compile-time check: Guard implements interfaces.ITransitionGuard.
var _ interfaces.ITransitionGuard = (*Guard)(nil)

// events converts entities.Transitions into looplab/fsm EventDesc format.
// Transitions toward the same destination are consolidated into a single
// event ("to_SENT" from both DRAFT and PREVIEW).
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	grouped := make(map[entities.QuoteStatus][]string)
	order := make([]entities.QuoteStatus, 0)

	for _, t := range entities.Transitions {
		if _, exists := grouped[t.Dst]; !exists {
			order = append(order, t.Dst)
		}
		grouped[t.Dst] = append(grouped[t.Dst], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, dst := range order {
		out = append(out, loopfsm.EventDesc{
			Name: eventName(dst),
			Src:  grouped[dst],
			Dst:  string(dst),
		})
	}
	return out
}

func eventName(dst entities.QuoteStatus) string {
	return "to_" + string(dst)
}

// Guard implements the transition table using looplab/fsm. A short-lived FSM
// instance is created per call, initialized with the quote's current status;
// looplab/fsm is stateful, so instances cannot be shared.
type Guard struct{}

// New creates a new FSM-backed transition guard.
func New() *Guard {
	return &Guard{}
}

// CanTransition reports whether requested is reachable from current in one
// legal step. Same-status requests are not transitions and always return
// false; resend is a SENT-specific action handled outside the guard.
func (g *Guard) CanTransition(current, requested entities.QuoteStatus) bool {
	if current == requested {
		return false
	}
	if !current.Valid() || !requested.Valid() {
		return false
	}
	machine := loopfsm.NewFSM(string(current), events, nil)
	return machine.Can(eventName(requested))
}
