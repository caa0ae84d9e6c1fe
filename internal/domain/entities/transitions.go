package entities

// Transition defines a valid status change from Src to Dst.
type Transition struct {
	Src QuoteStatus
	Dst QuoteStatus
}

// Transitions defines all valid status changes in the quote lifecycle.
// This is domain knowledge consumed by the FSM adapter. Requesting the same
// status is not a transition; "resend" on a SENT quote is an action, not a
// status change, and never goes through this table.
var Transitions = []Transition{
	{Src: QuoteStatusDraft, Dst: QuoteStatusPreview},
	{Src: QuoteStatusDraft, Dst: QuoteStatusSent},
	{Src: QuoteStatusPreview, Dst: QuoteStatusDraft},
	{Src: QuoteStatusPreview, Dst: QuoteStatusSent},
	{Src: QuoteStatusSent, Dst: QuoteStatusAccepted},
	{Src: QuoteStatusSent, Dst: QuoteStatusRejected},
}
