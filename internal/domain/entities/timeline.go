package entities

import (
	"strings"
	"time"
)

// EventType is a closed set of things that can happen to a quote. New kinds
// are a compile-time addition: Label has an exhaustive switch, so a missing
// case shows up immediately instead of a silent string typo.
type EventType string

const (
	EventCreated       EventType = "created"
	EventDraftSaved    EventType = "draft_saved"
	EventSent          EventType = "sent"
	EventResent        EventType = "resent"
	EventSendError     EventType = "send_error"
	EventAccepted      EventType = "accepted"
	EventRejected      EventType = "rejected"
	EventStatusChanged EventType = "status_changed"
)

// TimelineEvent is immutable once appended. The timeline is ordered by
// insertion, not by Timestamp; the timestamp is informational only, so clock
// skew can never reorder history.
type TimelineEvent struct {
	Type      EventType
	Timestamp time.Time
	Actor     string
	Detail    string
}

// NewTimelineEvent stamps an event with the current UTC time. An empty actor
// is recorded as "system".
func NewTimelineEvent(eventType EventType, actor, detail string) TimelineEvent {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = "system"
	}
	return TimelineEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Detail:    detail,
	}
}

// Label returns the human-readable name for an event type.
func (t EventType) Label() string {
	switch t {
	case EventCreated:
		return "Created"
	case EventDraftSaved:
		return "Draft saved"
	case EventSent:
		return "Sent"
	case EventResent:
		return "Resent"
	case EventSendError:
		return "Send failed"
	case EventAccepted:
		return "Accepted"
	case EventRejected:
		return "Rejected"
	case EventStatusChanged:
		return "Status changed"
	}
	return string(t)
}

// EventTypeForStatus maps a target status to the timeline event recorded when
// a quote reaches it through a status change.
func EventTypeForStatus(target QuoteStatus) EventType {
	switch target {
	case QuoteStatusSent:
		return EventSent
	case QuoteStatusAccepted:
		return EventAccepted
	case QuoteStatusRejected:
		return EventRejected
	default:
		return EventStatusChanged
	}
}
