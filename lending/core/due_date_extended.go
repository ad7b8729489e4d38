package core

import (
	"time"
)

// DueDateExtendedEventType is the event type identifier.
const DueDateExtendedEventType = "DueDateExtended"

// DueDateExtended represents when the due date of a loan is pushed back.
type DueDateExtended struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	DueAt      time.Time
	Extensions int
	OccurredAt OccurredAtTS
}

// BuildDueDateExtended creates a new DueDateExtended event from the already extended book.
func BuildDueDateExtended(book Book, occurredAt time.Time) DueDateExtended {
	return DueDateExtended{
		EventType:  DueDateExtendedEventType,
		BookID:     book.ID,
		BorrowerID: book.CurrentBorrower,
		DueAt:      ToOccurredAt(book.Due),
		Extensions: book.Extensions,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e DueDateExtended) IsEventType() string {
	return DueDateExtendedEventType
}

// HasOccurredAt returns when this event occurred.
func (e DueDateExtended) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e DueDateExtended) IsErrorEvent() bool {
	return false
}
