package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a borrower returns a book.
type BookReturned struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(bookID BookIDString, borrowerID BorrowerIDString, occurredAt time.Time) BookReturned {
	return BookReturned{
		EventType:  BookReturnedEventType,
		BookID:     bookID,
		BorrowerID: borrowerID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
