package core

import (
	"time"
)

// BookBorrowedEventType is the event type identifier.
const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed represents when a book is lent to a borrower.
type BookBorrowed struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	DueAt      time.Time
	OccurredAt OccurredAtTS
}

// BuildBookBorrowed creates a new BookBorrowed event.
func BuildBookBorrowed(book Book, occurredAt time.Time) BookBorrowed {
	return BookBorrowed{
		EventType:  BookBorrowedEventType,
		BookID:     book.ID,
		BorrowerID: book.CurrentBorrower,
		DueAt:      ToOccurredAt(book.Due),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookBorrowed) IsEventType() string {
	return BookBorrowedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookBorrowed) IsErrorEvent() bool {
	return false
}
