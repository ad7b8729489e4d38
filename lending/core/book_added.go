package core

import (
	"time"
)

// BookAddedEventType is the event type identifier.
const BookAddedEventType = "BookAdded"

// BookAdded represents when a new book is added to the catalogue.
type BookAdded struct {
	EventType  EventTypeString
	BookID     BookIDString
	Title      string
	Author     string
	Category   string
	OccurredAt OccurredAtTS
}

// BuildBookAdded creates a new BookAdded event.
func BuildBookAdded(book Book, occurredAt time.Time) BookAdded {
	return BookAdded{
		EventType:  BookAddedEventType,
		BookID:     book.ID,
		Title:      book.Title,
		Author:     book.Author,
		Category:   book.Category.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookAdded) IsEventType() string {
	return BookAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAdded) IsErrorEvent() bool {
	return false
}
