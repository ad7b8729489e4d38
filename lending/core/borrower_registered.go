package core

import (
	"time"
)

// BorrowerRegisteredEventType is the event type identifier.
const BorrowerRegisteredEventType = "BorrowerRegistered"

// BorrowerRegistered represents when a new borrower is registered.
type BorrowerRegistered struct {
	EventType  EventTypeString
	BorrowerID BorrowerIDString
	Name       string
	Role       string
	OccurredAt OccurredAtTS
}

// BuildBorrowerRegistered creates a new BorrowerRegistered event.
func BuildBorrowerRegistered(borrower Borrower, occurredAt time.Time) BorrowerRegistered {
	return BorrowerRegistered{
		EventType:  BorrowerRegisteredEventType,
		BorrowerID: borrower.ID,
		Name:       borrower.Name,
		Role:       borrower.Role.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BorrowerRegistered) IsEventType() string {
	return BorrowerRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowerRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BorrowerRegistered) IsErrorEvent() bool {
	return false
}
