package core

import (
	"time"
)

// LendingRequestDeniedEventType is the event type identifier.
const LendingRequestDeniedEventType = "LendingRequestDenied"

// Operations a LendingRequestDenied can refer to.
const (
	OperationBorrow = "borrow"
	OperationExtend = "extend"
	OperationReturn = "return"
)

// LendingRequestDenied represents when a borrow, extend or return request is rejected by a lending rule.
type LendingRequestDenied struct {
	EventType  EventTypeString
	Operation  string
	BookID     BookIDString
	BorrowerID BorrowerIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildLendingRequestDenied creates a new LendingRequestDenied event.
func BuildLendingRequestDenied(
	operation string,
	bookID BookIDString,
	borrowerID BorrowerIDString,
	reason error,
	occurredAt time.Time,
) LendingRequestDenied {
	return LendingRequestDenied{
		EventType:  LendingRequestDeniedEventType,
		Operation:  operation,
		BookID:     bookID,
		BorrowerID: borrowerID,
		Reason:     reason.Error(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LendingRequestDenied) IsEventType() string {
	return LendingRequestDeniedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LendingRequestDenied) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected request.
func (e LendingRequestDenied) IsErrorEvent() bool {
	return true
}
