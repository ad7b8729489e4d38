package shell

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Actions carried in every published payload, one per event type.
const (
	ActionAddBook       = "add_book"
	ActionRegisterUser  = "register_user"
	ActionBorrowBook    = "borrow_book"
	ActionExtendDueDate = "extend_due_date"
	ActionReturnBook    = "return_book"
	ActionDenied        = "request_denied"
)

var (
	// ErrMappingToEventPayloadFailed is returned when a domain event has no payload mapping.
	ErrMappingToEventPayloadFailed = errors.New("mapping domain event to event payload failed")

	// ErrMarshalingEventPayloadFailed is returned when the payload could not be encoded as JSON.
	ErrMarshalingEventPayloadFailed = errors.New("marshaling event payload failed")
)

// EventPayload is the JSON document published for a domain event.
type EventPayload struct {
	Action     string     `json:"action"`
	EventType  string     `json:"event_type"`
	BookID     string     `json:"book_id,omitempty"`
	UserID     string     `json:"user_id,omitempty"`
	Title      string     `json:"title,omitempty"`
	Author     string     `json:"author,omitempty"`
	Category   string     `json:"category,omitempty"`
	Name       string     `json:"name,omitempty"`
	Role       string     `json:"role,omitempty"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	Extensions *int       `json:"extensions,omitempty"`
	Operation  string     `json:"operation,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// EventPayloadFrom maps a domain event to its published payload.
func EventPayloadFrom(event core.DomainEvent) (EventPayload, error) {
	payload := EventPayload{
		EventType:  event.IsEventType(),
		OccurredAt: event.HasOccurredAt(),
	}

	switch e := event.(type) {
	case core.BookAdded:
		payload.Action = ActionAddBook
		payload.BookID = e.BookID
		payload.Title = e.Title
		payload.Author = e.Author
		payload.Category = e.Category

	case core.BorrowerRegistered:
		payload.Action = ActionRegisterUser
		payload.UserID = e.BorrowerID
		payload.Name = e.Name
		payload.Role = e.Role

	case core.BookBorrowed:
		payload.Action = ActionBorrowBook
		payload.BookID = e.BookID
		payload.UserID = e.BorrowerID
		payload.DueAt = &e.DueAt

	case core.DueDateExtended:
		payload.Action = ActionExtendDueDate
		payload.BookID = e.BookID
		payload.UserID = e.BorrowerID
		payload.DueAt = &e.DueAt
		payload.Extensions = &e.Extensions

	case core.BookReturned:
		payload.Action = ActionReturnBook
		payload.BookID = e.BookID
		payload.UserID = e.BorrowerID

	case core.LendingRequestDenied:
		payload.Action = ActionDenied
		payload.BookID = e.BookID
		payload.UserID = e.BorrowerID
		payload.Operation = e.Operation
		payload.Reason = e.Reason

	default:
		return EventPayload{}, ErrMappingToEventPayloadFailed
	}

	return payload, nil
}

// MarshalEventPayload maps a domain event to its payload and encodes it as JSON.
func MarshalEventPayload(event core.DomainEvent) ([]byte, error) {
	payload, err := EventPayloadFrom(event)
	if err != nil {
		return nil, err
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(payload)
	if err != nil {
		return nil, errors.Join(ErrMarshalingEventPayloadFailed, err)
	}

	return data, nil
}
