package spies

import (
	"context"
	"sync"
)

// PublishedEvent is one call to PublisherSpy.Publish.
type PublishedEvent struct {
	EventName string
	Payload   []byte
}

// PublisherSpy records published events and fails with Err when it is set.
type PublisherSpy struct {
	mu     sync.Mutex
	events []PublishedEvent
	Err    error
}

func NewPublisherSpy() *PublisherSpy {
	return &PublisherSpy{}
}

func (s *PublisherSpy) Publish(_ context.Context, eventName string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, PublishedEvent{EventName: eventName, Payload: payload})

	return s.Err
}

// Events returns a copy of the recorded events in publish order.
func (s *PublisherSpy) Events() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]PublishedEvent, len(s.events))
	copy(result, s.events)

	return result
}

// EventNames returns the names of the recorded events in publish order.
func (s *PublisherSpy) EventNames() []string {
	events := s.Events()

	names := make([]string, 0, len(events))
	for _, event := range events {
		names = append(names, event.EventName)
	}

	return names
}
