package eventsink

import (
	"context"
	"errors"
)

// DefaultTopic is the topic lending events are published to unless configured otherwise.
const DefaultTopic = "library_topic"

var (
	// ErrNoBrokers is returned when a Kafka publisher is created without brokers.
	ErrNoBrokers = errors.New("at least one kafka broker is required")

	// ErrEmptyTopic is returned when a Kafka publisher is created with an empty topic.
	ErrEmptyTopic = errors.New("kafka topic must not be empty")

	// ErrPublishingFailed is returned when a message could not be handed to the sink.
	ErrPublishingFailed = errors.New("publishing event failed")
)

// Publisher is a best-effort sink for domain events.
// Callers treat returned errors as reportable but never fail a use case because of them.
type Publisher interface {
	Publish(ctx context.Context, eventName string, payload []byte) error
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

const (
	logMsgEventPublished   = "event published"
	logMsgEventWriteFailed = "event write failed"

	logAttrEventName = "event_name"
	logAttrTopic     = "topic"
	logAttrPayload   = "payload"
	logAttrCount     = "count"
	logAttrError     = "error"

	headerEventName = "event_name"
	headerMessageID = "message_id"
)

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}

// LogPublisher writes every event to a logger; used when no broker is configured.
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher creates a LogPublisher writing at info level.
func NewLogPublisher(logger Logger) LogPublisher {
	return LogPublisher{logger: logger}
}

func (p LogPublisher) Publish(_ context.Context, eventName string, payload []byte) error {
	if p.logger != nil {
		p.logger.Info(logMsgEventPublished, logAttrEventName, eventName, logAttrPayload, string(payload))
	}

	return nil
}

var (
	_ Publisher = NoopPublisher{}
	_ Publisher = LogPublisher{}
)
