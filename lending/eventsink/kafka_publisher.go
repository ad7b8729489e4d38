package eventsink

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes events to a Kafka topic.
// With the default writer, writes are asynchronous and failures only reach the logger.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger Logger
}

// KafkaOption configures a KafkaPublisher.
type KafkaOption func(*kafkaSettings)

type kafkaSettings struct {
	logger       Logger
	batchTimeout time.Duration
	maxAttempts  int
	requiredAcks kafka.RequiredAcks
	writer       MessageWriter
}

// WithKafkaLogger sets the logger that receives asynchronous write failures.
func WithKafkaLogger(logger Logger) KafkaOption {
	return func(s *kafkaSettings) {
		s.logger = logger
	}
}

// WithBatchTimeout sets how long the writer waits to fill a batch.
func WithBatchTimeout(timeout time.Duration) KafkaOption {
	return func(s *kafkaSettings) {
		s.batchTimeout = timeout
	}
}

// WithMaxAttempts sets how often the writer tries to deliver a batch.
func WithMaxAttempts(attempts int) KafkaOption {
	return func(s *kafkaSettings) {
		s.maxAttempts = attempts
	}
}

// WithMessageWriter replaces the kafka.Writer, e.g. with a test double.
func WithMessageWriter(writer MessageWriter) KafkaOption {
	return func(s *kafkaSettings) {
		s.writer = writer
	}
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, options ...KafkaOption) (*KafkaPublisher, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	settings := kafkaSettings{
		batchTimeout: 50 * time.Millisecond,
		maxAttempts:  3,
		requiredAcks: kafka.RequireOne,
	}

	for _, option := range options {
		option(&settings)
	}

	publisher := &KafkaPublisher{
		topic:  topic,
		logger: settings.logger,
		writer: settings.writer,
	}

	if publisher.writer == nil {
		if len(brokers) == 0 {
			return nil, ErrNoBrokers
		}

		publisher.writer = &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           settings.requiredAcks,
			MaxAttempts:            settings.maxAttempts,
			BatchTimeout:           settings.batchTimeout,
			Async:                  true,
			Completion:             publisher.onCompletion,
		}
	}

	return publisher, nil
}

// Publish hands the event to the writer. The message key is the event name, so
// events of one kind keep their order within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, eventName string, payload []byte) error {
	message := kafka.Message{
		Key:   []byte(eventName),
		Value: payload,
		Headers: []kafka.Header{
			{Key: headerEventName, Value: []byte(eventName)},
			{Key: headerMessageID, Value: []byte(uuid.NewString())},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.logWriteFailure(eventName, 1, err)
		return errors.Join(ErrPublishingFailed, err)
	}

	if p.logger != nil {
		p.logger.Debug(logMsgEventPublished, logAttrEventName, eventName, logAttrTopic, p.topic)
	}

	return nil
}

// Close flushes pending asynchronous writes.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) onCompletion(messages []kafka.Message, err error) {
	if err == nil || len(messages) == 0 {
		return
	}

	p.logWriteFailure(string(messages[0].Key), len(messages), err)
}

func (p *KafkaPublisher) logWriteFailure(eventName string, count int, err error) {
	if p.logger == nil {
		return
	}

	p.logger.Error(
		logMsgEventWriteFailed,
		logAttrEventName, eventName,
		logAttrTopic, p.topic,
		logAttrCount, count,
		logAttrError, err.Error(),
	)
}

var _ Publisher = (*KafkaPublisher)(nil)
