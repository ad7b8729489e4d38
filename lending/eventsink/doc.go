// Package eventsink publishes lending events to downstream consumers.
//
// Publishing is best-effort: a lost event never fails the use case that produced it.
// KafkaPublisher writes asynchronously with segmentio/kafka-go, LogPublisher and
// NoopPublisher serve local runs and tests.
package eventsink
