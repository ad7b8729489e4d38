package spies

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// TracingCollectorSpy captures started and finished spans.
type TracingCollectorSpy struct {
	spans []*SpanSpy
	mu    sync.Mutex
}

// SpanSpy is the recorded state of one span.
type SpanSpy struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
	mu         sync.Mutex
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, recordstore.SpanContext) {
	span := &SpanSpy{Name: name, Attributes: maps.Clone(attrs)}
	if span.Attributes == nil {
		span.Attributes = map[string]string{}
	}

	s.mu.Lock()
	s.spans = append(s.spans, span)
	s.mu.Unlock()

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx recordstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpanSpy)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()

	span.Status = status
	span.Finished = true
	maps.Copy(span.Attributes, attrs)
}

func (s *SpanSpy) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = status
}

func (s *SpanSpy) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attributes[key] = value
}

// FindSpan returns the first span with the given name, or nil.
func (s *TracingCollectorSpy) FindSpan(name string) *SpanSpy {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, span := range s.spans {
		if span.Name == name {
			return span
		}
	}

	return nil
}

func (s *TracingCollectorSpy) SpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spans)
}
