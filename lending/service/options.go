package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending/eventsink"
	"github.com/AntonStoeckl/library-lending-go/lending/identity"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
)

// DefaultOperationTimeout bounds every use case unless configured otherwise.
const DefaultOperationTimeout = 5 * time.Second

var (
	// ErrNonPositiveOperationTimeout is returned when WithOperationTimeout gets zero or a negative duration.
	ErrNonPositiveOperationTimeout = errors.New("operation timeout must be positive")

	// ErrNilDependency is returned when an option is called with a nil dependency.
	ErrNilDependency = errors.New("dependency must not be nil")
)

// Option defines a functional option for configuring the Service.
type Option func(*Service) error

// WithOperationTimeout sets the deadline applied to each use case.
func WithOperationTimeout(timeout time.Duration) Option {
	return func(s *Service) error {
		if timeout <= 0 {
			return ErrNonPositiveOperationTimeout
		}

		s.operationTimeout = timeout

		return nil
	}
}

// WithClock sets the time source for due dates and fines.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) error {
		if clock == nil {
			return ErrNilDependency
		}

		s.clock = clock

		return nil
	}
}

// WithIDGenerator sets the source of ids for new books and borrowers.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) error {
		if newID == nil {
			return ErrNilDependency
		}

		s.newID = newID

		return nil
	}
}

// WithPublisher sets the sink domain events are published to.
func WithPublisher(publisher eventsink.Publisher) Option {
	return func(s *Service) error {
		if publisher == nil {
			return ErrNilDependency
		}

		s.publisher = publisher

		return nil
	}
}

// WithVerifier sets the identity verifier used by Authenticate.
func WithVerifier(verifier identity.Verifier) Option {
	return func(s *Service) error {
		if verifier == nil {
			return ErrNilDependency
		}

		s.verifier = verifier

		return nil
	}
}

// WithRetryOptions configures the conflict retry of the borrow, extend and return handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(s *Service) error {
		s.retryOptions = opts
		return nil
	}
}

// WithCurrency sets the currency label of fine reports.
func WithCurrency(currency string) Option {
	return func(s *Service) error {
		s.currency = currency
		return nil
	}
}

// WithLogger sets the logger for handler and publishing logs.
func WithLogger(logger shell.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over the basic logger for handler logs.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Service) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for handler metrics.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(s *Service) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for handler spans.
func WithTracing(collector shell.TracingCollector) Option {
	return func(s *Service) error {
		s.tracingCollector = collector
		return nil
	}
}
