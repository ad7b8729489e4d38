package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/eventsink"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/extendloan"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/registerborrower"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/returnbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/borrowerloans"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/checkfines"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/searchbooks"
	"github.com/AntonStoeckl/library-lending-go/lending/identity"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/lending/shell/observable"
)

// ErrNoVerifierConfigured is returned by Authenticate when the service was built without WithVerifier.
var ErrNoVerifierConfigured = errors.New("no identity verifier configured")

const (
	logMsgPublishFailed = "publishing event failed"
	logAttrEventName    = "event_name"
	logAttrError        = "error"
)

// Service is the lending façade: it validates ids, bounds every use case by the operation timeout,
// runs the instrumented handlers and publishes the resulting domain events.
type Service struct {
	repository Repository

	addBook          shell.CommandHandler[addbook.Command, addbook.Result]
	registerBorrower shell.CommandHandler[registerborrower.Command, registerborrower.Result]
	borrowBook       shell.CommandHandler[borrowbook.Command, borrowbook.Result]
	extendLoan       shell.CommandHandler[extendloan.Command, extendloan.Result]
	returnBook       shell.CommandHandler[returnbook.Command, returnbook.Result]
	checkFines       shell.QueryHandler[checkfines.Query, checkfines.FineReport]
	searchBooks      shell.QueryHandler[searchbooks.Query, searchbooks.Books]
	borrowerLoans    shell.QueryHandler[borrowerloans.Query, borrowerloans.BorrowerLoans]

	publisher        eventsink.Publisher
	verifier         identity.Verifier
	operationTimeout time.Duration
	clock            func() time.Time
	newID            func() uuid.UUID
	retryOptions     []shell.RetryOption
	currency         string
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
}

// New creates a Service on top of repository.
// Without WithPublisher events are dropped, without WithVerifier Authenticate fails.
func New(repository Repository, options ...Option) (*Service, error) {
	if repository == nil {
		return nil, ErrNilDependency
	}

	s := &Service{
		repository:       repository,
		publisher:        eventsink.NoopPublisher{},
		operationTimeout: DefaultOperationTimeout,
		clock:            time.Now,
		newID:            uuid.New,
		currency:         checkfines.DefaultCurrency,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if err := s.buildHandlers(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) buildHandlers() error {
	var err error

	s.addBook, err = wrapCommand[addbook.Command, addbook.Result](
		s, addbook.NewCommandHandler(s.repository),
	)
	if err != nil {
		return err
	}

	s.registerBorrower, err = wrapCommand[registerborrower.Command, registerborrower.Result](
		s, registerborrower.NewCommandHandler(s.repository),
	)
	if err != nil {
		return err
	}

	s.borrowBook, err = wrapCommand[borrowbook.Command, borrowbook.Result](
		s, borrowbook.NewCommandHandler(s.repository, borrowbook.WithRetryOptions(s.retryOptions...)),
	)
	if err != nil {
		return err
	}

	s.extendLoan, err = wrapCommand[extendloan.Command, extendloan.Result](
		s, extendloan.NewCommandHandler(s.repository, extendloan.WithRetryOptions(s.retryOptions...)),
	)
	if err != nil {
		return err
	}

	s.returnBook, err = wrapCommand[returnbook.Command, returnbook.Result](
		s, returnbook.NewCommandHandler(s.repository, returnbook.WithRetryOptions(s.retryOptions...)),
	)
	if err != nil {
		return err
	}

	s.checkFines, err = wrapQuery[checkfines.Query, checkfines.FineReport](
		s, checkfines.NewQueryHandler(s.repository, checkfines.WithCurrency(s.currency)),
	)
	if err != nil {
		return err
	}

	s.searchBooks, err = wrapQuery[searchbooks.Query, searchbooks.Books](
		s, searchbooks.NewQueryHandler(s.repository),
	)
	if err != nil {
		return err
	}

	s.borrowerLoans, err = wrapQuery[borrowerloans.Query, borrowerloans.BorrowerLoans](
		s, borrowerloans.NewQueryHandler(s.repository),
	)

	return err
}

func wrapCommand[C shell.Command, R shell.CommandResult](
	s *Service,
	handler shell.CommandHandler[C, R],
) (shell.CommandHandler[C, R], error) {

	return observable.NewCommandWrapper(
		handler,
		observable.WithCommandMetrics[C, R](s.metricsCollector),
		observable.WithCommandTracing[C, R](s.tracingCollector),
		observable.WithCommandContextualLogging[C, R](s.contextualLogger),
		observable.WithCommandLogging[C, R](s.logger),
	)
}

func wrapQuery[Q shell.Query, R shell.QueryResult](
	s *Service,
	handler shell.QueryHandler[Q, R],
) (shell.QueryHandler[Q, R], error) {

	return observable.NewQueryWrapper(
		handler,
		observable.WithQueryMetrics[Q, R](s.metricsCollector),
		observable.WithQueryTracing[Q, R](s.tracingCollector),
		observable.WithQueryContextualLogging[Q, R](s.contextualLogger),
		observable.WithQueryLogging[Q, R](s.logger),
	)
}

// Authenticate verifies a bearer token and returns the borrower it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.Identity, error) {
	if s.verifier == nil {
		return identity.Identity{}, ErrNoVerifierConfigured
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.verifier.Verify(ctx, token)
}

// bounded derives the per-operation context.
func (s *Service) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// publish hands the event to the sink. Failures are logged and never returned.
func (s *Service) publish(ctx context.Context, event core.DomainEvent) {
	if event == nil {
		return
	}

	payload, err := shell.MarshalEventPayload(event)
	if err == nil {
		err = s.publisher.Publish(context.WithoutCancel(ctx), event.IsEventType(), payload)
	}

	if err != nil && s.logger != nil {
		s.logger.Warn(logMsgPublishFailed, logAttrEventName, event.IsEventType(), logAttrError, err.Error())
	}
}

func parseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Join(core.ErrInvalidID, fmt.Errorf("%s %q", kind, value))
	}

	return id, nil
}
