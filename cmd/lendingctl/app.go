package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-lending-go/lending/eventsink"
	"github.com/AntonStoeckl/library-lending-go/lending/identity"
	"github.com/AntonStoeckl/library-lending-go/lending/service"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/lending/shell/config"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
	"github.com/AntonStoeckl/library-lending-go/recordstore/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/recordstore/postgresengine"
)

const (
	serviceVersion     = "dev"
	instrumentationLib = "github.com/AntonStoeckl/library-lending-go"
)

// ErrMigrationNeedsPostgres is returned by migrate for the memory engine.
var ErrMigrationNeedsPostgres = errors.New("migrate needs a postgres engine")

// app is everything a subcommand needs, built once from the loaded config.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	service  *service.Service
	postgres *postgresengine.RecordStore
	closers  []func() error
}

func newApp(ctx context.Context, cfg config.Config, logOutput io.Writer) (*app, error) {
	logger, err := config.NewLogger(cfg.Log, logOutput)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	var serviceOptions []service.Option
	serviceOptions = append(serviceOptions,
		service.WithLogger(logger),
		service.WithOperationTimeout(cfg.Service.OperationTimeout),
		service.WithCurrency(cfg.Fines.Currency),
		service.WithRetryOptions(
			shell.WithMaxAttempts(cfg.Service.RetryMaxAttempts),
			shell.WithBaseDelay(cfg.Service.RetryBaseDelay),
		),
	)

	var storeObservability []postgresengine.Option
	if cfg.Observability.Enabled {
		observabilityOptions, postgresOptions, obsErr := a.initObservability(ctx)
		if obsErr != nil {
			return nil, a.closeWith(obsErr)
		}

		serviceOptions = append(serviceOptions, observabilityOptions...)
		storeObservability = postgresOptions
	}

	repository, err := a.openRepository(ctx, storeObservability)
	if err != nil {
		return nil, a.closeWith(err)
	}

	publisher, err := a.newPublisher()
	if err != nil {
		return nil, a.closeWith(err)
	}
	serviceOptions = append(serviceOptions, service.WithPublisher(publisher))

	if cfg.JWT.Secret != "" {
		verifier, verifierErr := identity.NewHS256Verifier([]byte(cfg.JWT.Secret))
		if verifierErr != nil {
			return nil, a.closeWith(verifierErr)
		}

		serviceOptions = append(serviceOptions, service.WithVerifier(verifier))
	}

	a.service, err = service.New(repository, serviceOptions...)
	if err != nil {
		return nil, a.closeWith(err)
	}

	return a, nil
}

func (a *app) initObservability(ctx context.Context) ([]service.Option, []postgresengine.Option, error) {
	providers, err := config.NewObservabilityProviders(ctx, a.cfg.Observability, serviceVersion)
	if err != nil {
		return nil, nil, err
	}

	a.closers = append(a.closers, func() error { return providers.Shutdown(context.Background()) })

	metrics := oteladapters.NewMetricsCollector(otel.Meter(instrumentationLib))
	tracing := oteladapters.NewTracingCollector(otel.Tracer(instrumentationLib))
	contextualLogger := oteladapters.NewSlogBridgeLogger(instrumentationLib)

	serviceOptions := []service.Option{
		service.WithMetrics(metrics),
		service.WithTracing(tracing),
		service.WithContextualLogger(contextualLogger),
	}

	postgresOptions := []postgresengine.Option{
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
		postgresengine.WithContextualLogger(contextualLogger),
	}

	return serviceOptions, postgresOptions, nil
}

func (a *app) openRepository(ctx context.Context, observability []postgresengine.Option) (service.Repository, error) {
	if !a.cfg.IsPostgres() {
		return memengine.NewRecordStore(memengine.WithLogger(a.logger))
	}

	options := append([]postgresengine.Option{
		postgresengine.WithBooksTableName(a.cfg.Postgres.BooksTable),
		postgresengine.WithBorrowersTableName(a.cfg.Postgres.BorrowersTable),
		postgresengine.WithLogger(a.logger),
	}, observability...)

	var (
		store postgresengine.RecordStore
		err   error
	)

	switch a.cfg.Engine {
	case config.EnginePGXPool:
		store, err = a.openPGXPool(ctx, options)
	case config.EngineSQLDB:
		db, dbErr := config.NewSQLDB(ctx, a.cfg.Postgres.DSN)
		if dbErr != nil {
			return nil, dbErr
		}

		a.closers = append(a.closers, db.Close)
		store, err = postgresengine.NewRecordStoreFromSQLDB(db, options...)
	case config.EngineSQLXDB:
		db, dbErr := config.NewSQLXDB(ctx, a.cfg.Postgres.DSN)
		if dbErr != nil {
			return nil, dbErr
		}

		a.closers = append(a.closers, db.Close)
		store, err = postgresengine.NewRecordStoreFromSQLX(db, options...)
	default:
		return nil, config.ErrUnknownEngine
	}

	if err != nil {
		return nil, err
	}

	a.postgres = &store

	return store, nil
}

func (a *app) openPGXPool(ctx context.Context, options []postgresengine.Option) (postgresengine.RecordStore, error) {
	primary, err := config.NewPGXPool(ctx, a.cfg.Postgres.DSN)
	if err != nil {
		return postgresengine.RecordStore{}, err
	}

	a.closers = append(a.closers, func() error { primary.Close(); return nil })

	if a.cfg.Postgres.ReplicaDSN == "" {
		return postgresengine.NewRecordStoreFromPGXPool(primary, options...)
	}

	replica, err := config.NewPGXPool(ctx, a.cfg.Postgres.ReplicaDSN)
	if err != nil {
		return postgresengine.RecordStore{}, err
	}

	a.closers = append(a.closers, func() error { replica.Close(); return nil })

	return postgresengine.NewRecordStoreFromPGXPoolAndReplica(primary, replica, options...)
}

func (a *app) newPublisher() (eventsink.Publisher, error) {
	if !a.cfg.Kafka.HasBrokers() {
		return eventsink.NewLogPublisher(a.logger), nil
	}

	publisher, err := eventsink.NewKafkaPublisher(
		a.cfg.Kafka.Brokers,
		a.cfg.Kafka.Topic,
		eventsink.WithKafkaLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	a.closers = append(a.closers, publisher.Close)

	return publisher, nil
}

// migrate creates the postgres tables.
func (a *app) migrate(ctx context.Context) error {
	if a.postgres == nil {
		return ErrMigrationNeedsPostgres
	}

	return a.postgres.EnsureSchema(ctx)
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}

func (a *app) closeWith(err error) error {
	return errors.Join(err, a.close())
}
