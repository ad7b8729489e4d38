package borrowbook

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// RecordStore defines the interface needed by the CommandHandler for record store operations.
type RecordStore interface {
	shell.GetsBook
	shell.GetsBorrower
	UpdateLoan(ctx context.Context, book recordstore.BookRecord, borrower recordstore.BorrowerRecord) error
}

// Result is returned by Handle. Event is set for successes and for denials.
type Result struct {
	BookID     core.BookIDString
	BorrowerID core.BorrowerIDString
	Due        time.Time
	Event      core.DomainEvent
	meta       shell.HandlerResult
}

// Metadata returns the business outcome and retry information.
func (r Result) Metadata() shell.HandlerResult {
	return r.meta
}

// CommandHandler orchestrates the workflow Query -> Decide -> Save, with retry on concurrency conflicts.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	recordStore  RecordStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(recordStore RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		recordStore: recordStore,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry logic.
// A retry after a lost race re-reads both records, so the loser observes AlreadyReserved.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	result.meta = shell.ResultFor(retryMetrics, false, err)

	return result, err
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	ctx = recordstore.WithStrongConsistency(ctx)

	// Query phase
	borrower, borrowerRecord, err := shell.LoadBorrower(ctx, h.recordStore, command.BorrowerID.String())
	if err != nil {
		return Result{}, err
	}

	book, bookRecord, err := shell.LoadBook(ctx, h.recordStore, command.BookID.String())
	if err != nil {
		return Result{}, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(book, borrower, command)

	result := Result{
		BookID:     book.ID,
		BorrowerID: borrower.ID,
		Event:      decision.Result.Event,
	}

	if denial := decision.Result.HasError(); denial != nil {
		return result, denial
	}

	// Save phase - both records or neither
	err = h.recordStore.UpdateLoan(
		ctx,
		shell.BookRecordFrom(decision.Book, bookRecord),
		shell.BorrowerRecordFrom(decision.Borrower, borrowerRecord),
	)
	if err != nil {
		return Result{}, err
	}

	result.Due = decision.Book.Due

	return result, nil
}
