package extendloan

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
	UpdateBook(ctx context.Context, book recordstore.BookRecord) error
}

// Result is returned by Handle. Event is set for successes and for denials.
type Result struct {
	BookID     core.BookIDString
	Due        time.Time
	Extensions int
	Event      core.DomainEvent
	meta       shell.HandlerResult
}

// Metadata returns the business outcome and retry information.
func (r Result) Metadata() shell.HandlerResult {
	return r.meta
}

// CommandHandler orchestrates the workflow Query -> Decide -> Save, with retry on concurrency conflicts.
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

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	ctx = recordstore.WithStrongConsistency(ctx)

	borrower, _, err := shell.LoadBorrower(ctx, h.recordStore, command.BorrowerID.String())
	if err != nil {
		return Result{}, err
	}

	book, bookRecord, err := shell.LoadBook(ctx, h.recordStore, command.BookID.String())
	if err != nil {
		return Result{}, err
	}

	decision := Decide(book, borrower, command)

	result := Result{
		BookID: book.ID,
		Event:  decision.Result.Event,
	}

	if denial := decision.Result.HasError(); denial != nil {
		return result, denial
	}

	// Only the book changes; its version guards against a concurrent return or extend.
	if err = h.recordStore.UpdateBook(ctx, shell.BookRecordFrom(decision.Book, bookRecord)); err != nil {
		return Result{}, err
	}

	result.Due = decision.Book.Due
	result.Extensions = decision.Book.Extensions

	return result, nil
}
