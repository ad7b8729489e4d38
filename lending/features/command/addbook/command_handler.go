package addbook

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// RecordStore defines the interface needed by the CommandHandler for record store operations.
type RecordStore interface {
	InsertBookIfAbsent(ctx context.Context, book recordstore.BookRecord) (recordstore.BookRecord, bool, error)
}

// Result is returned by Handle.
// When the book already existed, BookID is the existing id, Created is false and Event is nil.
type Result struct {
	BookID  core.BookIDString
	Created bool
	Event   core.DomainEvent
	meta    shell.HandlerResult
}

// Metadata returns the business outcome and retry information.
func (r Result) Metadata() shell.HandlerResult {
	return r.meta
}

// CommandHandler orchestrates the workflow Decide -> Insert.
type CommandHandler struct {
	recordStore RecordStore
}

// NewCommandHandler creates a new CommandHandler with the provided RecordStore dependency.
func NewCommandHandler(recordStore RecordStore) CommandHandler {
	return CommandHandler{
		recordStore: recordStore,
	}
}

// Handle validates and inserts the book.
// Inserting does not conflict, the retry wrapper is kept for uniform metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	})

	result.meta = shell.ResultFor(retryMetrics, err == nil && !result.Created, err)

	return result, err
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	decision := Decide(command)
	if err := decision.Result.HasError(); err != nil {
		return Result{}, err
	}

	stored, created, err := h.recordStore.InsertBookIfAbsent(ctx, shell.NewBookRecord(decision.Book))
	if err != nil {
		return Result{}, err
	}

	if !created {
		return Result{BookID: stored.BookID}, nil
	}

	return Result{
		BookID:  stored.BookID,
		Created: true,
		Event:   decision.Result.Event,
	}, nil
}
