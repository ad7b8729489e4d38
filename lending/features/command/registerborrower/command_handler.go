package registerborrower

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// RecordStore defines the interface needed by the CommandHandler for record store operations.
type RecordStore interface {
	InsertBorrowerIfAbsent(ctx context.Context, borrower recordstore.BorrowerRecord) (recordstore.BorrowerRecord, bool, error)
}

// Result is returned by Handle.
type Result struct {
	BorrowerID core.BorrowerIDString
	Role       core.Role
	Created    bool
	Event      core.DomainEvent
	meta       shell.HandlerResult
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

// Handle validates and inserts the borrower; registering an existing name and role is idempotent.
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

	stored, created, err := h.recordStore.InsertBorrowerIfAbsent(ctx, shell.NewBorrowerRecord(decision.Borrower))
	if err != nil {
		return Result{}, err
	}

	result := Result{
		BorrowerID: stored.BorrowerID,
		Role:       decision.Borrower.Role,
		Created:    created,
	}

	if created {
		result.Event = decision.Result.Event
	}

	return result, nil
}
