package shell

import (
	"context"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandResult is implemented by every command handler result.
// Metadata exposes the business outcome and retry information for observability.
type CommandResult interface {
	Metadata() HandlerResult
}

// CommandHandler defines the contract for components that process commands.
// Handlers orchestrate the workflow Query -> Decide -> Save with retry on concurrency conflicts.
type CommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query results (read models).
// ItemCount is used for logging and metrics only.
type QueryResult interface {
	ItemCount() int
}

// QueryHandler defines the contract for components that process queries and return read models.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
