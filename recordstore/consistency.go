package recordstore

import "context"

// ConsistencyLevel selects which database a read is served from.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. Command handlers use it because
	// they read a record, decide, and write back with the version they saw.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica, if one is configured.
	// Catalog searches and reports can live with slightly stale rows.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key under which the consistency level is stored.
const ConsistencyLevelKey contextKey = "recordstore.consistency_level"

// WithStrongConsistency marks ctx so that reads go to the primary database.
//
// Example usage:
//
//	ctx = recordstore.WithStrongConsistency(ctx)
//	book, err := store.GetBook(ctx, bookID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks ctx so that reads may go to a replica database.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel returns the level stored in ctx, StrongConsistency if none is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
