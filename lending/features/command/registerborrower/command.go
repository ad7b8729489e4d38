package registerborrower

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

const (
	commandType = "RegisterBorrower"
)

// Command represents the intent to register a borrower.
type Command struct {
	BorrowerID uuid.UUID
	Name       string
	Role       string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowerID uuid.UUID, name, role string, occurredAt time.Time) Command {
	return Command{
		BorrowerID: borrowerID,
		Name:       name,
		Role:       role,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
