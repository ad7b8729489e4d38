package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalogue.
// BookID is the id the book gets if it is not catalogued yet.
type Command struct {
	BookID     uuid.UUID
	Title      string
	Author     string
	Category   string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, title, author, category string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Title:      title,
		Author:     author,
		Category:   category,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
