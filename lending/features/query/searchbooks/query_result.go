package searchbooks

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// BookView is the catalogue view of a book. Due is zero when the book is available.
type BookView struct {
	BookID    core.BookIDString
	Title     string
	Author    string
	Category  string
	Available bool
	Due       time.Time
}

// Books is the query result, ordered by title and author.
type Books struct {
	Books []BookView
	Count int
}

// ItemCount returns the number of books found.
func (r Books) ItemCount() int {
	return r.Count
}
