package searchbooks

import (
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

const (
	queryType = "SearchBooks"
)

// Query represents the intent to find books by exact title and/or author.
// A query without title and author lists every book.
type Query struct {
	Title  string
	Author string
}

// BuildQuery creates a new Query. Blank values are ignored.
func BuildQuery(title, author string) Query {
	return Query{
		Title:  title,
		Author: author,
	}
}

// BuildListAllQuery creates a Query that matches every book.
func BuildListAllQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Criteria translates the query into record store criteria.
func (q Query) Criteria() recordstore.BookCriteria {
	return recordstore.BuildBookCriteria().
		WithTitle(q.Title).
		WithAuthor(q.Author).
		Finalize()
}
