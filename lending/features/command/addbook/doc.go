// Package addbook implements the Add Book to Catalogue use case.
//
// A book is identified by its title and author. Adding a book that is already
// catalogued is a no-op: the existing id is returned and no event is generated.
package addbook
