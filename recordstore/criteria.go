package recordstore

import "strings"

/***** BookCriteria *****/

// BookCriteria selects books by exact title and/or author.
// An empty criteria matches every book.
type BookCriteria struct {
	title  string
	author string
}

func (c BookCriteria) Title() string {
	return c.title
}

func (c BookCriteria) Author() string {
	return c.author
}

func (c BookCriteria) HasTitle() bool {
	return c.title != ""
}

func (c BookCriteria) HasAuthor() bool {
	return c.author != ""
}

// IsEmpty is true when neither title nor author is set.
func (c BookCriteria) IsEmpty() bool {
	return !c.HasTitle() && !c.HasAuthor()
}

// Matches applies the criteria to a record. Engines that can't push the criteria down
// into a query language use it directly.
func (c BookCriteria) Matches(r BookRecord) bool {
	if c.HasTitle() && r.Title != c.title {
		return false
	}

	if c.HasAuthor() && r.Author != c.author {
		return false
	}

	return true
}

/***** BookCriteriaBuilder *****/

// BookCriteriaBuilder builds BookCriteria.
//
// It sanitizes the input by trimming surrounding whitespace; blank values are ignored:
//
//	criteria := BuildBookCriteria().WithTitle("Dune").WithAuthor("Herbert").Finalize()
//	all := BuildBookCriteria().MatchingAnyBook()
type BookCriteriaBuilder interface {
	WithTitle(title string) BookCriteriaBuilder
	WithAuthor(author string) BookCriteriaBuilder
	Finalize() BookCriteria
	MatchingAnyBook() BookCriteria
}

type bookCriteriaBuilder struct {
	criteria BookCriteria
}

func BuildBookCriteria() BookCriteriaBuilder {
	return bookCriteriaBuilder{}
}

func (b bookCriteriaBuilder) WithTitle(title string) BookCriteriaBuilder {
	b.criteria.title = strings.TrimSpace(title)

	return b
}

func (b bookCriteriaBuilder) WithAuthor(author string) BookCriteriaBuilder {
	b.criteria.author = strings.TrimSpace(author)

	return b
}

func (b bookCriteriaBuilder) Finalize() BookCriteria {
	return b.criteria
}

func (b bookCriteriaBuilder) MatchingAnyBook() BookCriteria {
	return BookCriteria{}
}
