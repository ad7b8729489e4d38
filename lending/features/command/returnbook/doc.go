// Package returnbook implements the Return Book use case.
//
// The book is released and removed from the borrower's set in one atomic save.
// A borrower that lists a book which is lent to someone else points at corrupted
// records; the return is refused with LoanInconsistent and nothing is written.
package returnbook
