// Package extendloan implements the Extend Loan use case.
//
// A borrower holding a book pushes its due date back by 30 days for textbooks and
// 15 days otherwise. Faculty may extend five times, standard borrowers three times,
// and never once the book is overdue.
package extendloan
