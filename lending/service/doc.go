// Package service is the entry point of the lending rules engine.
//
// It offers one method per use case: AddBook, RegisterBorrower, Borrow, Extend, ReturnBook,
// CheckFines, SearchBooks, ListAllBooks and BorrowerLoans. Each call is bounded by the
// operation timeout, runs through an instrumented handler, and publishes the resulting
// domain event best-effort. Denied requests publish a LendingRequestDenied event.
//
// Every returned error can be classified with shell.CategoryOf.
package service
