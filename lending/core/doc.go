// Package core contains the lending rules of a university library:
// loan periods, extensions, borrow limits, category restrictions and overdue fines.
//
// Books and borrowers are plain values. Their methods never mutate the receiver;
// they return the changed copy together with a policy error, so Decide functions
// in the feature slices stay pure and testable without any infrastructure.
//
// Domain events (BookAdded, BookBorrowed, DueDateExtended, ...) describe accepted
// changes and are published by the shell after a successful save.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
