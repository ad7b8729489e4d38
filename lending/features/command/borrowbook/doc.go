// Package borrowbook implements the Borrow Book use case.
//
// A borrower below their borrow limit reserves an unreserved book. Textbooks and
// periodicals are reserved for faculty. The loan is recorded on the book and on the
// borrower in one atomic save; concurrent attempts on the same book are settled by
// optimistic concurrency, the losers are re-decided and denied with AlreadyReserved.
package borrowbook
