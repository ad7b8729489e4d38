// Package borrowerloans implements the Borrower Loans query use case.
//
// It lists the books a borrower currently holds with their due dates,
// flagging the ones that are overdue as of the query time.
package borrowerloans
