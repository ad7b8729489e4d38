// Package checkfines implements the Check Fines query use case.
//
// Fines are computed on the fly from the due dates of the books a borrower
// currently holds. The query is read-only: checking fines never changes a loan.
package checkfines
