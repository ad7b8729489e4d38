package borrowerloans

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// LoanInfo represents a book currently lent to the borrower.
type LoanInfo struct {
	BookID     core.BookIDString
	Title      string
	Author     string
	Category   string
	Due        time.Time
	Extensions int
	Overdue    bool
}

// BorrowerLoans is the borrower with their current loans, earliest due first.
type BorrowerLoans struct {
	BorrowerID  core.BorrowerIDString
	Name        string
	Role        string
	BorrowLimit int
	Loans       []LoanInfo
	Count       int
}

// ItemCount returns the number of current loans.
func (r BorrowerLoans) ItemCount() int {
	return r.Count
}
