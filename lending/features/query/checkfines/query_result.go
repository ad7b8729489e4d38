package checkfines

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// FineInfo is the fine owed for one overdue book.
type FineInfo struct {
	BookID      core.BookIDString
	Title       string
	Due         time.Time
	OverdueDays int
	Amount      decimal.Decimal
}

// FineReport lists the overdue books of a borrower, most overdue first, and their total.
type FineReport struct {
	BorrowerID core.BorrowerIDString
	Fines      []FineInfo
	Total      decimal.Decimal
	Currency   string
	AsOf       time.Time
}

// ItemCount returns the number of fined books.
func (r FineReport) ItemCount() int {
	return len(r.Fines)
}

// HasFines reports whether anything is owed.
func (r FineReport) HasFines() bool {
	return r.Total.IsPositive()
}
