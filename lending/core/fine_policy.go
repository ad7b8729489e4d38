package core

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	flatFine           = decimal.NewFromInt(10)
	finePerDayAfterCap = decimal.NewFromInt(20)
)

const flatFineDays = 7

// Fine is the fine computed for one book.
type Fine struct {
	BookID      BookIDString
	Due         time.Time
	OverdueDays int
	Amount      decimal.Decimal
}

// IsOwed reports whether the amount is positive.
func (f Fine) IsOwed() bool {
	return f.Amount.IsPositive()
}

// OverdueDays counts whole days past due, rounded down. It is 0 when not overdue.
func OverdueDays(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}

	return int(now.Sub(due) / day)
}

// ComputeFine returns the fine for a loan due at due, as of now:
//   - 0 if now <= due
//   - 10 for up to 7 whole overdue days, including a partial first day
//   - 10 + 20 per whole day beyond the 7th
func ComputeFine(due, now time.Time) decimal.Decimal {
	if !now.After(due) {
		return decimal.Zero
	}

	overdueDays := OverdueDays(due, now)
	if overdueDays <= flatFineDays {
		return flatFine
	}

	return flatFine.Add(finePerDayAfterCap.Mul(decimal.NewFromInt(int64(overdueDays - flatFineDays))))
}
