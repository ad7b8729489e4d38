package checkfines

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// ProjectFineReport computes the fines of a borrower from the books they hold.
//
// Query Logic:
//
//	GIVEN: A borrower and the books in their borrowed set
//	WHEN: CheckFines query is executed
//	THEN: every book lent to the borrower with a positive fine is listed, plus the total
//	EXCLUDES: books that are not overdue and books not lent to this borrower
func ProjectFineReport(borrower core.Borrower, books []core.Book, asOf time.Time, currency string) FineReport {
	report := FineReport{
		BorrowerID: borrower.ID,
		Fines:      []FineInfo{},
		Total:      decimal.Zero,
		Currency:   currency,
		AsOf:       asOf,
	}

	for _, book := range books {
		if !book.IsLentTo(borrower.ID) {
			continue
		}

		fine := book.Fine(asOf)
		if !fine.IsOwed() {
			continue
		}

		report.Fines = append(report.Fines, FineInfo{
			BookID:      book.ID,
			Title:       book.Title,
			Due:         fine.Due,
			OverdueDays: fine.OverdueDays,
			Amount:      fine.Amount,
		})
		report.Total = report.Total.Add(fine.Amount)
	}

	slices.SortFunc(report.Fines, func(a, b FineInfo) int {
		return a.Due.Compare(b.Due)
	})

	return report
}
