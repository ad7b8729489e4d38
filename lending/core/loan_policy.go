package core

import "time"

const day = 24 * time.Hour

// LoanDuration is the loan period granted on borrow.
func LoanDuration(role Role) time.Duration {
	if role == RoleFaculty {
		return 40 * day
	}

	return 15 * day
}

// ExtensionLimit is the number of consecutive extensions allowed between two releases.
func ExtensionLimit(role Role) int {
	if role == RoleFaculty {
		return 5
	}

	return 3
}

// ExtensionDuration is how far one extension moves the due date.
func ExtensionDuration(category Category) time.Duration {
	if category == CategoryTextbook {
		return 30 * day
	}

	return 15 * day
}

// IsRestrictedCategory is true for categories only faculty may borrow.
func IsRestrictedCategory(category Category) bool {
	return category == CategoryTextbook || category == CategoryPeriodical
}

// BorrowLimit is the maximum number of books a borrower may hold at once.
func BorrowLimit(role Role) int {
	if role == RoleFaculty {
		return 5
	}

	return 3
}
