package core

import (
	"time"
)

// BookIDString represents a book identifier.
type BookIDString = string

// BorrowerIDString represents a borrower identifier.
type BorrowerIDString = string

// EventTypeString represents the type identifier of a domain event.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// Role classifies borrowers. It drives every policy threshold.
type Role string

const (
	RoleFaculty  Role = "faculty"
	RoleStandard Role = "standard"
)

// ParseRole accepts exactly "faculty" or "standard".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFaculty, RoleStandard:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}

// Category is the closed set of book categories.
type Category string

const (
	CategoryTextbook   Category = "textbook"
	CategoryPeriodical Category = "periodical"
	CategoryGeneral    Category = "general"
)

// ParseCategory accepts exactly "textbook", "periodical" or "general".
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTextbook, CategoryPeriodical, CategoryGeneral:
		return Category(s), nil
	default:
		return "", ErrUnknownCategory
	}
}

func (c Category) String() string {
	return string(c)
}
