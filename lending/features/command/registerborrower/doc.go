// Package registerborrower implements the Register Borrower use case.
//
// Borrowers are unique by name and role. Registering the same pair again
// returns the existing borrower and generates no event.
package registerborrower
