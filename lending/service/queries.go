package service

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending/features/query/borrowerloans"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/checkfines"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/searchbooks"
)

type (
	FineReport   = checkfines.FineReport
	FineInfo     = checkfines.FineInfo
	BookView     = searchbooks.BookView
	BorrowerView = borrowerloans.BorrowerLoans
	LoanView     = borrowerloans.LoanInfo
)

// CheckFines reports the fines the borrower owes right now. It changes nothing.
func (s *Service) CheckFines(ctx context.Context, borrowerID string) (FineReport, error) {
	borrowerUUID, err := parseID("borrower id", borrowerID)
	if err != nil {
		return FineReport{}, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.checkFines.Handle(ctx, checkfines.BuildQuery(borrowerUUID, s.clock()))
}

// SearchBooks finds books by exact title and/or author; blank values are ignored, no criteria lists all books.
func (s *Service) SearchBooks(ctx context.Context, title, author string) ([]BookView, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.searchBooks.Handle(ctx, searchbooks.BuildQuery(title, author))
	if err != nil {
		return nil, err
	}

	return result.Books, nil
}

// ListAllBooks lists the whole catalogue ordered by title and author.
func (s *Service) ListAllBooks(ctx context.Context) ([]BookView, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.searchBooks.Handle(ctx, searchbooks.BuildListAllQuery())
	if err != nil {
		return nil, err
	}

	return result.Books, nil
}

// BorrowerLoans lists the books the borrower currently holds.
func (s *Service) BorrowerLoans(ctx context.Context, borrowerID string) (BorrowerView, error) {
	borrowerUUID, err := parseID("borrower id", borrowerID)
	if err != nil {
		return BorrowerView{}, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.borrowerLoans.Handle(ctx, borrowerloans.BuildQuery(borrowerUUID, s.clock()))
}
