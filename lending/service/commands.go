package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/extendloan"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/registerborrower"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/returnbook"
)

// AddBookResult reports the id of the catalogued book and whether this call created it.
type AddBookResult struct {
	BookID  core.BookIDString
	Created bool
}

// RegisterBorrowerResult reports the id of the borrower and whether this call created it.
type RegisterBorrowerResult struct {
	BorrowerID core.BorrowerIDString
	Role       core.Role
	Created    bool
}

type BorrowResult struct {
	BookID     core.BookIDString
	BorrowerID core.BorrowerIDString
	Due        time.Time
}

type ExtendResult struct {
	BookID     core.BookIDString
	Due        time.Time
	Extensions int
}

// ReturnResult carries the fine the loan had accrued when it was returned; it is informational only.
type ReturnResult struct {
	BookID      core.BookIDString
	BorrowerID  core.BorrowerIDString
	FineOwed    decimal.Decimal
	OverdueDays int
}

// AddBook catalogues a book. Adding a title and author that are already catalogued returns the existing book.
func (s *Service) AddBook(ctx context.Context, title, author, category string) (AddBookResult, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.addBook.Handle(ctx, addbook.BuildCommand(s.newID(), title, author, category, s.clock()))
	if err != nil {
		return AddBookResult{}, err
	}

	s.publish(ctx, result.Event)

	return AddBookResult{BookID: result.BookID, Created: result.Created}, nil
}

// RegisterBorrower registers a borrower. Registering the same name and role again returns the existing borrower.
func (s *Service) RegisterBorrower(ctx context.Context, name, role string) (RegisterBorrowerResult, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.registerBorrower.Handle(ctx, registerborrower.BuildCommand(s.newID(), name, role, s.clock()))
	if err != nil {
		return RegisterBorrowerResult{}, err
	}

	s.publish(ctx, result.Event)

	return RegisterBorrowerResult{BorrowerID: result.BorrowerID, Role: result.Role, Created: result.Created}, nil
}

// Borrow lends a book to a borrower.
func (s *Service) Borrow(ctx context.Context, borrowerID, bookID string) (BorrowResult, error) {
	borrowerUUID, bookUUID, err := parseLoanIDs(borrowerID, bookID)
	if err != nil {
		return BorrowResult{}, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.borrowBook.Handle(ctx, borrowbook.BuildCommand(bookUUID, borrowerUUID, s.clock()))
	s.publish(ctx, result.Event)

	if err != nil {
		return BorrowResult{}, err
	}

	return BorrowResult{BookID: result.BookID, BorrowerID: result.BorrowerID, Due: result.Due}, nil
}

// Extend pushes back the due date of a book the borrower holds.
func (s *Service) Extend(ctx context.Context, borrowerID, bookID string) (ExtendResult, error) {
	borrowerUUID, bookUUID, err := parseLoanIDs(borrowerID, bookID)
	if err != nil {
		return ExtendResult{}, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.extendLoan.Handle(ctx, extendloan.BuildCommand(bookUUID, borrowerUUID, s.clock()))
	s.publish(ctx, result.Event)

	if err != nil {
		return ExtendResult{}, err
	}

	return ExtendResult{BookID: result.BookID, Due: result.Due, Extensions: result.Extensions}, nil
}

// ReturnBook takes a book back from the borrower.
func (s *Service) ReturnBook(ctx context.Context, borrowerID, bookID string) (ReturnResult, error) {
	borrowerUUID, bookUUID, err := parseLoanIDs(borrowerID, bookID)
	if err != nil {
		return ReturnResult{}, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	result, err := s.returnBook.Handle(ctx, returnbook.BuildCommand(bookUUID, borrowerUUID, s.clock()))
	s.publish(ctx, result.Event)

	if err != nil {
		return ReturnResult{}, err
	}

	return ReturnResult{
		BookID:      result.BookID,
		BorrowerID:  result.BorrowerID,
		FineOwed:    result.FineOwed,
		OverdueDays: result.OverdueDays,
	}, nil
}

func parseLoanIDs(borrowerID, bookID string) (uuid.UUID, uuid.UUID, error) {
	borrowerUUID, borrowerErr := parseID("borrower id", borrowerID)
	bookUUID, bookErr := parseID("book id", bookID)

	if err := errors.Join(borrowerErr, bookErr); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return borrowerUUID, bookUUID, nil
}
