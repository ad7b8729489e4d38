package memengine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

const (
	initialVersion = 1

	logMsgConcurrencyConflict = "recordstore operation: concurrency conflict detected"
	logAttrBookID             = "book_id"
	logAttrBorrowerID         = "borrower_id"
	logAttrExpectedVersion    = "expected_version"
	logAttrActualVersion      = "actual_version"
)

type naturalKey struct {
	first  string
	second string
}

// RecordStore keeps records in process memory. One mutex guards all maps, so the
// two-record write of a loan is atomic with respect to every other operation.
//
// It honors the same contract as the postgres engine: versioned updates, insert-if-absent
// by natural key, and ErrRecordNotFound for unknown ids.
type RecordStore struct {
	mu           sync.RWMutex
	books        map[string]recordstore.BookRecord
	bookKeys     map[naturalKey]string
	borrowers    map[string]recordstore.BorrowerRecord
	borrowerKeys map[naturalKey]string
	clock        func() time.Time
	logger       recordstore.Logger
}

// Option defines a functional option for configuring RecordStore.
type Option func(*RecordStore) error

// WithLogger sets the logger for the RecordStore. Only concurrency conflicts are logged.
func WithLogger(logger recordstore.Logger) Option {
	return func(rs *RecordStore) error {
		rs.logger = logger
		return nil
	}
}

// WithClock replaces time.Now for CreatedAt values.
func WithClock(clock func() time.Time) Option {
	return func(rs *RecordStore) error {
		rs.clock = clock
		return nil
	}
}

func NewRecordStore(options ...Option) (*RecordStore, error) {
	rs := &RecordStore{
		books:        make(map[string]recordstore.BookRecord),
		bookKeys:     make(map[naturalKey]string),
		borrowers:    make(map[string]recordstore.BorrowerRecord),
		borrowerKeys: make(map[naturalKey]string),
		clock:        time.Now,
	}

	for _, option := range options {
		if err := option(rs); err != nil {
			return nil, err
		}
	}

	return rs, nil
}

func (rs *RecordStore) GetBook(ctx context.Context, bookID string) (recordstore.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.BookRecord{}, err
	}

	if bookID == "" {
		return recordstore.BookRecord{}, recordstore.ErrEmptyRecordIDSupplied
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()

	book, ok := rs.books[bookID]
	if !ok {
		return recordstore.BookRecord{}, recordstore.ErrRecordNotFound
	}

	return book, nil
}

// GetBooks returns the known books among bookIDs, ordered by title and author.
func (rs *RecordStore) GetBooks(ctx context.Context, bookIDs []string) (recordstore.BookRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()

	books := make(recordstore.BookRecords, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		if book, ok := rs.books[bookID]; ok {
			books = append(books, book)
		}
	}

	sortBooks(books)

	return books, nil
}

// FindBooks returns the books matching criteria, ordered by title and author.
func (rs *RecordStore) FindBooks(ctx context.Context, criteria recordstore.BookCriteria) (recordstore.BookRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()

	books := make(recordstore.BookRecords, 0)
	for _, book := range rs.books {
		if criteria.Matches(book) {
			books = append(books, book)
		}
	}

	sortBooks(books)

	return books, nil
}

func (rs *RecordStore) GetBorrower(ctx context.Context, borrowerID string) (recordstore.BorrowerRecord, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.BorrowerRecord{}, err
	}

	if borrowerID == "" {
		return recordstore.BorrowerRecord{}, recordstore.ErrEmptyRecordIDSupplied
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()

	borrower, ok := rs.borrowers[borrowerID]
	if !ok {
		return recordstore.BorrowerRecord{}, recordstore.ErrRecordNotFound
	}

	return borrower.Clone(), nil
}

func (rs *RecordStore) InsertBookIfAbsent(ctx context.Context, book recordstore.BookRecord) (recordstore.BookRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.BookRecord{}, false, err
	}

	if book.BookID == "" {
		return recordstore.BookRecord{}, false, recordstore.ErrEmptyRecordIDSupplied
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	key := naturalKey{first: book.Title, second: book.Author}
	if existingID, ok := rs.bookKeys[key]; ok {
		return rs.books[existingID], false, nil
	}

	if existing, ok := rs.books[book.BookID]; ok {
		return existing, false, nil
	}

	stored := recordstore.BuildBookRecord(book.BookID, book.Title, book.Author, book.Category)
	stored.Version = initialVersion
	stored.CreatedAt = rs.clock().UTC()

	rs.books[stored.BookID] = stored
	rs.bookKeys[key] = stored.BookID

	return stored, true, nil
}

func (rs *RecordStore) InsertBorrowerIfAbsent(
	ctx context.Context,
	borrower recordstore.BorrowerRecord,
) (recordstore.BorrowerRecord, bool, error) {

	if err := ctx.Err(); err != nil {
		return recordstore.BorrowerRecord{}, false, err
	}

	if borrower.BorrowerID == "" {
		return recordstore.BorrowerRecord{}, false, recordstore.ErrEmptyRecordIDSupplied
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	key := naturalKey{first: borrower.Name, second: borrower.Role}
	if existingID, ok := rs.borrowerKeys[key]; ok {
		return rs.borrowers[existingID].Clone(), false, nil
	}

	if existing, ok := rs.borrowers[borrower.BorrowerID]; ok {
		return existing.Clone(), false, nil
	}

	stored := borrower.Clone()
	stored.Version = initialVersion
	stored.CreatedAt = rs.clock().UTC()

	rs.borrowers[stored.BorrowerID] = stored
	rs.borrowerKeys[key] = stored.BorrowerID

	return stored.Clone(), true, nil
}

// UpdateBook writes the book if the stored version still equals book.Version.
func (rs *RecordStore) UpdateBook(ctx context.Context, book recordstore.BookRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if err := rs.checkBookVersion(book); err != nil {
		return err
	}

	rs.writeBook(book)

	return nil
}

// UpdateLoan writes both records or neither.
func (rs *RecordStore) UpdateLoan(ctx context.Context, book recordstore.BookRecord, borrower recordstore.BorrowerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if err := rs.checkBookVersion(book); err != nil {
		return err
	}

	if err := rs.checkBorrowerVersion(borrower); err != nil {
		return err
	}

	rs.writeBook(book)
	rs.writeBorrower(borrower)

	return nil
}

func (rs *RecordStore) checkBookVersion(book recordstore.BookRecord) error {
	stored, ok := rs.books[book.BookID]
	if !ok || stored.Version != book.Version {
		rs.logConflict(logAttrBookID, book.BookID, book.Version, stored.Version)
		return recordstore.ErrConcurrencyConflict
	}

	return nil
}

func (rs *RecordStore) checkBorrowerVersion(borrower recordstore.BorrowerRecord) error {
	stored, ok := rs.borrowers[borrower.BorrowerID]
	if !ok || stored.Version != borrower.Version {
		rs.logConflict(logAttrBorrowerID, borrower.BorrowerID, borrower.Version, stored.Version)
		return recordstore.ErrConcurrencyConflict
	}

	return nil
}

// writeBook only touches the lending state, like the postgres engine does.
func (rs *RecordStore) writeBook(book recordstore.BookRecord) {
	stored := rs.books[book.BookID]
	stored.Reserved = book.Reserved
	stored.CurrentBorrower = book.CurrentBorrower
	stored.DueAt = book.DueAt
	stored.Extensions = book.Extensions
	stored.Version++
	rs.books[book.BookID] = stored
}

func (rs *RecordStore) writeBorrower(borrower recordstore.BorrowerRecord) {
	stored := rs.borrowers[borrower.BorrowerID]
	stored.BorrowedBooks = borrower.Clone().BorrowedBooks
	stored.Version++
	rs.borrowers[borrower.BorrowerID] = stored
}

func (rs *RecordStore) logConflict(idAttr, id string, expected, actual recordstore.VersionUint) {
	if rs.logger != nil {
		rs.logger.Info(
			logMsgConcurrencyConflict,
			idAttr, id,
			logAttrExpectedVersion, expected,
			logAttrActualVersion, actual,
		)
	}
}

func sortBooks(books recordstore.BookRecords) {
	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}

		return books[i].Author < books[j].Author
	})
}
