package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/lending/identity"
	"github.com/AntonStoeckl/library-lending-go/lending/service"
)

const dateLayout = "2006-01-02 15:04 MST"

var (
	// ErrMissingBorrower is returned when neither --borrower nor --token is given.
	ErrMissingBorrower = errors.New("either --borrower or --token is required")

	// ErrMissingJWTSecret is returned by token when jwt.secret is not configured.
	ErrMissingJWTSecret = errors.New("jwt.secret must be configured to issue tokens")
)

func newAddBookCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "add-book TITLE AUTHOR CATEGORY",
		Short: "Add a book to the catalogue (category: textbook, periodical or general)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := state.app.service.AddBook(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if result.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "added book %s\n", result.BookID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "book already catalogued as %s\n", result.BookID)
			}

			return nil
		},
	}
}

func newRegisterCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "register NAME ROLE",
		Short: "Register a borrower (role: faculty or standard)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := state.app.service.RegisterBorrower(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if result.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s borrower %s\n", result.Role, result.BorrowerID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "borrower already registered as %s\n", result.BorrowerID)
			}

			return nil
		},
	}
}

func newTokenCommand(state *rootState) *cobra.Command {
	var borrowerID, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed token for a borrower",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.app.cfg
			if cfg.JWT.Secret == "" {
				return ErrMissingJWTSecret
			}

			issuer, err := identity.NewHS256Issuer([]byte(cfg.JWT.Secret), cfg.JWT.TTL, time.Now)
			if err != nil {
				return err
			}

			token, err := issuer.Issue(borrowerID, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&borrowerID, "borrower", "", "borrower id")
	cmd.Flags().StringVar(&role, "role", "standard", "borrower role")
	_ = cmd.MarkFlagRequired("borrower")

	return cmd
}

// borrowerFlags lets a command identify the borrower by id or by token.
type borrowerFlags struct {
	borrowerID string
	token      string
}

func (f *borrowerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.borrowerID, "borrower", "", "borrower id")
	cmd.Flags().StringVar(&f.token, "token", "", "bearer token identifying the borrower")
	cmd.MarkFlagsMutuallyExclusive("borrower", "token")
}

func (f *borrowerFlags) resolve(cmd *cobra.Command, svc *service.Service) (string, error) {
	switch {
	case f.token != "":
		who, err := svc.Authenticate(cmd.Context(), f.token)
		if err != nil {
			return "", err
		}

		return who.BorrowerID, nil
	case f.borrowerID != "":
		return f.borrowerID, nil
	default:
		return "", ErrMissingBorrower
	}
}

func newBorrowCommand(state *rootState) *cobra.Command {
	var who borrowerFlags

	cmd := &cobra.Command{
		Use:   "borrow BOOK_ID",
		Short: "Borrow a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			borrowerID, err := who.resolve(cmd, state.app.service)
			if err != nil {
				return err
			}

			result, err := state.app.service.Borrow(cmd.Context(), borrowerID, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "borrowed %s, due %s\n", result.BookID, result.Due.Format(dateLayout))

			return nil
		},
	}

	who.register(cmd)

	return cmd
}

func newExtendCommand(state *rootState) *cobra.Command {
	var who borrowerFlags

	cmd := &cobra.Command{
		Use:   "extend BOOK_ID",
		Short: "Extend the due date of a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			borrowerID, err := who.resolve(cmd, state.app.service)
			if err != nil {
				return err
			}

			result, err := state.app.service.Extend(cmd.Context(), borrowerID, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "extended %s to %s (extension %d)\n",
				result.BookID, result.Due.Format(dateLayout), result.Extensions)

			return nil
		},
	}

	who.register(cmd)

	return cmd
}

func newReturnCommand(state *rootState) *cobra.Command {
	var who borrowerFlags

	cmd := &cobra.Command{
		Use:   "return BOOK_ID",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			borrowerID, err := who.resolve(cmd, state.app.service)
			if err != nil {
				return err
			}

			result, err := state.app.service.ReturnBook(cmd.Context(), borrowerID, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "returned %s\n", result.BookID)

			if result.FineOwed.IsPositive() {
				fmt.Fprintf(out, "fine owed: %s %s (%d days overdue)\n",
					result.FineOwed.StringFixed(2), state.app.cfg.Fines.Currency, result.OverdueDays)
			}

			return nil
		},
	}

	who.register(cmd)

	return cmd
}

func newFinesCommand(state *rootState) *cobra.Command {
	var who borrowerFlags

	cmd := &cobra.Command{
		Use:   "fines",
		Short: "Show the fines a borrower owes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			borrowerID, err := who.resolve(cmd, state.app.service)
			if err != nil {
				return err
			}

			report, err := state.app.service.CheckFines(cmd.Context(), borrowerID)
			if err != nil {
				return err
			}

			printFines(cmd.OutOrStdout(), report)

			return nil
		},
	}

	who.register(cmd)

	return cmd
}

func newSearchCommand(state *rootState) *cobra.Command {
	var title, author string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find books by exact title and/or author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := state.app.service.SearchBooks(cmd.Context(), title, author)
			if err != nil {
				return err
			}

			printBooks(cmd.OutOrStdout(), books)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "exact title")
	cmd.Flags().StringVar(&author, "author", "", "exact author")

	return cmd
}

func newListCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := state.app.service.ListAllBooks(cmd.Context())
			if err != nil {
				return err
			}

			printBooks(cmd.OutOrStdout(), books)

			return nil
		},
	}
}

func newLoansCommand(state *rootState) *cobra.Command {
	var who borrowerFlags

	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List the books a borrower currently holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			borrowerID, err := who.resolve(cmd, state.app.service)
			if err != nil {
				return err
			}

			view, err := state.app.service.BorrowerLoans(cmd.Context(), borrowerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s), %d of %d books\n", view.Name, view.Role, view.Count, view.BorrowLimit)

			for _, loan := range view.Loans {
				overdue := ""
				if loan.Overdue {
					overdue = " OVERDUE"
				}

				fmt.Fprintf(out, "  %s  %s by %s, due %s%s\n",
					loan.BookID, loan.Title, loan.Author, loan.Due.Format(dateLayout), overdue)
			}

			return nil
		},
	}

	who.register(cmd)

	return cmd
}

func newMigrateCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables if they don't exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := state.app.migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return nil
		},
	}
}

func printBooks(out io.Writer, books []service.BookView) {
	if len(books) == 0 {
		fmt.Fprintln(out, "no books found")
		return
	}

	for _, book := range books {
		status := "available"
		if !book.Available {
			status = "due " + book.Due.Format(dateLayout)
		}

		fmt.Fprintf(out, "%s  %s by %s [%s] %s\n", book.BookID, book.Title, book.Author, book.Category, status)
	}
}

func printFines(out io.Writer, report service.FineReport) {
	if !report.HasFines() {
		fmt.Fprintln(out, "no fines")
		return
	}

	for _, fine := range report.Fines {
		fmt.Fprintf(out, "  %s  %s, %d days overdue: %s %s\n",
			fine.BookID, fine.Title, fine.OverdueDays, fine.Amount.StringFixed(2), report.Currency)
	}

	fmt.Fprintf(out, "total: %s %s\n", report.Total.StringFixed(2), report.Currency)
}
