package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Add, remove and list books",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title> <author> <isbn>",
		Short: "Catalog a new book",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.mgr.AddBook(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added book '%s' (ISBN %s)\n", b.Title, b.ID)
			return nil
		},
	}, &cobra.Command{
		Use:   "remove <isbn>",
		Short: "Remove a book that is not checked out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.RemoveBook(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed book %s\n", args[0])
			return nil
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List every book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.mgr.GetAllBooks()
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		},
	})
	return cmd
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"registration"},
		Short:   "Register, delete and list users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <user-id> <name>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.mgr.AddUser(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user '%s' with ID %s\n", u.Name, u.ID)
			return nil
		},
	}, &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user who holds no books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.DeleteUser(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
			return nil
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.mgr.GetAllUsers()
			if err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		},
	})
	return cmd
}

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <book> <user>",
		Short: "Check out a book by ISBN or title to a user by ID or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.mgr.CheckoutBook(args[0], args[1])
			if err != nil {
				return err
			}
			printCheckout(cmd.OutOrStdout(), b, a.mgr.BorrowerName(b.BorrowedBy()))
			return nil
		},
	}
}

func newCheckInCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "checkin <book>",
		Aliases: []string{"return"},
		Short:   "Check in a checked-out book by ISBN or title",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.mgr.CheckInBook(args[0])
			if err != nil {
				return err
			}
			printCheckIn(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func newHeldCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "held <user>",
		Short: "List the books a user holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, books, err := a.mgr.BooksHeldBy(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Books held by %s (ID %s):\n", u.Name, u.ID)
			printBooks(out, books)
			return nil
		},
	}
}

func newOverdueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List checked-out books past their due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.mgr.OverdueBooks()
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		},
	}
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [query]",
		Short: "List books, or search titles, authors and ISBNs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			books, err := a.mgr.SearchBooks(query)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past loans from the history ledger",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "book <isbn>",
		Short: "Loans of one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loans, err := a.mgr.BookHistory(args[0])
			if err != nil {
				return err
			}
			printLoans(cmd.OutOrStdout(), loans)
			return nil
		},
	}, &cobra.Command{
		Use:   "user <user-id>",
		Short: "Loans of one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loans, err := a.mgr.UserHistory(args[0])
			if err != nil {
				return err
			}
			printLoans(cmd.OutOrStdout(), loans)
			return nil
		},
	})
	return cmd
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}
