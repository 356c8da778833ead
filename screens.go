package main

import (
	"fmt"

	"library-system/library"
)

// action is one command offered by a screen.
type action struct {
	name string
	help string
	run  func(sh *shell) error
}

// screen groups the actions of one workflow.
type screen struct {
	name    string
	title   string
	actions []action
}

func (s *screen) find(name string) (action, bool) {
	for _, a := range s.actions {
		if a.name == name {
			return a, true
		}
	}
	return action{}, false
}

// screens is the shell's main menu, in display order.
var screens = []struct {
	name  string
	build func(mgr *library.LibraryManager) *screen
}{
	{"catalog", newCatalogScreen},
	{"circulation", newCirculationScreen},
	{"registration", newRegistrationScreen},
	{"browse", newBrowseScreen},
}

func lookupScreen(choice string, mgr *library.LibraryManager) (*screen, bool) {
	for i, s := range screens {
		if choice == s.name || choice == fmt.Sprint(i+1) {
			return s.build(mgr), true
		}
	}
	return nil, false
}

func newCatalogScreen(mgr *library.LibraryManager) *screen {
	return &screen{
		name:  "catalog",
		title: "Catalog books",
		actions: []action{
			{"add", "catalog a new book", func(sh *shell) error {
				in, err := sh.askAll("Title: ", "Author: ", "ISBN: ")
				if err != nil {
					return err
				}
				b, err := mgr.AddBook(in[0], in[1], in[2])
				if err != nil {
					sh.report(err)
					return nil
				}
				sh.printf("Added book '%s' (ISBN %s)\n", b.Title, b.ID)
				return nil
			}},
			{"remove", "remove a book that is not checked out", func(sh *shell) error {
				isbn, err := sh.ask("ISBN: ")
				if err != nil {
					return err
				}
				if err := mgr.RemoveBook(isbn); err != nil {
					sh.report(err)
					return nil
				}
				sh.printf("Removed book %s\n", isbn)
				return nil
			}},
			{"list", "list every book", func(sh *shell) error {
				books, err := mgr.GetAllBooks()
				if err != nil {
					sh.report(err)
					return nil
				}
				printBooks(sh.out, books)
				return nil
			}},
		},
	}
}

func newCirculationScreen(mgr *library.LibraryManager) *screen {
	s := &screen{
		name:  "circulation",
		title: "Check books out and in",
		actions: []action{
			{"checkout", "lend a book to a user", func(sh *shell) error {
				book, err := sh.ask("Book ISBN or title: ")
				if err != nil {
					return err
				}
				user, err := sh.ask("User ID or name: ")
				if err != nil {
					return err
				}
				b, err := mgr.CheckoutBook(book, user)
				if err != nil {
					sh.report(err)
					return nil
				}
				printCheckout(sh.out, b, mgr.BorrowerName(b.BorrowedBy()))
				return nil
			}},
			{"checkin", "return a checked-out book", func(sh *shell) error {
				book, err := sh.ask("Book ISBN or title: ")
				if err != nil {
					return err
				}
				rec, err := mgr.CheckInBook(book)
				if err != nil {
					sh.report(err)
					return nil
				}
				printCheckIn(sh.out, rec)
				return nil
			}},
			{"held", "list the books a user holds", func(sh *shell) error {
				user, err := sh.ask("User ID or name: ")
				if err != nil {
					return err
				}
				u, books, err := mgr.BooksHeldBy(user)
				if err != nil {
					sh.report(err)
					return nil
				}
				sh.printf("Books held by %s (ID %s):\n", u.Name, u.ID)
				printBooks(sh.out, books)
				return nil
			}},
			{"recent", "list this session's check-ins, newest first", func(sh *shell) error {
				printCheckIns(sh.out, mgr.RecentCheckIns())
				return nil
			}},
			{"overdue", "list books past their due date", func(sh *shell) error {
				books, err := mgr.OverdueBooks()
				if err != nil {
					sh.report(err)
					return nil
				}
				printBooks(sh.out, books)
				return nil
			}},
		},
	}
	if mgr.HistoryEnabled() {
		s.actions = append(s.actions,
			action{"book history", "past loans of a book", func(sh *shell) error {
				isbn, err := sh.ask("ISBN: ")
				if err != nil {
					return err
				}
				loans, err := mgr.BookHistory(isbn)
				if err != nil {
					sh.report(err)
					return nil
				}
				printLoans(sh.out, loans)
				return nil
			}},
			action{"user history", "past loans of a user", func(sh *shell) error {
				id, err := sh.ask("User ID: ")
				if err != nil {
					return err
				}
				loans, err := mgr.UserHistory(id)
				if err != nil {
					sh.report(err)
					return nil
				}
				printLoans(sh.out, loans)
				return nil
			}},
		)
	}
	return s
}

func newRegistrationScreen(mgr *library.LibraryManager) *screen {
	return &screen{
		name:  "registration",
		title: "Register and delete users",
		actions: []action{
			{"add", "register a user", func(sh *shell) error {
				id, err := sh.ask("User ID: ")
				if err != nil {
					return err
				}
				name, err := sh.ask("Name: ")
				if err != nil {
					return err
				}
				u, err := mgr.AddUser(id, name)
				if err != nil {
					sh.report(err)
					return nil
				}
				sh.printf("Added user '%s' with ID %s\n", u.Name, u.ID)
				return nil
			}},
			{"delete", "delete a user who holds no books", func(sh *shell) error {
				id, err := sh.ask("User ID: ")
				if err != nil {
					return err
				}
				if err := mgr.DeleteUser(id); err != nil {
					sh.report(err)
					return nil
				}
				sh.printf("Deleted user %s\n", id)
				return nil
			}},
			{"list", "list registered users", func(sh *shell) error {
				users, err := mgr.GetAllUsers()
				if err != nil {
					sh.report(err)
					return nil
				}
				printUsers(sh.out, users)
				return nil
			}},
		},
	}
}

func newBrowseScreen(mgr *library.LibraryManager) *screen {
	return &screen{
		name:  "browse",
		title: "Browse and search the catalog",
		actions: []action{
			{"list", "list every book", func(sh *shell) error {
				books, err := mgr.GetAllBooks()
				if err != nil {
					sh.report(err)
					return nil
				}
				printBooks(sh.out, books)
				return nil
			}},
			{"search", "search titles, authors and ISBNs", func(sh *shell) error {
				query, err := sh.ask("Query: ")
				if err != nil {
					return err
				}
				books, err := mgr.SearchBooks(query)
				if err != nil {
					sh.report(err)
					return nil
				}
				if len(books) == 0 {
					sh.printf("No books found matching '%s'.\n", query)
					return nil
				}
				sh.printf("Found %d book(s) matching '%s':\n", len(books), query)
				printBooks(sh.out, books)
				return nil
			}},
		},
	}
}
