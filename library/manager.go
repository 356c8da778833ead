package library

import (
	"fmt"
	"time"
)

// Options configures a LibraryManager.
type Options struct {
	BooksFile      string
	UsersFile      string
	HistoryDB      string // empty disables the loan ledger
	Policy         Policy
	RecentCapacity int
	LockTimeout    time.Duration
	Clock          func() time.Time
}

// LibraryManager is a thin façade over the workflows, keeping CLI code simple.
// All workflows share one Repository.
type LibraryManager struct {
	repo    *Repository
	history *History

	catalog      *Cataloging
	registration *Registration
	circulation  *Circulation
	browser      *Browser
}

// NewLibraryManager opens the data files and, when configured, the history ledger.
func NewLibraryManager(opts Options) (*LibraryManager, error) {
	repo, err := NewRepository(opts.BooksFile, opts.UsersFile, opts.LockTimeout)
	if err != nil {
		return nil, err
	}

	var history *History
	if opts.HistoryDB != "" {
		history, err = OpenHistory(opts.HistoryDB)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
	}

	return &LibraryManager{
		repo:         repo,
		history:      history,
		catalog:      NewCataloging(repo),
		registration: NewRegistration(repo),
		circulation:  NewCirculation(repo, opts.Policy, NewRecentCheckIns(opts.RecentCapacity), history, opts.Clock),
		browser:      NewBrowser(repo),
	}, nil
}

// Close closes the ledger and the lock file.
func (lm *LibraryManager) Close() error {
	if lm.history != nil {
		lm.history.Close()
	}
	return lm.repo.Close()
}

// ------------------ Cataloging ------------------

func (lm *LibraryManager) AddBook(title, author, id string) (Book, error) {
	return lm.catalog.Add(title, author, id)
}

func (lm *LibraryManager) RemoveBook(id string) error { return lm.catalog.Remove(id) }

// ------------------ Browsing ------------------

func (lm *LibraryManager) GetAllBooks() ([]Book, error)         { return lm.browser.List() }
func (lm *LibraryManager) SearchBooks(q string) ([]Book, error) { return lm.browser.Search(q) }

// ------------------ Registration ------------------

func (lm *LibraryManager) AddUser(id, name string) (User, error) { return lm.registration.Add(id, name) }
func (lm *LibraryManager) DeleteUser(id string) error            { return lm.registration.Delete(id) }
func (lm *LibraryManager) GetAllUsers() ([]User, error)          { return lm.registration.List() }

// ------------------ Circulation ------------------

func (lm *LibraryManager) CheckoutBook(bookQuery, userQuery string) (Book, error) {
	return lm.circulation.Checkout(bookQuery, userQuery)
}

func (lm *LibraryManager) CheckInBook(bookQuery string) (CheckInRecord, error) {
	return lm.circulation.CheckIn(bookQuery)
}

// BooksHeldBy returns the resolved user and the books they hold.
func (lm *LibraryManager) BooksHeldBy(userQuery string) (User, []Book, error) {
	return lm.circulation.HeldBy(userQuery)
}

func (lm *LibraryManager) BorrowerName(userID string) string { return lm.circulation.BorrowerName(userID) }
func (lm *LibraryManager) OverdueBooks() ([]Book, error)     { return lm.circulation.Overdue() }
func (lm *LibraryManager) RecentCheckIns() []CheckInRecord   { return lm.circulation.Recent() }

// ------------------ History ------------------

// HistoryEnabled reports whether a loan ledger is open.
func (lm *LibraryManager) HistoryEnabled() bool { return lm.history != nil }

func (lm *LibraryManager) BookHistory(bookID string) ([]Loan, error) {
	if lm.history == nil {
		return nil, fmt.Errorf("history ledger is not enabled")
	}
	return lm.history.ForBook(bookID)
}

func (lm *LibraryManager) UserHistory(userID string) ([]Loan, error) {
	if lm.history == nil {
		return nil, fmt.Errorf("history ledger is not enabled")
	}
	return lm.history.ForUser(userID)
}

// ------------------ Utilities ------------------

// PrettyBook formats a book for lists.
func PrettyBook(b Book) string {
	due, ok := b.DueDate()
	dueStr := NotAvailable
	if ok {
		dueStr = due.String()
	}
	return fmt.Sprintf("%-15s %-30s %-25s %-10t %-12s %-12s",
		truncateString(b.ID, 15), truncateString(b.Title, 30), truncateString(b.Author, 25),
		b.Available(), orNA(b.BorrowedBy()), dueStr)
}

// PrettyUser formats a user for lists.
func PrettyUser(u User) string {
	return fmt.Sprintf("%-15s %-30s %d", truncateString(u.ID, 15), truncateString(u.Name, 30), len(u.BorrowedIDs))
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
