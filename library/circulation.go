package library

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultCheckoutDays  = 14
	DefaultCheckoutLimit = 10
)

// Policy holds the circulation rules. A CheckoutLimit of 0 disables the cap.
type Policy struct {
	CheckoutDays  int
	CheckoutLimit int
}

// DefaultPolicy is a two-week loan with at most ten books per user.
func DefaultPolicy() Policy {
	return Policy{CheckoutDays: DefaultCheckoutDays, CheckoutLimit: DefaultCheckoutLimit}
}

// Circulation applies checkout and check-in transitions.
type Circulation struct {
	repo    *Repository
	policy  Policy
	recent  *RecentCheckIns
	history *History // nil when the ledger is disabled
	clock   func() time.Time
}

func NewCirculation(repo *Repository, policy Policy, recent *RecentCheckIns, history *History, clock func() time.Time) *Circulation {
	if clock == nil {
		clock = time.Now
	}
	if recent == nil {
		recent = NewRecentCheckIns(DefaultRecentCapacity)
	}
	return &Circulation{repo: repo, policy: policy, recent: recent, history: history, clock: clock}
}

// Checkout lends the first available book matching bookQuery to the user
// matching userQuery and returns the book as saved.
func (c *Circulation) Checkout(bookQuery, userQuery string) (Book, error) {
	if strings.TrimSpace(bookQuery) == "" || strings.TrimSpace(userQuery) == "" {
		return Book{}, fmt.Errorf("checkout: %w", ErrMissingRequiredField)
	}

	now := c.clock()
	due := civil.DateOf(now).AddDays(c.policy.CheckoutDays)

	var out Book
	err := c.repo.Update(func(col *Collections) error {
		ui := findUser(col.Users, userQuery)
		if ui < 0 {
			return fmt.Errorf("checkout %q: %w", userQuery, ErrUserNotFound)
		}
		user := &col.Users[ui]

		if c.policy.CheckoutLimit > 0 && len(user.BorrowedIDs) >= c.policy.CheckoutLimit {
			return fmt.Errorf("checkout: user %s holds %d books: %w", user.ID, len(user.BorrowedIDs), ErrCheckoutLimitReached)
		}

		bi := findBook(col.Books, bookQuery, Book.Available)
		if bi < 0 {
			return fmt.Errorf("checkout %q: %w", bookQuery, ErrBookUnavailable)
		}
		book := &col.Books[bi]

		book.checkOut(user.ID, due)
		user.BorrowedIDs = append(user.BorrowedIDs, book.ID)
		col.MarkBooks()
		col.MarkUsers()

		out = *book
		return nil
	})
	if err != nil {
		return Book{}, err
	}

	log.WithFields(log.Fields{
		"book": out.ID,
		"user": out.BorrowedBy(),
		"due":  due.String(),
	}).Info("book checked out")

	if c.history != nil {
		if err := c.history.RecordCheckout(out.ID, out.BorrowedBy(), now, due); err != nil {
			log.WithFields(log.Fields{
				"book": out.ID,
				"err":  err,
			}).Warn("could not record checkout in history")
		}
	}
	return out, nil
}

// CheckIn returns the first checked-out book matching bookQuery. The borrower
// loses the book from their list; a borrower id that no longer resolves to a
// user is logged and otherwise ignored.
func (c *Circulation) CheckIn(bookQuery string) (CheckInRecord, error) {
	if strings.TrimSpace(bookQuery) == "" {
		return CheckInRecord{}, fmt.Errorf("check-in: %w", ErrMissingRequiredField)
	}

	now := c.clock()
	var rec CheckInRecord
	err := c.repo.Update(func(col *Collections) error {
		bi := findBook(col.Books, bookQuery, isCheckedOut)
		if bi < 0 {
			return fmt.Errorf("check-in %q: %w", bookQuery, ErrCheckInTargetNotFound)
		}
		book := &col.Books[bi]

		if borrower := book.BorrowedBy(); borrower != "" {
			if ui := findUserByID(col.Users, borrower); ui >= 0 {
				col.Users[ui].removeBorrowed(book.ID)
				col.MarkUsers()
			} else {
				log.WithFields(log.Fields{
					"book": book.ID,
					"user": borrower,
				}).Warn("borrower of checked-in book is not a registered user")
			}
		}

		borrower, due := book.checkIn()
		col.MarkBooks()

		rec = CheckInRecord{
			Title:       book.Title,
			Author:      book.Author,
			BookID:      book.ID,
			BorrowedBy:  orNA(borrower),
			DueDate:     due,
			CheckedInAt: now,
		}
		return nil
	})
	if err != nil {
		return CheckInRecord{}, err
	}

	c.recent.Push(rec)
	log.WithFields(log.Fields{
		"book": rec.BookID,
		"user": rec.BorrowedBy,
	}).Info("book checked in")

	if c.history != nil && rec.BorrowedBy != NotAvailable {
		if err := c.history.RecordReturn(rec.BookID, rec.BorrowedBy, now); err != nil {
			log.WithFields(log.Fields{
				"book": rec.BookID,
				"err":  err,
			}).Warn("could not record return in history")
		}
	}
	return rec, nil
}

// HeldBy resolves userQuery and lists the books that user currently holds, in
// catalog order.
func (c *Circulation) HeldBy(userQuery string) (User, []Book, error) {
	var (
		user User
		held []Book
	)
	err := c.repo.View(func(col *Collections) error {
		ui := findUser(col.Users, userQuery)
		if ui < 0 {
			return fmt.Errorf("lookup %q: %w", userQuery, ErrUserNotFound)
		}
		user = col.Users[ui]
		held = []Book{}
		for _, b := range col.Books {
			if !b.Available() && b.BorrowedBy() == user.ID {
				held = append(held, b)
			}
		}
		return nil
	})
	if err != nil {
		return User{}, nil, err
	}
	return user, held, nil
}

// BorrowerName returns the name of the user with userID, or NotAvailable.
func (c *Circulation) BorrowerName(userID string) string {
	name := NotAvailable
	err := c.repo.View(func(col *Collections) error {
		if ui := findUserByID(col.Users, userID); ui >= 0 {
			name = col.Users[ui].Name
		}
		return nil
	})
	if err != nil {
		log.WithField("err", err).Warn("could not resolve borrower name")
	}
	return name
}

// Overdue lists checked-out books whose due date is before today.
func (c *Circulation) Overdue() ([]Book, error) {
	today := civil.DateOf(c.clock())
	var out []Book
	err := c.repo.View(func(col *Collections) error {
		out = []Book{}
		for _, b := range col.Books {
			if b.overdue(today) {
				out = append(out, b)
			}
		}
		return nil
	})
	return out, err
}

// Recent returns the session's check-ins, newest first.
func (c *Circulation) Recent() []CheckInRecord {
	return c.recent.Entries()
}
