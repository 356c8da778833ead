package library

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// NotAvailable is shown wherever a borrower or due date is absent.
const NotAvailable = "N/A"

// Book represents a catalog entry and its circulation state.
//
// Availability, borrower and due date are unexported: they only change together
// through checkOut and checkIn, so an available book never carries a borrower
// or a due date.
type Book struct {
	Title  string
	Author string
	ID     string // ISBN or custom book code, unique lookup key

	available  bool
	borrowedBy string
	dueDate    *civil.Date
}

// NewBook returns an available book with no borrower.
func NewBook(title, author, id string) Book {
	return Book{Title: title, Author: author, ID: id, available: true}
}

// Available reports whether the book can be checked out.
func (b Book) Available() bool { return b.available }

// BorrowedBy returns the id of the user holding the book, or "" when available.
func (b Book) BorrowedBy() string { return b.borrowedBy }

// DueDate returns the due date and whether one is set.
func (b Book) DueDate() (civil.Date, bool) {
	if b.dueDate == nil {
		return civil.Date{}, false
	}
	return *b.dueDate, true
}

func (b *Book) checkOut(userID string, due civil.Date) {
	b.available = false
	b.borrowedBy = userID
	b.dueDate = &due
}

// checkIn makes the book available and returns the borrower and due date that
// were in effect before the transition.
func (b *Book) checkIn() (string, *civil.Date) {
	borrower, due := b.borrowedBy, b.dueDate
	b.available = true
	b.borrowedBy = ""
	b.dueDate = nil
	return borrower, due
}

// overdue reports whether the book is checked out with a due date before today.
func (b Book) overdue(today civil.Date) bool {
	return !b.available && b.dueDate != nil && b.dueDate.Before(today)
}

func (b Book) String() string {
	return fmt.Sprintf("Book[Title=%s, Author=%s, ISBN=%s, Available=%t, BorrowedBy=%s, DueDate=%s]",
		b.Title, b.Author, b.ID, b.available, orNA(b.borrowedBy), dateOrNA(b.dueDate))
}

// bookJSON is the books.json wire format.
type bookJSON struct {
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	ISBN       string      `json:"isbn"`
	Available  bool        `json:"available"`
	BorrowedBy *string     `json:"borrowedBy"`
	DueDate    *civil.Date `json:"dueDate"`
}

func (b Book) MarshalJSON() ([]byte, error) {
	w := bookJSON{Title: b.Title, Author: b.Author, ISBN: b.ID, Available: b.available}
	if !b.available {
		if b.borrowedBy != "" {
			borrower := b.borrowedBy
			w.BorrowedBy = &borrower
		}
		w.DueDate = b.dueDate
	}
	return json.Marshal(w)
}

// UnmarshalJSON drops borrower and due date from records flagged available.
func (b *Book) UnmarshalJSON(data []byte) error {
	var w bookJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Book{Title: w.Title, Author: w.Author, ID: w.ISBN, available: w.Available}
	if !w.Available {
		if w.BorrowedBy != nil {
			b.borrowedBy = *w.BorrowedBy
		}
		b.dueDate = w.DueDate
	}
	return nil
}

// User represents a registered library user.
type User struct {
	ID          string   `json:"userId"`
	Name        string   `json:"name"`
	BorrowedIDs []string `json:"checkedOutBooks"` // in checkout order
}

// NewUser returns a user with an empty borrowed list.
func NewUser(id, name string) User {
	return User{ID: id, Name: name, BorrowedIDs: []string{}}
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	if u.BorrowedIDs == nil {
		u.BorrowedIDs = []string{}
	}
	return json.Marshal(plain(u))
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.BorrowedIDs == nil {
		p.BorrowedIDs = []string{}
	}
	*u = User(p)
	return nil
}

func (u *User) removeBorrowed(bookID string) bool {
	for i, id := range u.BorrowedIDs {
		if id == bookID {
			u.BorrowedIDs = append(u.BorrowedIDs[:i], u.BorrowedIDs[i+1:]...)
			return true
		}
	}
	return false
}

func (u User) String() string {
	return fmt.Sprintf("User[ID=%s, Name=%s, CheckedOutBooks=%v]", u.ID, u.Name, u.BorrowedIDs)
}

// CheckInRecord is a snapshot of a book taken at the moment it was checked in.
type CheckInRecord struct {
	Title       string
	Author      string
	BookID      string
	BorrowedBy  string // NotAvailable when the book had no borrower
	DueDate     *civil.Date
	CheckedInAt time.Time
}

// DueDateString formats the due date, or NotAvailable.
func (r CheckInRecord) DueDateString() string { return dateOrNA(r.DueDate) }

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func dateOrNA(d *civil.Date) string {
	if d == nil {
		return NotAvailable
	}
	return d.String()
}
