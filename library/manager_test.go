package library

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewRepository(filepath.Join(dir, "books.json"), filepath.Join(dir, "users.json"), time.Second)
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newManager(t *testing.T, historyDB bool) *LibraryManager {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		BooksFile:      filepath.Join(dir, "books.json"),
		UsersFile:      filepath.Join(dir, "users.json"),
		Policy:         DefaultPolicy(),
		RecentCapacity: DefaultRecentCapacity,
		LockTimeout:    time.Second,
		Clock:          fixedClock,
	}
	if historyDB {
		opts.HistoryDB = filepath.Join(dir, "loans.db")
	}
	mgr, err := NewLibraryManager(opts)
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestManagerEndToEnd(t *testing.T) {
	mgr := newManager(t, true)

	if _, err := mgr.AddBook("Dune", "Frank Herbert", "D1"); err != nil {
		t.Fatalf("add book: %v", err)
	}
	if _, err := mgr.AddUser("U1", "Alice"); err != nil {
		t.Fatalf("add user: %v", err)
	}

	b, err := mgr.CheckoutBook("dune", "alice")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got := mgr.BorrowerName(b.BorrowedBy()); got != "Alice" {
		t.Errorf("borrower name = %q, want Alice", got)
	}

	if err := mgr.RemoveBook("D1"); !errors.Is(err, ErrCannotRemoveCheckedOutBook) {
		t.Errorf("remove checked-out book: got %v", err)
	}
	if err := mgr.DeleteUser("U1"); !errors.Is(err, ErrCannotDeleteUserWithActiveCheckouts) {
		t.Errorf("delete borrowing user: got %v", err)
	}

	if _, err := mgr.CheckInBook("D1"); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if n := len(mgr.RecentCheckIns()); n != 1 {
		t.Errorf("recent check-ins = %d, want 1", n)
	}

	loans, err := mgr.BookHistory("D1")
	if err != nil {
		t.Fatalf("book history: %v", err)
	}
	if len(loans) != 1 || loans[0].ReturnedAt == nil {
		t.Errorf("unexpected loans: %+v", loans)
	}

	if err := mgr.RemoveBook("D1"); err != nil {
		t.Errorf("remove returned book: %v", err)
	}
	if err := mgr.DeleteUser("U1"); err != nil {
		t.Errorf("delete user: %v", err)
	}
}

func TestManagerWithoutHistory(t *testing.T) {
	mgr := newManager(t, false)
	if mgr.HistoryEnabled() {
		t.Fatal("history should be disabled")
	}
	if _, err := mgr.BookHistory("D1"); err == nil {
		t.Error("expected an error from BookHistory")
	}
	if _, err := mgr.UserHistory("U1"); err == nil {
		t.Error("expected an error from UserHistory")
	}
}

func TestPrettyBook(t *testing.T) {
	b := NewBook("A Very Long Title That Goes On And On", "Someone", "X1")
	got := PrettyBook(b)
	if want := "A Very Long Title That Goes..."; !strings.Contains(got, want) {
		t.Errorf("PrettyBook = %q, want truncated title %q", got, want)
	}
	if !strings.Contains(got, NotAvailable) {
		t.Errorf("PrettyBook = %q, want %s for borrower", got, NotAvailable)
	}
}
