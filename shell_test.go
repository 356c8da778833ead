package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"library-system/library"
)

func newTestManager(t *testing.T, withHistory bool) *library.LibraryManager {
	t.Helper()
	dir := t.TempDir()
	opts := library.Options{
		BooksFile:      filepath.Join(dir, "books.json"),
		UsersFile:      filepath.Join(dir, "users.json"),
		Policy:         library.DefaultPolicy(),
		RecentCapacity: library.DefaultRecentCapacity,
		LockTimeout:    library.DefaultLockTimeout,
		Clock:          fixedClock,
	}
	if withHistory {
		opts.HistoryDB = filepath.Join(dir, "loans.db")
	}
	mgr, err := library.NewLibraryManager(opts)
	if err != nil {
		t.Fatalf("NewLibraryManager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func runScript(t *testing.T, mgr *library.LibraryManager, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := newShell(mgr, in, &out, false).run(); err != nil {
		t.Fatalf("shell: %v", err)
	}
	return out.String()
}

func TestShellCirculationScript(t *testing.T) {
	mgr := newTestManager(t, false)

	out := runScript(t, mgr,
		"catalog", "add", "Dune", "Herbert", "D1", "back",
		"registration", "add", "U1", "Alice", "back",
		"circulation", "checkout", "D1", "U1", "checkin", "Dune", "recent",
		"exit",
	)

	for _, want := range []string{
		"Added book 'Dune' (ISBN D1)",
		"Added user 'Alice' with ID U1",
		"Book 'Dune' checked out to Alice, due 2026-03-15",
		"Book 'Dune' checked in (borrowed by U1, due 2026-03-15)",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	recent := mgr.RecentCheckIns()
	if len(recent) != 1 || recent[0].Title != "Dune" || recent[0].BorrowedBy != "U1" {
		t.Errorf("unexpected recent check-ins: %+v", recent)
	}
}

func TestShellReportsErrorsAndContinues(t *testing.T) {
	mgr := newTestManager(t, false)

	out := runScript(t, mgr,
		"circulation", "checkout", "D1", "U1", "back",
		"registration", "delete", "U9", "back",
		"nowhere",
		"exit",
	)

	for _, want := range []string{
		"Error: checkout \"U1\": user not found",
		"Error: delete user U9: user not found",
		"Unknown screen \"nowhere\"",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestShellScreensByNumber(t *testing.T) {
	mgr := newTestManager(t, false)
	if _, err := mgr.AddBook("Emma", "Jane Austen", "E1"); err != nil {
		t.Fatal(err)
	}

	out := runScript(t, mgr, "4", "search", "emma")
	if !strings.Contains(out, "Found 1 book(s) matching 'emma'") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestShellStopsAtEndOfInput(t *testing.T) {
	mgr := newTestManager(t, false)

	// Input ends in the middle of the add form.
	out := runScript(t, mgr, "catalog", "add", "Dune")
	if strings.Contains(out, "Added book") {
		t.Errorf("book should not be added from a truncated form:\n%s", out)
	}
	books, err := mgr.GetAllBooks()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 0 {
		t.Errorf("got %d books, want 0", len(books))
	}
}

func TestScreenRegistry(t *testing.T) {
	want := []string{"catalog", "circulation", "registration", "browse"}
	if len(screens) != len(want) {
		t.Fatalf("got %d screens, want %d", len(screens), len(want))
	}

	mgr := newTestManager(t, false)
	for i, name := range want {
		t.Run(name, func(t *testing.T) {
			if screens[i].name != name {
				t.Fatalf("screen %d is %q, want %q", i, screens[i].name, name)
			}
			s, ok := lookupScreen(name, mgr)
			if !ok || s.name != name || len(s.actions) == 0 {
				t.Fatalf("lookupScreen(%q) = %+v, %v", name, s, ok)
			}
		})
	}

	if _, ok := lookupScreen("attic", mgr); ok {
		t.Error("unknown screen should not resolve")
	}
}

func TestCirculationScreenHistoryActions(t *testing.T) {
	without := newCirculationScreen(newTestManager(t, false))
	if _, ok := without.find("book history"); ok {
		t.Error("history actions should be hidden without a ledger")
	}

	with := newCirculationScreen(newTestManager(t, true))
	for _, name := range []string{"book history", "user history"} {
		if _, ok := with.find(name); !ok {
			t.Errorf("missing %q action", name)
		}
	}
}
