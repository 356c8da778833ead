package library

import (
	"errors"
	"testing"
)

func TestRegistrationAdd(t *testing.T) {
	repo := newRepo(t)
	reg := NewRegistration(repo)

	u, err := reg.Add(" U1 ", "Alice ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.ID != "U1" || u.Name != "Alice" || u.BorrowedIDs == nil {
		t.Errorf("added user: %v", u)
	}

	if _, err := reg.Add("U1", "Bob"); !errors.Is(err, ErrDuplicateUserID) {
		t.Errorf("duplicate: got %v", err)
	}
	if _, err := reg.Add("", "Bob"); !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("missing id: got %v", err)
	}
	if _, err := reg.Add("U2", ""); !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("missing name: got %v", err)
	}

	users, err := reg.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Errorf("first registration should be unaffected: %v", users)
	}
}

func TestRegistrationDelete(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	f.book(t, "Dune", "Herbert", "D1")
	f.user(t, "U1", "Alice")
	f.user(t, "U2", "Bob")
	if _, err := f.circ.Checkout("D1", "U1"); err != nil {
		t.Fatal(err)
	}

	if err := f.reg.Delete("U1"); !errors.Is(err, ErrCannotDeleteUserWithActiveCheckouts) {
		t.Errorf("delete borrower: got %v", err)
	}
	if err := f.reg.Delete("U9"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("delete unknown: got %v", err)
	}
	if err := f.reg.Delete("U2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// A fresh repository over the same files must not see the deleted user.
	repo, err := NewRepository(f.repo.BooksPath(), f.repo.UsersPath(), DefaultLockTimeout)
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	users, err := NewRegistration(repo).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].ID != "U1" {
		t.Errorf("users after delete: %v", users)
	}
}
