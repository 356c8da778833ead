package library

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Registration adds and deletes users.
type Registration struct {
	repo *Repository
}

func NewRegistration(repo *Repository) *Registration {
	return &Registration{repo: repo}
}

// Add registers a user. The id is compared case-sensitively.
func (r *Registration) Add(id, name string) (User, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id == "" || name == "" {
		return User{}, fmt.Errorf("add user: %w", ErrMissingRequiredField)
	}

	user := NewUser(id, name)
	err := r.repo.Update(func(col *Collections) error {
		if findUserByID(col.Users, id) >= 0 {
			return fmt.Errorf("add user %s: %w", id, ErrDuplicateUserID)
		}
		col.Users = append(col.Users, user)
		col.MarkUsers()
		return nil
	})
	if err != nil {
		return User{}, err
	}

	log.WithFields(log.Fields{
		"user": id,
		"name": name,
	}).Info("user registered")
	return user, nil
}

// Delete removes the user with the given id, provided they hold no books.
func (r *Registration) Delete(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("delete user: %w", ErrMissingRequiredField)
	}

	err := r.repo.Update(func(col *Collections) error {
		i := findUserByID(col.Users, id)
		if i < 0 {
			return fmt.Errorf("delete user %s: %w", id, ErrUserNotFound)
		}
		if n := len(col.Users[i].BorrowedIDs); n > 0 {
			return fmt.Errorf("delete user %s holding %d books: %w", id, n, ErrCannotDeleteUserWithActiveCheckouts)
		}
		col.Users = append(col.Users[:i], col.Users[i+1:]...)
		col.MarkUsers()
		return nil
	})
	if err != nil {
		return err
	}

	log.WithField("user", id).Info("user deleted")
	return nil
}

// List returns all users in registration order.
func (r *Registration) List() ([]User, error) {
	var users []User
	err := r.repo.View(func(col *Collections) error {
		users = col.Users
		return nil
	})
	return users, err
}
