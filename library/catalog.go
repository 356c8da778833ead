package library

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Cataloging adds and removes books.
type Cataloging struct {
	repo *Repository
}

func NewCataloging(repo *Repository) *Cataloging {
	return &Cataloging{repo: repo}
}

// Add catalogs a new available book. Every field is required and the id must
// not already be in use.
func (c *Cataloging) Add(title, author, id string) (Book, error) {
	title, author, id = strings.TrimSpace(title), strings.TrimSpace(author), strings.TrimSpace(id)
	if title == "" || author == "" || id == "" {
		return Book{}, fmt.Errorf("add book: %w", ErrMissingRequiredField)
	}

	book := NewBook(title, author, id)
	err := c.repo.Update(func(col *Collections) error {
		if findBookByID(col.Books, id) >= 0 {
			return fmt.Errorf("add book %s: %w", id, ErrDuplicateBookID)
		}
		col.Books = append(col.Books, book)
		col.MarkBooks()
		return nil
	})
	if err != nil {
		return Book{}, err
	}

	log.WithFields(log.Fields{
		"book":  id,
		"title": title,
	}).Info("book added")
	return book, nil
}

// Remove deletes the book with the given id. Checked-out books stay.
func (c *Cataloging) Remove(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("remove book: %w", ErrMissingRequiredField)
	}

	err := c.repo.Update(func(col *Collections) error {
		i := findBookByID(col.Books, id)
		if i < 0 {
			return fmt.Errorf("remove book %s: %w", id, ErrBookNotFound)
		}
		if !col.Books[i].Available() {
			return fmt.Errorf("remove book %s: %w", id, ErrCannotRemoveCheckedOutBook)
		}
		col.Books = append(col.Books[:i], col.Books[i+1:]...)
		col.MarkBooks()
		return nil
	})
	if err != nil {
		return err
	}

	log.WithField("book", id).Info("book removed")
	return nil
}
