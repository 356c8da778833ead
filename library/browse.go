package library

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

// Browser lists and searches the catalog without changing it.
type Browser struct {
	repo *Repository
}

func NewBrowser(repo *Repository) *Browser {
	return &Browser{repo: repo}
}

// List returns every book in catalog order.
func (b *Browser) List() ([]Book, error) {
	var books []Book
	err := b.repo.View(func(col *Collections) error {
		books = col.Books
		return nil
	})
	return books, err
}

// Search returns books whose title, author or id contains query, ignoring
// case. When nothing matches, books whose title and author words sound like
// every query word are returned instead. An empty query returns everything.
func (b *Browser) Search(query string) ([]Book, error) {
	books, err := b.List()
	if err != nil {
		return nil, err
	}
	return searchBooks(books, query), nil
}

func searchBooks(books []Book, query string) []Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return books
	}

	out := []Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.ID), q) {
			out = append(out, b)
		}
	}
	if len(out) > 0 {
		return out
	}

	want := metaphoneKeys(q)
	if len(want) == 0 {
		return out
	}
	for _, b := range books {
		have := metaphoneKeys(b.Title + " " + b.Author)
		if soundsLike(want, have) {
			out = append(out, b)
		}
	}
	return out
}

var nonLetters = regexp.MustCompile("[^a-z]+")

// metaphoneKeys returns the primary and secondary Double Metaphone keys of
// every word in s, one set per word.
func metaphoneKeys(s string) []map[string]bool {
	var words []map[string]bool
	for _, w := range strings.Fields(nonLetters.ReplaceAllString(strings.ToLower(s), " ")) {
		primary, secondary := matchr.DoubleMetaphone(w)
		keys := map[string]bool{}
		if primary != "" {
			keys[primary] = true
		}
		if secondary != "" {
			keys[secondary] = true
		}
		if len(keys) > 0 {
			words = append(words, keys)
		}
	}
	return words
}

// soundsLike reports whether each wanted word shares a key with some word of
// have.
func soundsLike(want, have []map[string]bool) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			for k := range w {
				if h[k] {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
