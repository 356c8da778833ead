package library

import "strings"

// findUser resolves a query to a user index: exact id first, then a
// case-insensitive name match. The first match in collection order wins.
func findUser(users []User, query string) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}
	for i := range users {
		if users[i].ID == query {
			return i
		}
	}
	for i := range users {
		if strings.EqualFold(users[i].Name, query) {
			return i
		}
	}
	return -1
}

// findUserByID matches the id exactly, as stored on a book's borrower field.
func findUserByID(users []User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

// findBook resolves a query to a book index: exact id first, then a
// case-insensitive title match. Books rejected by accept never match.
func findBook(books []Book, query string, accept func(Book) bool) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}
	if accept == nil {
		accept = func(Book) bool { return true }
	}
	for i := range books {
		if books[i].ID == query && accept(books[i]) {
			return i
		}
	}
	for i := range books {
		if strings.EqualFold(books[i].Title, query) && accept(books[i]) {
			return i
		}
	}
	return -1
}

func findBookByID(books []Book, id string) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}

func isCheckedOut(b Book) bool { return !b.Available() }
