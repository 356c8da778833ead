package main

import (
	"fmt"
	"io"
	"strings"

	"library-system/library"
)

func printBooks(w io.Writer, books []library.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in library.")
		return
	}
	fmt.Fprintf(w, "%-15s %-30s %-25s %-10s %-12s %-12s\n", "ISBN", "Title", "Author", "Available", "Borrower", "Due")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, b := range books {
		fmt.Fprintln(w, library.PrettyBook(b))
	}
}

func printUsers(w io.Writer, users []library.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users registered.")
		return
	}
	fmt.Fprintf(w, "%-15s %-30s %s\n", "User ID", "Name", "Books")
	fmt.Fprintln(w, strings.Repeat("-", 55))
	for _, u := range users {
		fmt.Fprintln(w, library.PrettyUser(u))
	}
}

func printCheckIns(w io.Writer, recs []library.CheckInRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No check-ins yet.")
		return
	}
	fmt.Fprintf(w, "%-30s %-25s %-15s %-12s\n", "Title", "Author", "Borrowed By", "Due")
	fmt.Fprintln(w, strings.Repeat("-", 85))
	for _, r := range recs {
		fmt.Fprintf(w, "%-30s %-25s %-15s %-12s\n", r.Title, r.Author, r.BorrowedBy, r.DueDateString())
	}
}

func printLoans(w io.Writer, loans []library.Loan) {
	if len(loans) == 0 {
		fmt.Fprintln(w, "No loans recorded.")
		return
	}
	fmt.Fprintf(w, "%-15s %-15s %-20s %-12s %-20s\n", "ISBN", "User ID", "Checked Out", "Due", "Returned")
	fmt.Fprintln(w, strings.Repeat("-", 86))
	for _, l := range loans {
		returned := library.NotAvailable
		if l.ReturnedAt != nil {
			returned = l.ReturnedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-15s %-15s %-20s %-12s %-20s\n",
			l.BookID, l.UserID, l.CheckedOutAt.Format("2006-01-02 15:04"), l.DueDate, returned)
	}
}

func printCheckout(w io.Writer, b library.Book, borrowerName string) {
	due, _ := b.DueDate()
	fmt.Fprintf(w, "Book '%s' checked out to %s, due %s\n", b.Title, borrowerName, due)
}

func printCheckIn(w io.Writer, r library.CheckInRecord) {
	fmt.Fprintf(w, "Book '%s' checked in (borrowed by %s, due %s)\n", r.Title, r.BorrowedBy, r.DueDateString())
}
