package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
	_ "github.com/mattn/go-sqlite3"
)

// History is an optional SQLite ledger of every loan. It is kept apart from the
// JSON files and never consulted for circulation decisions.
type History struct {
	db *sql.DB

	checkoutStmt *sql.Stmt
	returnStmt   *sql.Stmt
}

// Loan is one checkout and, once checked in, its return.
type Loan struct {
	BookID       string
	UserID       string
	CheckedOutAt time.Time
	DueDate      civil.Date
	ReturnedAt   *time.Time
}

// OpenHistory opens (or creates) the ledger at dbPath and applies migrations.
func OpenHistory(dbPath string) (*History, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyHistoryMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	h := &History{db: db}
	if err := h.prepareStatements(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// Close releases prepared statements and closes the DB.
func (h *History) Close() error {
	if h.checkoutStmt != nil {
		h.checkoutStmt.Close()
	}
	if h.returnStmt != nil {
		h.returnStmt.Close()
	}
	return h.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const historySchemaVersion = 1

func applyHistoryMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= historySchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            checkout_time TEXT NOT NULL,
            due_date TEXT NOT NULL,
            return_time TEXT
        );`,
		`CREATE INDEX IF NOT EXISTS idx_loans_book ON loans(book_id);`,
		`CREATE INDEX IF NOT EXISTS idx_loans_user ON loans(user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, historySchemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (h *History) prepareStatements() error {
	var err error
	if h.checkoutStmt, err = h.db.Prepare(`INSERT INTO loans(book_id,user_id,checkout_time,due_date) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	// Closes the newest open loan for the pair.
	if h.returnStmt, err = h.db.Prepare(`UPDATE loans SET return_time=? WHERE id=(
        SELECT id FROM loans WHERE book_id=? AND user_id=? AND return_time IS NULL ORDER BY id DESC LIMIT 1)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

// RecordCheckout opens a loan.
func (h *History) RecordCheckout(bookID, userID string, at time.Time, due civil.Date) error {
	_, err := h.checkoutStmt.Exec(bookID, userID, at.UTC().Format(time.RFC3339Nano), due.String())
	return err
}

// RecordReturn closes the open loan of bookID by userID.
func (h *History) RecordReturn(bookID, userID string, at time.Time) error {
	res, err := h.returnStmt.Exec(at.UTC().Format(time.RFC3339Nano), bookID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no open loan of book %s by user %s", bookID, userID)
	}
	return nil
}

// ForBook lists the loans of a book, oldest first.
func (h *History) ForBook(bookID string) ([]Loan, error) {
	return h.query(`SELECT book_id,user_id,checkout_time,due_date,return_time FROM loans WHERE book_id=? ORDER BY id`, bookID)
}

// ForUser lists the loans of a user, oldest first.
func (h *History) ForUser(userID string) ([]Loan, error) {
	return h.query(`SELECT book_id,user_id,checkout_time,due_date,return_time FROM loans WHERE user_id=? ORDER BY id`, userID)
}

func (h *History) query(q string, arg string) ([]Loan, error) {
	rows, err := h.db.Query(q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []Loan{}
	for rows.Next() {
		var (
			l               Loan
			checkedOut, due string
			returned        sql.NullString
		)
		if err := rows.Scan(&l.BookID, &l.UserID, &checkedOut, &due, &returned); err != nil {
			return nil, err
		}
		if l.CheckedOutAt, err = time.Parse(time.RFC3339Nano, checkedOut); err != nil {
			return nil, fmt.Errorf("parse checkout time: %w", err)
		}
		if l.DueDate, err = civil.ParseDate(due); err != nil {
			return nil, fmt.Errorf("parse due date: %w", err)
		}
		if returned.Valid {
			t, err := time.Parse(time.RFC3339Nano, returned.String)
			if err != nil {
				return nil, fmt.Errorf("parse return time: %w", err)
			}
			l.ReturnedAt = &t
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
