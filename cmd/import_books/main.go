package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"library-system/config"
	"library-system/library"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newImportCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var booksFile, usersFile string

	cmd := &cobra.Command{
		Use:   "import_books <file.csv>",
		Short: "Catalog books listed in a CSV file (title,author,isbn)",
		Long: `import_books reads rows of title,author,isbn and catalogs each one.
A first row whose ISBN column reads "isbn" is treated as a header.
Rows that fail are reported and skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("books") {
				cfg.BooksFile = booksFile
			}
			if cmd.Flags().Changed("users") {
				cfg.UsersFile = usersFile
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			manager, err := library.NewLibraryManager(cfg.Options())
			if err != nil {
				return err
			}
			defer manager.Close()

			res, err := importBooks(manager, f, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nImport complete!\n")
			fmt.Fprintf(out, "Successfully imported: %d books\n", res.imported)
			fmt.Fprintf(out, "Errors: %d\n", res.failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&booksFile, "books", "", "path of the books JSON file (env LIBRARY_BOOKS_FILE)")
	cmd.Flags().StringVar(&usersFile, "users", "", "path of the users JSON file (env LIBRARY_USERS_FILE)")
	return cmd
}

type importResult struct {
	imported int
	failed   int
}

// importBooks catalogs every row of r. Row failures are counted and reported;
// only a malformed CSV stream aborts the import.
func importBooks(manager *library.LibraryManager, r io.Reader, out io.Writer) (importResult, error) {
	var res importResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				fmt.Fprintf(out, "Row %d: ERROR - expected title,author,isbn\n", row)
				res.failed++
				continue
			}
			return res, fmt.Errorf("read import file: %w", err)
		}
		if row == 1 && strings.EqualFold(strings.TrimSpace(rec[2]), "isbn") {
			continue
		}

		title, author, isbn := rec[0], rec[1], rec[2]
		fmt.Fprintf(out, "Importing: %s by %s... ", title, author)

		book, err := manager.AddBook(title, author, isbn)
		if err != nil {
			fmt.Fprintf(out, "ERROR - %v\n", err)
			log.WithFields(log.Fields{
				"row": row,
				"err": err,
			}).Debug("import row skipped")
			res.failed++
			continue
		}

		fmt.Fprintf(out, "SUCCESS (ISBN: %s)\n", book.ID)
		res.imported++
	}
}
