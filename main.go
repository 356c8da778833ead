package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"library-system/config"
	"library-system/library"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the state shared by every command of one invocation.
type app struct {
	mgr   *library.LibraryManager
	clock func() time.Time // nil uses time.Now
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		booksFile string
		usersFile string
		historyDB string
		logLevel  string
	)

	root := &cobra.Command{
		Use:   "library",
		Short: "Catalog, lend and track library books",
		Long: `library keeps a book catalog and a user register in two JSON files and
handles checkouts and check-ins between them.

Run it without a subcommand to start the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("books") {
				cfg.BooksFile = booksFile
			}
			if flags.Changed("users") {
				cfg.UsersFile = usersFile
			}
			if flags.Changed("history-db") {
				cfg.HistoryDB = historyDB
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), cfg.LogLevel)

			opts := cfg.Options()
			opts.Clock = a.clock
			mgr, err := library.NewLibraryManager(opts)
			if err != nil {
				return err
			}
			a.mgr = mgr
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&booksFile, "books", "", "path of the books JSON file (env LIBRARY_BOOKS_FILE)")
	pf.StringVar(&usersFile, "users", "", "path of the users JSON file (env LIBRARY_USERS_FILE)")
	pf.StringVar(&historyDB, "history-db", "", "SQLite loan history ledger, empty to disable (env LIBRARY_HISTORY_DB)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env LIBRARY_LOG_LEVEL)")

	root.AddCommand(
		newCatalogCmd(a),
		newUsersCmd(a),
		newCheckoutCmd(a),
		newCheckInCmd(a),
		newHeldCmd(a),
		newOverdueCmd(a),
		newBrowseCmd(a),
		newHistoryCmd(a),
		newShellCmd(a),
	)
	return root
}

func setupLogging(w io.Writer, level string) {
	log.SetOutput(w)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func (a *app) close() {
	if a.mgr == nil {
		return
	}
	if err := a.mgr.Close(); err != nil {
		log.WithField("err", err).Warn("could not close library")
	}
	a.mgr = nil
}
