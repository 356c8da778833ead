package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"library-system/library"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// shell is the interactive front end. Banners, menus and prompts are only
// written when input comes from a terminal, so piped scripts get bare results.
type shell struct {
	mgr         *library.LibraryManager
	sc          *bufio.Scanner
	out         io.Writer
	interactive bool
}

func newShell(mgr *library.LibraryManager, in io.Reader, out io.Writer, interactive bool) *shell {
	return &shell{mgr: mgr, sc: bufio.NewScanner(in), out: out, interactive: interactive}
}

func (a *app) runShell(cmd *cobra.Command) error {
	in := cmd.InOrStdin()
	return newShell(a.mgr, in, cmd.OutOrStdout(), isTerminal(in)).run()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (sh *shell) run() error {
	if sh.interactive {
		sh.printf("Welcome to the Library Management System!\n")
		sh.mainMenu()
	}

	for {
		choice, err := sh.ask("\n> ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "":
		case "exit", "quit":
			sh.printf("Goodbye!\n")
			return nil
		case "help", "menu":
			sh.mainMenu()
		default:
			scr, ok := lookupScreen(choice, sh.mgr)
			if !ok {
				sh.printf("Unknown screen %q. Type 'help' to list screens.\n", choice)
				continue
			}
			done, err := sh.enter(scr)
			if err != nil || done {
				return err
			}
		}
	}
}

// enter runs one screen until the user goes back. It reports true when the
// shell should stop.
func (sh *shell) enter(scr *screen) (bool, error) {
	if sh.interactive {
		sh.screenMenu(scr)
	}

	for {
		choice, err := sh.ask("\n" + scr.name + "> ")
		if err != nil {
			return true, endOfInput(err)
		}

		switch choice {
		case "":
		case "back":
			return false, nil
		case "exit", "quit":
			sh.printf("Goodbye!\n")
			return true, nil
		case "help":
			sh.screenMenu(scr)
		default:
			act, ok := scr.find(choice)
			if !ok {
				sh.printf("Unknown command %q. Type 'help' to list commands.\n", choice)
				continue
			}
			if err := act.run(sh); err != nil {
				return true, endOfInput(err)
			}
		}
	}
}

func (sh *shell) mainMenu() {
	sh.printf("Screens:\n")
	for i, s := range screens {
		sh.printf("  %d. %s\n", i+1, s.name)
	}
	sh.printf("Type a screen name or number, 'help' or 'exit'.\n")
}

func (sh *shell) screenMenu(scr *screen) {
	sh.printf("%s\n", scr.title)
	for _, a := range scr.actions {
		sh.printf("  %-14s %s\n", a.name, a.help)
	}
	sh.printf("  %-14s %s\n", "back", "return to the screen list")
}

// ask shows label on a terminal and returns the next trimmed input line.
// It returns io.EOF when input ends.
func (sh *shell) ask(label string) (string, error) {
	if sh.interactive {
		fmt.Fprint(sh.out, label)
	}
	if !sh.sc.Scan() {
		if err := sh.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(sh.sc.Text()), nil
}

func (sh *shell) askAll(labels ...string) ([]string, error) {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		v, err := sh.ask(l)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) report(err error) {
	sh.printf("Error: %v\n", err)
}

// endOfInput treats running out of input as a normal exit.
func endOfInput(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
