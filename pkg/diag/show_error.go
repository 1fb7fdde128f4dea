// Package diag shows errors to the user.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Can be changed for testing.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// ShowError writes the message of err to w.
func ShowError(w io.Writer, err error) {
	Complain(w, err.Error())
}

// Complain writes a message to w, adding a trailing newline. The message is
// bold and red when w is a terminal.
func Complain(w io.Writer, msg string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "\033[31;1m%s\033[m\n", msg)
	} else {
		fmt.Fprintln(w, msg)
	}
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}
