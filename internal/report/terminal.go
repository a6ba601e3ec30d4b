package report

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether a writer is a TTY.
var IsTerminal = defaultIsTerminal

// defaultIsTerminal inspects the writer for TTY support.
func defaultIsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
