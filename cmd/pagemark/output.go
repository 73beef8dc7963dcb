package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/pagemark"
)

// writePage prints the title and a blank line when there is a title, then
// the Markdown body, then any diagnostics.
func writePage(w io.Writer, page *pagemark.Page, withTitle bool) {
	if withTitle && page.Title != "" {
		fmt.Fprintf(w, "%s\n\n", page.Title)
	}
	fmt.Fprintln(w, page.Content)
	writeDiagnostics(w, page.Diagnostics)
}

func writeDiagnostics(w io.Writer, diagnostics []string) {
	if len(diagnostics) == 0 {
		return
	}
	fmt.Fprintln(w, "\nParse errors:")
	for _, d := range diagnostics {
		fmt.Fprintf(w, "    %s\n", d)
	}
}
