package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// printUsage writes CLI usage to w.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: pdf2epub [flags] INPUT_PDF")
	fmt.Fprintln(w, "       pdf2epub doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a PDF to EPUB using marker (PDF to Markdown) and pandoc")
	fmt.Fprintln(w, "(Markdown to EPUB).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  pdf2epub book.pdf")
	fmt.Fprintln(w, "  pdf2epub book.pdf -o out/book.epub --title \"My Book\" --author \"Jane Doe\"")
	fmt.Fprintln(w, "  pdf2epub paper.pdf --math-format mathml --save-markdown paper.md -v")
}
