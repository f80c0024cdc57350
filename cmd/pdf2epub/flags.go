package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for a conversion run.
type convertFlags struct {
	output       string
	title        string
	author       string
	cover        string
	mathFormat   string
	saveMarkdown string
	language     string
	timeout      string
	config       string
	verbose      bool
	version      bool
}

// parseFlags parses CLI flags and returns the parsed flags, the flag set
// (for Changed checks), and positional arguments.
func parseFlags(args []string) (*convertFlags, *flag.FlagSet, []string, error) {
	fs := flag.NewFlagSet("pdf2epub", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output EPUB path (default: input with .epub extension)")
	fs.StringVar(&f.title, "title", "", "EPUB title metadata (default: first H1 of the extracted Markdown)")
	fs.StringVar(&f.author, "author", "", "EPUB author metadata")
	fs.StringVar(&f.cover, "cover", "", "cover image path")
	fs.StringVar(&f.mathFormat, "math-format", "svg", "LaTeX math rendering: mathml, svg")
	fs.StringVar(&f.saveMarkdown, "save-markdown", "", "save the intermediate Markdown to this path")
	fs.StringVar(&f.language, "language", "en", "BCP 47 language tag for the EPUB")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "overall conversion timeout (e.g. 30m, 2h)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	return f, fs, fs.Args(), nil
}
