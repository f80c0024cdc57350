package main

import "testing"

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		f, _, positional, err := parseFlags([]string{"book.pdf"})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if len(positional) != 1 || positional[0] != "book.pdf" {
			t.Errorf("positional = %v, want [book.pdf]", positional)
		}
		if f.language != "en" {
			t.Errorf("language = %q, want en", f.language)
		}
		if f.mathFormat != "svg" {
			t.Errorf("mathFormat = %q, want svg", f.mathFormat)
		}
		if f.output != "" || f.title != "" || f.verbose {
			t.Errorf("flags = %+v, want zero values", f)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()
		f, _, positional, err := parseFlags([]string{
			"-o", "out.epub",
			"--title", "My Book",
			"--author", "Jane",
			"--cover", "cover.jpg",
			"--math-format", "mathml",
			"--save-markdown", "debug.md",
			"--language", "fr",
			"-t", "30m",
			"-c", "conf",
			"-v",
			"book.pdf",
		})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if f.output != "out.epub" || f.title != "My Book" || f.author != "Jane" ||
			f.cover != "cover.jpg" || f.mathFormat != "mathml" ||
			f.saveMarkdown != "debug.md" || f.language != "fr" ||
			f.timeout != "30m" || f.config != "conf" || !f.verbose {
			t.Errorf("flags = %+v, want all values set", f)
		}
		if len(positional) != 1 || positional[0] != "book.pdf" {
			t.Errorf("positional = %v, want [book.pdf]", positional)
		}
	})

	t.Run("changed tracking distinguishes defaults", func(t *testing.T) {
		t.Parallel()
		_, fs, _, err := parseFlags([]string{"--language", "en", "book.pdf"})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if !fs.Changed("language") {
			t.Error("Changed(language) = false after explicit flag")
		}
		if fs.Changed("math-format") {
			t.Error("Changed(math-format) = true without the flag")
		}
	})

	t.Run("unknown flag is an error", func(t *testing.T) {
		t.Parallel()
		if _, _, _, err := parseFlags([]string{"--frobnicate", "book.pdf"}); err == nil {
			t.Error("parseFlags() error = nil, want unknown flag failure")
		}
	})
}
