package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pdf2epub "github.com/alnah/go-pdf2epub"
	"github.com/alnah/go-pdf2epub/internal/config"
)

// fakeConverter records the request and returns a canned result.
type fakeConverter struct {
	result string
	err    error
	calls  int
	got    pdf2epub.Request
}

func (f *fakeConverter) Convert(_ context.Context, req pdf2epub.Request) (string, error) {
	f.calls++
	f.got = req
	return f.result, f.err
}

// testEnv returns an Environment wired to buffers and the given converter.
func testEnv(conv Converter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		LookPath: func(string) (string, error) {
			return "", errors.New("not found")
		},
		NewService: func(...pdf2epub.Option) Converter { return conv },
		Config:     config.DefaultConfig(),
	}
	return env, &stdout, &stderr
}

func TestRealMain_Success(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{result: "book.epub"}
	env, stdout, _ := testEnv(conv)

	code := realMain([]string{"book.pdf"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if conv.calls != 1 {
		t.Errorf("convert calls = %d, want 1", conv.calls)
	}
	if conv.got.InputPath != "book.pdf" {
		t.Errorf("InputPath = %q, want book.pdf", conv.got.InputPath)
	}
	if !strings.Contains(stdout.String(), "Conversion complete: book.epub") {
		t.Errorf("stdout = %q, want completion message", stdout.String())
	}
}

func TestRealMain_FlagsBecomeRequest(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{result: "x.epub"}
	env, _, _ := testEnv(conv)

	code := realMain([]string{
		"-o", "out/x.epub",
		"--title", "T",
		"--author", "A",
		"--math-format", "mathml",
		"--language", "fr",
		"--save-markdown", "x.md",
		"book.pdf",
	}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}

	want := pdf2epub.Request{
		InputPath:    "book.pdf",
		OutputPath:   "out/x.epub",
		Title:        "T",
		Author:       "A",
		MathFormat:   "mathml",
		SaveMarkdown: "x.md",
		Language:     "fr",
	}
	if conv.got != want {
		t.Errorf("request = %+v, want %+v", conv.got, want)
	}
}

func TestRealMain_ConfigDefaultsUnderFlags(t *testing.T) {
	t.Parallel()

	t.Run("config fills unset flags", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{result: "x.epub"}
		env, _, _ := testEnv(conv)
		env.Config = &config.Config{
			Output:   config.OutputConfig{DefaultDir: "books"},
			Metadata: config.MetadataConfig{Author: "Cfg Author", Language: "de"},
			Math:     config.MathConfig{Format: "mathml"},
		}

		if code := realMain([]string{"book.pdf"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, want 0", code)
		}
		if conv.got.Author != "Cfg Author" {
			t.Errorf("Author = %q, want config default", conv.got.Author)
		}
		if conv.got.Language != "de" {
			t.Errorf("Language = %q, want config default", conv.got.Language)
		}
		if conv.got.MathFormat != "mathml" {
			t.Errorf("MathFormat = %q, want config default", conv.got.MathFormat)
		}
		if conv.got.OutputPath != filepath.Join("books", "book.epub") {
			t.Errorf("OutputPath = %q, want config default dir", conv.got.OutputPath)
		}
	})

	t.Run("explicit flags win over config", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{result: "x.epub"}
		env, _, _ := testEnv(conv)
		env.Config = &config.Config{
			Metadata: config.MetadataConfig{Author: "Cfg Author", Language: "de"},
		}

		code := realMain([]string{"--author", "Flag Author", "--language", "fr", "book.pdf"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want 0", code)
		}
		if conv.got.Author != "Flag Author" {
			t.Errorf("Author = %q, want flag value", conv.got.Author)
		}
		if conv.got.Language != "fr" {
			t.Errorf("Language = %q, want flag value", conv.got.Language)
		}
	})
}

func TestRealMain_Failures(t *testing.T) {
	t.Parallel()

	t.Run("no positional argument is usage", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{}
		env, _, stderr := testEnv(conv)
		if code := realMain(nil, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if conv.calls != 0 {
			t.Errorf("convert calls = %d, want 0", conv.calls)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Errorf("stderr = %q, want usage text", stderr.String())
		}
	})

	t.Run("conversion failure is exit 1 with single-line error", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{err: fmt.Errorf("%w: boom", pdf2epub.ErrExtraction)}
		env, _, stderr := testEnv(conv)
		if code := realMain([]string{"book.pdf"}, env); code != ExitFailure {
			t.Errorf("exit code = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "Error:") {
			t.Errorf("stderr = %q, want error message", stderr.String())
		}
	})

	t.Run("capability failure prints install hint", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{err: fmt.Errorf("%w: x", pdf2epub.ErrFormatterUnavailable)}
		env, _, stderr := testEnv(conv)
		if code := realMain([]string{"book.pdf"}, env); code != ExitFailure {
			t.Errorf("exit code = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "pandoc") {
			t.Errorf("stderr = %q, want pandoc install hint", stderr.String())
		}
	})

	t.Run("invalid timeout is usage", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{}
		env, _, _ := testEnv(conv)
		if code := realMain([]string{"-t", "soon", "book.pdf"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if conv.calls != 0 {
			t.Errorf("convert calls = %d, want 0", conv.calls)
		}
	})

	t.Run("missing config file is usage", func(t *testing.T) {
		t.Parallel()
		conv := &fakeConverter{}
		env, _, _ := testEnv(conv)
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if code := realMain([]string{"-c", missing, "book.pdf"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

func TestRealMain_Version(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(&fakeConverter{})
	if code := realMain([]string{"--version"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "pdf2epub") {
		t.Errorf("stdout = %q, want version line", stdout.String())
	}
}

func TestRealMain_ConfigFileFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "conf.yaml")
	content := "metadata:\n  author: \"From File\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	conv := &fakeConverter{result: "x.epub"}
	env, _, _ := testEnv(conv)

	if code := realMain([]string{"-c", configPath, "book.pdf"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if conv.got.Author != "From File" {
		t.Errorf("Author = %q, want value from config file", conv.got.Author)
	}
}
