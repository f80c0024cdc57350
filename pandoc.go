package pdf2epub

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Formatter abstracts the Markdown to EPUB formatting capability.
type Formatter interface {
	// Available reports whether the capability can be invoked at all.
	// A non-nil error wraps ErrFormatterUnavailable.
	Available() error
	// Format converts markdownPath into an EPUB at outputPath, passing
	// args through as conversion directives.
	Format(ctx context.Context, markdownPath string, args []string, outputPath string) error
}

const pandocBinary = "pandoc"

// PandocFormatter converts Markdown to EPUB by invoking the pandoc CLI.
type PandocFormatter struct {
	Runner CommandRunner
	Binary string // binary name or path ("" = "pandoc")
}

// NewPandocFormatter creates a PandocFormatter with a real command runner.
func NewPandocFormatter() *PandocFormatter {
	return &PandocFormatter{Runner: &ExecRunner{}}
}

func (p *PandocFormatter) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return pandocBinary
}

// Available checks that the pandoc binary is on PATH.
func (p *PandocFormatter) Available() error {
	if _, err := exec.LookPath(p.binary()); err != nil {
		return fmt.Errorf("%w: install it with: apt install pandoc (or brew install pandoc)", ErrFormatterUnavailable)
	}
	return nil
}

// Format runs pandoc. The caller-supplied args follow the fixed
// input/output arguments so directive order is preserved.
func (p *PandocFormatter) Format(ctx context.Context, markdownPath string, args []string, outputPath string) error {
	cmdArgs := make([]string, 0, 7+len(args))
	cmdArgs = append(cmdArgs, markdownPath, "-f", "markdown", "-t", "epub3", "-o", outputPath)
	cmdArgs = append(cmdArgs, args...)

	_, stderr, err := p.Runner.Run(ctx, p.binary(), cmdArgs...)
	if err != nil {
		return fmt.Errorf("running pandoc: %s: %w", strings.TrimSpace(stderr), err)
	}
	return nil
}
