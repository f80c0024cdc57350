package pdf2epub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-pdf2epub/internal/fileutil"
)

// buildPandocArgs assembles the pandoc directive list. Construction order
// is fixed so conversions are reproducible and the list is assertable in
// tests, even though pandoc itself is not order-sensitive.
func buildPandocArgs(req Request, imagesDir string, now time.Time, logf func(format string, args ...any)) []string {
	args := make([]string, 0, 18)

	// The resource path must be the images directory itself, not its
	// parent, so relative image references in the Markdown resolve.
	if info, err := os.Stat(imagesDir); err == nil && info.IsDir() {
		args = append(args, "--resource-path", imagesDir)
	}

	switch req.mathFormat() {
	case MathFormatMathML:
		args = append(args, "--mathml")
	case MathFormatSVG:
		args = append(args, "--webtex")
	default:
		logf("unknown math format %q, using pandoc default", req.MathFormat)
	}

	if req.Title != "" {
		args = append(args, "--metadata", "title="+req.Title)
	}
	if req.Author != "" {
		args = append(args, "--metadata", "author="+req.Author)
	}

	// lang and date are always set: EPUB readers reject or mishandle
	// documents missing either field.
	args = append(args,
		"--metadata", "lang="+req.language(),
		"--metadata", "date="+now.Format("2006-01-02"),
	)

	if req.Cover != "" {
		if fileutil.FileExists(req.Cover) {
			args = append(args, "--epub-cover-image", req.Cover)
		} else {
			logf("cover image not found, continuing without cover: %s", req.Cover)
		}
	}

	args = append(args, "--standalone", "--toc")
	return args
}

// runFormatting builds the directive list, invokes the formatter, and
// verifies that the output file exists afterwards: the engine can report
// success without writing anything.
func (s *Service) runFormatting(ctx context.Context, req Request, res extractionResult, outputPath string) error {
	if err := s.formatter.Available(); err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: creating output directory: %w", ErrFormatting, err)
		}
	}

	args := buildPandocArgs(req, res.imagesDir, s.now(), s.cfg.logf)
	if err := s.formatter.Format(ctx, res.markdownPath, args, outputPath); err != nil {
		return fmt.Errorf("%w: %w", ErrFormatting, err)
	}

	if !fileutil.FileExists(outputPath) {
		return fmt.Errorf("%w: %w: %s", ErrFormatting, ErrNoOutput, outputPath)
	}
	return nil
}
