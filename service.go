package pdf2epub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-pdf2epub/internal/fileutil"
	"github.com/alnah/go-pdf2epub/internal/modelcache"
	"github.com/alnah/go-pdf2epub/internal/workspace"
)

// Service orchestrates the PDF-to-EPUB pipeline.
type Service struct {
	cfg       serviceConfig
	extractor Extractor
	formatter Formatter
	sanitize  func()
	now       func() time.Time
}

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	logf      func(format string, args ...any)
	cacheRoot string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a logger for progress and warning messages.
// The default discards them.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Service) {
		if logf != nil {
			s.cfg.logf = logf
		}
	}
}

// WithCacheRoot overrides the model cache location used for sanitization.
// The default resolves from the environment and platform.
func WithCacheRoot(root string) Option {
	return func(s *Service) { s.cfg.cacheRoot = root }
}

// WithExtractor replaces the default marker-based extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Service) { s.extractor = e }
}

// WithFormatter replaces the default pandoc-based formatter.
func WithFormatter(f Formatter) Option {
	return func(s *Service) { s.formatter = f }
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{logf: func(string, ...any) {}},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create real capabilities if not injected (e.g., by tests)
	if s.extractor == nil {
		s.extractor = NewMarkerExtractor()
	}
	if s.formatter == nil {
		s.formatter = NewPandocFormatter()
	}
	if s.sanitize == nil {
		s.sanitize = func() {
			root := s.cfg.cacheRoot
			if root == "" {
				root = modelcache.ResolveRoot()
			}
			modelcache.Sanitize(root, s.cfg.logf)
		}
	}

	return s
}

func (s *Service) logf(format string, args ...any) {
	s.cfg.logf(format, args...)
}

func (s *Service) sanitizeCache() {
	s.sanitize()
}

// Convert runs the full pipeline and returns the path of the generated
// EPUB. The context cancels both external tool invocations. The workspace
// holding intermediate artifacts is removed on every path.
//
// A failure while persisting the optional Markdown snapshot aborts the
// pipeline: SaveMarkdown is an explicit request, and producing an EPUB
// while silently dropping the artifact the caller asked for would hide a
// real I/O problem.
func (s *Service) Convert(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	outputPath := req.resolveOutputPath()
	s.logf("converting %s -> %s", req.InputPath, outputPath)

	err := workspace.With("pdf2epub-", func(wsDir string) error {
		res, err := s.runExtraction(ctx, req, wsDir)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if req.SaveMarkdown != "" {
			if err := snapshotMarkdown(res.markdownPath, req.SaveMarkdown); err != nil {
				return fmt.Errorf("%w: %w", ErrSnapshot, err)
			}
			s.logf("markdown saved to %s", req.SaveMarkdown)
		}

		if req.Title == "" {
			if md, err := os.ReadFile(res.markdownPath); err == nil { // #nosec G304 -- workspace path
				if t := inferTitle(md); t != "" {
					req.Title = t
					s.logf("inferred title: %s", t)
				}
			}
		}

		return s.runFormatting(ctx, req, res, outputPath)
	})
	if err != nil {
		return "", err
	}

	s.logf("conversion complete: %s", outputPath)
	return outputPath, nil
}

// snapshotMarkdown copies the intermediate Markdown to dest, creating
// parent directories as needed.
func snapshotMarkdown(src, dest string) error {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}
	return fileutil.CopyFile(src, dest)
}
