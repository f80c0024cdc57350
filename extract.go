package pdf2epub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// extractionResult holds the artifacts of a completed extraction, both
// inside the conversion workspace.
type extractionResult struct {
	markdownPath string
	imagesDir    string
}

// runExtraction invokes the extractor and persists its output into the
// workspace: <ws>/<stem>.md and <ws>/images/<name>. The images directory
// is created even when the document has no images.
//
// When the first attempt fails with the model-download corruption
// signature, the model cache is sanitized and the extraction retried,
// both exactly once. Any other failure, and any failure of the retry,
// propagates immediately. This is a targeted recovery for one known
// corruption class, not a general retry policy.
func (s *Service) runExtraction(ctx context.Context, req Request, wsDir string) (extractionResult, error) {
	if err := s.extractor.Available(); err != nil {
		return extractionResult{}, err
	}

	markdown, images, err := s.extractor.Extract(ctx, req.InputPath)
	if err != nil {
		if !isModelDownloadCorruption(err) {
			return extractionResult{}, fmt.Errorf("%w: %w", ErrExtraction, err)
		}
		s.logf("extraction blocked by a partial model download; sanitizing cache and retrying once")
		s.sanitizeCache()
		markdown, images, err = s.extractor.Extract(ctx, req.InputPath)
		if err != nil {
			return extractionResult{}, fmt.Errorf("%w: %w", ErrExtraction, err)
		}
	}

	mdPath := filepath.Join(wsDir, req.stem()+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o600); err != nil {
		return extractionResult{}, fmt.Errorf("writing markdown: %w", err)
	}

	imagesDir := filepath.Join(wsDir, "images")
	if err := os.MkdirAll(imagesDir, 0o750); err != nil {
		return extractionResult{}, fmt.Errorf("creating images dir: %w", err)
	}
	for name, data := range images {
		// Image names come from the extractor; flatten them so a crafted
		// name cannot escape the workspace.
		target := filepath.Join(imagesDir, filepath.Base(name))
		if err := os.WriteFile(target, data, 0o600); err != nil {
			return extractionResult{}, fmt.Errorf("writing image %s: %w", name, err)
		}
	}
	s.logf("extracted markdown and %d image(s) to %s", len(images), wsDir)

	return extractionResult{markdownPath: mdPath, imagesDir: imagesDir}, nil
}
