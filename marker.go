package pdf2epub

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Extractor abstracts the PDF to Markdown extraction capability.
type Extractor interface {
	// Available reports whether the capability can be invoked at all.
	// A non-nil error wraps ErrExtractorUnavailable.
	Available() error
	// Extract converts the PDF at pdfPath and returns the Markdown text
	// plus a mapping of image name to image bytes.
	Extract(ctx context.Context, pdfPath string) (markdown string, images map[string][]byte, err error)
}

// markerBinary is the CLI entry point installed by marker-pdf.
const markerBinary = "marker_single"

// MarkerExtractor invokes the marker_single CLI from marker-pdf.
type MarkerExtractor struct {
	Runner CommandRunner
	Binary string // binary name or path ("" = "marker_single")
}

// NewMarkerExtractor creates a MarkerExtractor with a real command runner.
func NewMarkerExtractor() *MarkerExtractor {
	return &MarkerExtractor{Runner: &ExecRunner{}}
}

func (m *MarkerExtractor) binary() string {
	if m.Binary != "" {
		return m.Binary
	}
	return markerBinary
}

// Available checks that the marker_single binary is on PATH.
func (m *MarkerExtractor) Available() error {
	if _, err := exec.LookPath(m.binary()); err != nil {
		return fmt.Errorf("%w: install it with: pip install marker-pdf", ErrExtractorUnavailable)
	}
	return nil
}

// Extract runs marker_single against a private output directory and reads
// the generated Markdown and images back into memory. marker writes
// <output_dir>/<stem>/<stem>.md with sibling image files and a
// <stem>_meta.json; everything except the Markdown and JSON metadata is
// treated as an image.
func (m *MarkerExtractor) Extract(ctx context.Context, pdfPath string) (string, map[string][]byte, error) {
	outDir, err := os.MkdirTemp("", "marker-out-")
	if err != nil {
		return "", nil, fmt.Errorf("creating marker output dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(outDir) }()

	_, stderr, err := m.Runner.Run(ctx, m.binary(), pdfPath,
		"--output_format", "markdown",
		"--output_dir", outDir,
	)
	if err != nil {
		return "", nil, fmt.Errorf("running %s: %s: %w", m.binary(), strings.TrimSpace(stderr), err)
	}

	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	docDir := filepath.Join(outDir, stem)

	mdBytes, err := os.ReadFile(filepath.Join(docDir, stem+".md")) // #nosec G304 -- path is built from our own temp dir
	if err != nil {
		return "", nil, fmt.Errorf("reading marker output: %w", err)
	}

	entries, err := os.ReadDir(docDir)
	if err != nil {
		return "", nil, fmt.Errorf("listing marker output: %w", err)
	}

	images := make(map[string][]byte)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".md", ".json":
			continue
		}
		data, err := os.ReadFile(filepath.Join(docDir, e.Name())) // #nosec G304 -- same temp dir
		if err != nil {
			return "", nil, fmt.Errorf("reading marker image %s: %w", e.Name(), err)
		}
		images[e.Name()] = data
	}

	return string(mdBytes), images, nil
}

// isModelDownloadCorruption reports whether err matches the known
// partially-downloaded-model failure: the weight download aborts because
// a leftover directory blocks it ("destination path '...' already
// exists"). Substring matching on a third-party error message is a
// compatibility shim; it is isolated here so a typed error from a future
// extractor can replace it without touching the retry logic.
func isModelDownloadCorruption(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "destination path") && strings.Contains(msg, "already exists")
}
