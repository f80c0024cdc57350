package pdf2epub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Math rendering format constants.
const (
	MathFormatSVG    = "svg"
	MathFormatMathML = "mathml"
)

// DefaultLanguage is applied when a request carries no language tag.
// EPUB readers (Send to Kindle in particular) reject documents without
// a dc:language field.
const DefaultLanguage = "en"

// Request contains conversion parameters for a single PDF.
type Request struct {
	InputPath    string // Input PDF path (required)
	OutputPath   string // Output EPUB path ("" = input with .epub extension)
	Title        string // EPUB title metadata ("" = inferred from first H1)
	Author       string // EPUB author metadata (optional)
	Cover        string // Cover image path (optional)
	MathFormat   string // "svg" or "mathml" ("" = svg)
	SaveMarkdown string // Path to persist the intermediate Markdown (optional)
	Language     string // BCP 47 language tag ("" = "en")
}

// Validate checks that the input path exists, is a regular file, and has
// a .pdf extension (case-insensitive).
func (r Request) Validate() error {
	info, err := os.Stat(r.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, r.InputPath)
		}
		return fmt.Errorf("stat input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, r.InputPath)
	}
	if !strings.EqualFold(filepath.Ext(r.InputPath), ".pdf") {
		return fmt.Errorf("%w: got %q", ErrNotPDF, filepath.Ext(r.InputPath))
	}
	return nil
}

// resolveOutputPath returns the destination EPUB path, defaulting to the
// input path with its extension replaced by .epub.
func (r Request) resolveOutputPath() string {
	if r.OutputPath != "" {
		return r.OutputPath
	}
	return strings.TrimSuffix(r.InputPath, filepath.Ext(r.InputPath)) + ".epub"
}

// language returns the effective language tag.
func (r Request) language() string {
	if r.Language == "" {
		return DefaultLanguage
	}
	return r.Language
}

// mathFormat returns the effective math rendering format.
func (r Request) mathFormat() string {
	if r.MathFormat == "" {
		return MathFormatSVG
	}
	return r.MathFormat
}

// stem returns the input file name without its extension.
func (r Request) stem() string {
	base := filepath.Base(r.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
