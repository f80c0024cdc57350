package pdf2epub

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrInputNotFound  = errors.New("input PDF not found")
	ErrNotRegularFile = errors.New("input path is not a regular file")
	ErrNotPDF         = errors.New("input file must have a .pdf extension")

	// Capability availability errors.
	ErrExtractorUnavailable = errors.New("marker_single not found")
	ErrFormatterUnavailable = errors.New("pandoc not found")

	// Pipeline stage errors.
	ErrExtraction = errors.New("PDF extraction failed")
	ErrFormatting = errors.New("EPUB formatting failed")
	ErrNoOutput   = errors.New("formatter produced no output file")
	ErrSnapshot   = errors.New("saving intermediate markdown failed")
)
