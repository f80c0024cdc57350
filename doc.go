// Package pdf2epub converts PDF documents to EPUB e-books.
//
// # Quick Start
//
// Create a service and convert a PDF:
//
//	svc := pdf2epub.New()
//	epubPath, err := svc.Convert(ctx, pdf2epub.Request{
//	    InputPath: "book.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", epubPath)
//
// # Conversion Pipeline
//
// The conversion runs in two phases, both delegated to external tools:
//
//  1. marker_single (marker-pdf) extracts the PDF into Markdown plus images
//  2. pandoc formats the Markdown into an EPUB with metadata, TOC and cover
//
// Intermediate artifacts live in an ephemeral workspace directory that is
// removed when the conversion finishes, whatever the outcome.
//
// marker downloads its model weights on first use. An interrupted download
// leaves a partial directory in the model cache that blocks every later
// attempt with a "destination path already exists" error. When extraction
// fails with that signature, the service removes incomplete cache entries
// and retries the extraction exactly once.
//
// # Configuration
//
// Per-conversion options are passed via Request:
//
//	epubPath, err := svc.Convert(ctx, pdf2epub.Request{
//	    InputPath:  "paper.pdf",
//	    Title:      "My Paper",
//	    Author:     "Jane Doe",
//	    MathFormat: pdf2epub.MathFormatMathML,
//	    Language:   "fr",
//	})
//
// Use functional options to customize the service:
//
//	svc := pdf2epub.New(
//	    pdf2epub.WithLogger(logf),
//	    pdf2epub.WithCacheRoot("/models"),
//	)
//
// # Tool Requirements
//
// Extraction requires marker_single from marker-pdf (pip install
// marker-pdf); formatting requires pandoc. Both are discovered on PATH.
// Run "pdf2epub doctor" to check an installation. The model cache location
// follows marker's DATALAB_MODELS_HOME variable; PDF2EPUB_MODEL_CACHE
// overrides it for this tool alone.
package pdf2epub
