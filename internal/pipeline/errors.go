package pipeline

import "fmt"

// ContentExtractionError reports that a document could not be read.
// No lesson is produced.
type ContentExtractionError struct {
	Path string
	Err  error
}

func (e *ContentExtractionError) Error() string {
	return fmt.Sprintf("content extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ContentExtractionError) Unwrap() error {
	return e.Err
}

// SynthesisError reports that quiz questions could not be produced for a page.
type SynthesisError struct {
	PageNumber int
	Err        error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("question synthesis failed for page %d: %v", e.PageNumber, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
