// Package extract turns uploaded documents into paginated plain text.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// MaxFileSize is the largest accepted upload.
const MaxFileSize = 10 << 20

// SupportedExtensions lists the accepted document types.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// ValidationError rejects a document before any extraction is attempted.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// Document is the paginated text of one source file.
type Document struct {
	Title string
	Pages []string
}

// Validate checks the file type and size.
func Validate(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	supported := false
	for _, s := range SupportedExtensions {
		if ext == s {
			supported = true
			break
		}
	}
	if !supported {
		return &ValidationError{Name: name, Reason: "please upload a PDF, DOCX, or TXT file"}
	}
	if size > MaxFileSize {
		return &ValidationError{Name: name, Reason: "file size must be less than 10MB"}
	}
	return nil
}

// Extractor reads documents from the local filesystem.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Validate checks the file at path without reading its content.
func (x *Extractor) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return &ValidationError{Name: filepath.Base(path), Reason: "is a directory"}
	}
	return Validate(filepath.Base(path), info.Size())
}

// Extract validates and reads the document at path. Pages that are empty
// after trimming are dropped. A document with no text is an error.
func (x *Extractor) Extract(ctx context.Context, path string) (*Document, error) {
	if err := x.Validate(path); err != nil {
		return nil, err
	}

	var pages []string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err = extractPDF(ctx, path)
	case ".docx":
		pages, err = extractDOCX(path)
	default:
		pages, err = extractTXT(path)
	}
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.Errorf("no extractable text found in %s", filepath.Base(path))
	}

	return &Document{Title: TitleFromPath(path), Pages: pages}, nil
}

// TitleFromPath returns the file's base name without its extension.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
