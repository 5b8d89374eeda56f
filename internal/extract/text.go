package extract

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

func extractTXT(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read text file")
	}
	return SplitPages(string(b)), nil
}

func extractPDF(ctx context.Context, path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pdf")
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "read pdf page %d", i)
		}
		if text := normalizeText(content); text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}

func extractDOCX(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "open docx")
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrap(err, "open docx body")
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.Wrap(err, "read docx body")
		}
		return SplitPages(stripDOCXML(body)), nil
	}
	return nil, errors.New("docx document.xml not found")
}

var (
	xmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	blankLinePattern = regexp.MustCompile(`\n\s*\n`)
)

// stripDOCXML reduces WordprocessingML to text with one paragraph per
// blank-line separated block.
func stripDOCXML(src []byte) string {
	s := string(src)
	s = strings.ReplaceAll(s, "</w:p>", "\n\n")
	s = strings.ReplaceAll(s, "<w:br/>", "\n")
	s = strings.ReplaceAll(s, "<w:br />", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")
	s = xmlTagPattern.ReplaceAllString(s, "")

	return strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	).Replace(s)
}

// SplitPages splits text into pages at blank lines, normalizing each.
func SplitPages(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var pages []string
	for _, block := range blankLinePattern.Split(text, -1) {
		if p := normalizeText(block); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}

// normalizeText trims each line and joins the non-empty ones with newlines.
func normalizeText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, "\n")
}
