// Package document converts uploaded résumé files to plain text.
package document

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported MIME types.
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UnsupportedTypeError is returned for files that are not text, PDF or DOCX.
type UnsupportedTypeError struct {
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MIME)
}

var (
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
	paragraphEnd     = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	repeatedNewlines = regexp.MustCompile(`\n{3,}`)
)

// MIMEFromName guesses the MIME type from a file name's extension.
func MIMEFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", "":
		return MIMEText
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDocx
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// ExtractText returns the text content of data. Parameters on the MIME type
// (e.g. "; charset=utf-8") are ignored.
func ExtractText(mimeType string, data []byte) (string, error) {
	base, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		base = strings.TrimSpace(mimeType)
	}

	switch base {
	case MIMEText:
		return string(data), nil
	case MIMEPDF:
		return extractPDFText(bytes.NewReader(data), int64(len(data)))
	case MIMEDocx:
		return extractDocxText(bytes.NewReader(data), int64(len(data)))
	default:
		return "", &UnsupportedTypeError{MIME: mimeType}
	}
}

// ExtractFile reads path and extracts its text based on the extension.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ExtractText(MIMEFromName(path), data)
}

func extractPDFText(reader io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return strings.TrimSpace(textBuilder.String()), nil
}

func extractDocxText(reader io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText flattens WordprocessingML to text with one line per paragraph.
func docxPlainText(content string) string {
	text := paragraphEnd.ReplaceAllString(content, "\n")
	text = xmlTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = repeatedNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
