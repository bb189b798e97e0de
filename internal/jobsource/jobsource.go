// Package jobsource provides job-description sources: the JSearch API, the jobs table
// and fixed in-memory batches.
package jobsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultLocation is used when a query names no location.
const DefaultLocation = "united states"

// Source returns plain-text job descriptions for a role. Zero descriptions is a valid result.
type Source interface {
	Descriptions(ctx context.Context, role, location string) ([]string, error)
}

// Error represents a failure talking to a job-description source.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job source %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("job source %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Static serves the same descriptions for every query.
type Static []string

// Descriptions returns a copy of s, skipping blank entries.
func (s Static) Descriptions(_ context.Context, _, _ string) ([]string, error) {
	out := make([]string, 0, len(s))
	for _, d := range s {
		if strings.TrimSpace(d) != "" {
			out = append(out, d)
		}
	}
	return out, nil
}

// PlainText strips markup from a description. Text without tags is only whitespace-cleaned.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return cleanWhitespace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanWhitespace(s)
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br, p, li, div, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	return cleanWhitespace(doc.Text())
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
