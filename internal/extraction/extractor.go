// Package extraction turns annotated free text into known skills and aggregates skill
// occurrences across job descriptions into a role profile.
package extraction

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
)

// Window around a noun token: two tokens before, the token itself, two after.
const (
	windowBefore = 2
	windowAfter  = 2
)

// DefaultConcurrency bounds how many descriptions are annotated at once while building a profile.
const DefaultConcurrency = 4

// Extractor recognizes vocabulary skills in text. It is safe for concurrent use when
// its annotator is.
type Extractor struct {
	vocab       *vocabulary.Vocabulary
	annotator   annotate.Annotator
	concurrency int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConcurrency sets the number of parallel annotations used by BuildRoleProfile.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n >= 1 {
			e.concurrency = n
		}
	}
}

// New creates an Extractor matching against vocab.
func New(vocab *vocabulary.Vocabulary, annotator annotate.Annotator, opts ...Option) *Extractor {
	e := &Extractor{
		vocab:       vocab,
		annotator:   annotator,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractSkills returns the sorted, normalized known skills found in text. Blank text
// yields an empty result without calling the annotator.
func (e *Extractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	ann, err := e.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate text: %w", err)
	}
	return SkillsFromAnnotation(e.vocab, ann), nil
}

// SkillsFromAnnotation applies bigram, single-token and noun-window matching to ann.
// Every returned skill is known to vocab and not on its deny list.
func SkillsFromAnnotation(vocab *vocabulary.Vocabulary, ann *annotate.Annotation) []string {
	found := make(map[string]struct{})
	if ann == nil {
		return []string{}
	}

	tokens := ann.Tokens
	for i := 0; i+1 < len(tokens); i++ {
		bigram := bigramKey(tokens[i], tokens[i+1])
		if vocab.Accepts(bigram) {
			found[bigram] = struct{}{}
		}
	}

	for _, tok := range tokens {
		key := vocabulary.Normalize(tok.Text)
		if vocab.Accepts(key) {
			found[key] = struct{}{}
		}
	}

	extractable := vocab.Extractable()
	for i, tok := range tokens {
		if !tok.IsNoun() {
			continue
		}
		window := strings.ToLower(ann.Window(i, windowBefore, windowAfter))
		for _, skill := range extractable {
			if strings.Contains(window, skill) {
				found[skill] = struct{}{}
			}
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

func bigramKey(a, b annotate.Token) string {
	return vocabulary.Normalize(a.Text + " " + b.Text)
}
