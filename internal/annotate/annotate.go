// Package annotate defines the text annotation capability the engine consumes:
// tokens with part-of-speech tags, noun-phrase spans and named-entity spans.
package annotate

import (
	"context"
	"fmt"
	"strings"
)

// Token is a single word or punctuation mark with its part-of-speech tag.
// Tags are Penn Treebank (NN, NNP, ...) or Universal (NOUN, PROPN, ...).
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// IsNoun reports whether the token is tagged as a common or proper noun.
func (t Token) IsNoun() bool {
	switch t.Tag {
	case "NOUN", "PROPN":
		return true
	}
	return strings.HasPrefix(t.Tag, "NN")
}

// Span covers tokens[Start:End].
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Label string `json:"label,omitempty"`
}

// Annotation is the full annotator output for one text.
type Annotation struct {
	Tokens      []Token `json:"tokens"`
	NounPhrases []Span  `json:"noun_phrases"`
	Entities    []Span  `json:"entities"`
}

// Window joins the texts of tokens[i-before : i+after+1], clipped to bounds, with single spaces.
func (a *Annotation) Window(i, before, after int) string {
	start := max(0, i-before)
	end := min(len(a.Tokens), i+after+1)
	parts := make([]string, 0, end-start)
	for _, t := range a.Tokens[start:end] {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

// Annotator turns text into an Annotation. Implementations must behave as pure
// functions of their input and honor ctx cancellation.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}

// Func adapts an ordinary function to the Annotator interface.
type Func func(ctx context.Context, text string) (*Annotation, error)

// Annotate calls f(ctx, text).
func (f Func) Annotate(ctx context.Context, text string) (*Annotation, error) {
	return f(ctx, text)
}

// Error is returned when the underlying model fails.
type Error struct {
	Annotator string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("annotation failed (%s): %s: %v", e.Annotator, e.Message, e.Cause)
	}
	return fmt.Sprintf("annotation failed (%s): %s", e.Annotator, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Annotator kinds accepted by New.
const (
	KindProse   = "prose"
	KindLexical = "lexical"
)

// New returns the annotator named by kind. An empty kind selects prose.
func New(kind string) (Annotator, error) {
	switch kind {
	case "", KindProse:
		return NewProse(), nil
	case KindLexical:
		return NewLexical(), nil
	default:
		return nil, fmt.Errorf("unknown annotator %q", kind)
	}
}
