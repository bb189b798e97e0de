package annotate

import (
	"context"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose annotates with the averaged-perceptron tagger and NER model bundled in prose.
type Prose struct{}

// NewProse returns a prose-backed annotator.
func NewProse() *Prose {
	return &Prose{}
}

type proseResult struct {
	ann *Annotation
	err error
}

// Annotate runs the model in its own goroutine so ctx cancellation returns promptly.
func (p *Prose) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Annotator: "prose", Message: "cancelled", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return &Annotation{}, nil
	}

	done := make(chan proseResult, 1)
	go func() {
		ann, err := p.annotate(text)
		done <- proseResult{ann: ann, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &Error{Annotator: "prose", Message: "cancelled", Cause: ctx.Err()}
	case r := <-done:
		return r.ann, r.err
	}
}

func (p *Prose) annotate(text string) (*Annotation, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, &Error{Annotator: "prose", Message: "failed to build document", Cause: err}
	}

	ptoks := doc.Tokens()
	tokens := make([]Token, 0, len(ptoks))
	for _, t := range ptoks {
		tokens = append(tokens, Token{Text: t.Text, Tag: t.Tag})
	}

	ann := &Annotation{Tokens: tokens, NounPhrases: NounPhrases(tokens)}

	from := 0
	for _, ent := range doc.Entities() {
		words := strings.Fields(ent.Text)
		start := locate(tokens, words, from)
		if start < 0 {
			continue
		}
		ann.Entities = append(ann.Entities, newSpan(tokens, start, start+len(words), ent.Label))
		from = start + len(words)
	}

	return ann, nil
}
