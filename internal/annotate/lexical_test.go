package annotate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestLexical_Tokenization(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "sentence with trailing period",
			text: "Built Python services on AWS with Kubernetes.",
			want: []string{"Built", "Python", "services", "on", "AWS", "with", "Kubernetes", "."},
		},
		{
			name: "technology names stay whole",
			text: "C++, C#, Node.js and CI/CD",
			want: []string{"C++", ",", "C#", ",", "Node.js", "and", "CI/CD"},
		},
		{
			name: "empty",
			text: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann, err := NewLexical().Annotate(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(ann.Tokens))
		})
	}
}

func TestLexical_Tags(t *testing.T) {
	ann, err := NewLexical().Annotate(context.Background(), "Built Python services on AWS with Kubernetes.")
	require.NoError(t, err)

	tags := make(map[string]string)
	for _, tok := range ann.Tokens {
		tags[tok.Text] = tok.Tag
	}
	assert.Equal(t, "VBD", tags["Built"])
	assert.Equal(t, "NNP", tags["Python"])
	assert.Equal(t, "NNS", tags["services"])
	assert.Equal(t, "IN", tags["on"])
	assert.Equal(t, "NNP", tags["AWS"])
	assert.Equal(t, "NNP", tags["Kubernetes"])
	assert.Equal(t, ".", tags["."])
}

func TestLexical_Entities(t *testing.T) {
	ann, err := NewLexical().Annotate(context.Background(), "Deployed services to Google Cloud Platform daily.")
	require.NoError(t, err)
	require.Len(t, ann.Entities, 1)
	assert.Equal(t, "Google Cloud Platform", ann.Entities[0].Text)
	assert.Equal(t, 3, ann.Entities[0].Start)
	assert.Equal(t, 6, ann.Entities[0].End)
}

func TestLexical_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLexical().Annotate(ctx, "text")
	require.Error(t, err)

	var annErr *Error
	assert.True(t, errors.As(err, &annErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnotation_Window(t *testing.T) {
	ann := &Annotation{Tokens: []Token{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"}, {Text: "f"}}}

	assert.Equal(t, "a b c", ann.Window(0, 2, 2))
	assert.Equal(t, "a b c d e", ann.Window(2, 2, 2))
	assert.Equal(t, "d e f", ann.Window(5, 2, 2))
}

func TestToken_IsNoun(t *testing.T) {
	for _, tag := range []string{"NN", "NNS", "NNP", "NNPS", "NOUN", "PROPN"} {
		assert.True(t, Token{Tag: tag}.IsNoun(), tag)
	}
	for _, tag := range []string{"VB", "JJ", "IN", "ADJ", ""} {
		assert.False(t, Token{Tag: tag}.IsNoun(), tag)
	}
}

func TestNounPhrases(t *testing.T) {
	tokens := []Token{
		{Text: "Strong", Tag: "JJ"},
		{Text: "cloud", Tag: "NN"},
		{Text: "skills", Tag: "NNS"},
		{Text: "and", Tag: "CC"},
		{Text: "fast", Tag: "JJ"},
		{Text: "with", Tag: "IN"},
		{Text: "Terraform", Tag: "NNP"},
	}

	spans := NounPhrases(tokens)
	require.Len(t, spans, 2)
	assert.Equal(t, Span{Start: 0, End: 3, Text: "Strong cloud skills"}, spans[0])
	assert.Equal(t, Span{Start: 6, End: 7, Text: "Terraform"}, spans[1])
}

func TestNew(t *testing.T) {
	a, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Prose{}, a)

	a, err = New(KindLexical)
	require.NoError(t, err)
	assert.IsType(t, &Lexical{}, a)

	_, err = New("spacy")
	assert.Error(t, err)
}
