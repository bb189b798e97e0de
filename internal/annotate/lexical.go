package annotate

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// tokenPattern keeps technology names such as "c++", "node.js" and "ci/cd" whole,
// and splits trailing punctuation off words.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#.\-/']*[\p{L}\p{N}+#]|[\p{L}\p{N}]|[^\s\p{L}\p{N}]`)

// closedClass tags function words. Anything absent falls through to the suffix rules.
var closedClass = map[string]string{
	"a": "DT", "an": "DT", "the": "DT", "this": "DT", "that": "DT", "these": "DT", "those": "DT", "each": "DT", "every": "DT", "all": "DT", "any": "DT", "some": "DT",
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC",
	"in": "IN", "on": "IN", "at": "IN", "of": "IN", "for": "IN", "with": "IN", "by": "IN", "from": "IN", "into": "IN", "across": "IN", "using": "IN", "via": "IN", "as": "IN", "about": "IN", "over": "IN", "under": "IN", "within": "IN", "through": "IN",
	"to": "TO",
	"i": "PRP", "we": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "they": "PRP", "it": "PRP", "our": "PRP$", "my": "PRP$", "your": "PRP$", "their": "PRP$", "its": "PRP$",
	"is": "VBZ", "are": "VBP", "was": "VBD", "were": "VBD", "be": "VB", "been": "VBN", "have": "VBP", "has": "VBZ", "had": "VBD", "do": "VBP", "does": "VBZ", "did": "VBD",
	"will": "MD", "would": "MD", "can": "MD", "could": "MD", "should": "MD", "must": "MD", "may": "MD", "might": "MD",
	"not": "RB", "very": "RB", "also": "RB",
	"built": "VBD", "led": "VBD", "ran": "VBD", "wrote": "VBD", "made": "VBD",
}

// Lexical is a deterministic, dictionary-free tagger. It is the fallback when no
// statistical model is configured and the default annotator in tests.
type Lexical struct{}

// NewLexical returns a Lexical annotator.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Annotate tokenizes text and tags each token with a Penn Treebank tag.
func (l *Lexical) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Annotator: "lexical", Message: "cancelled", Cause: err}
	}

	words := tokenPattern.FindAllString(text, -1)
	tokens := make([]Token, 0, len(words))
	sentenceStart := true
	for _, w := range words {
		tag := lexicalTag(w, sentenceStart)
		tokens = append(tokens, Token{Text: w, Tag: tag})
		sentenceStart = tag == "."
	}

	ann := &Annotation{Tokens: tokens, NounPhrases: NounPhrases(tokens)}
	ann.Entities = properRuns(tokens)
	return ann, nil
}

func lexicalTag(w string, sentenceStart bool) string {
	first := []rune(w)[0]
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		switch w {
		case ".", "!", "?":
			return "."
		case ",":
			return ","
		case ":", ";":
			return ":"
		}
		return "SYM"
	}
	if isNumber(w) {
		return "CD"
	}

	lower := strings.ToLower(w)
	if tag, ok := closedClass[lower]; ok {
		return tag
	}

	switch {
	case w == strings.ToUpper(w) && len(w) > 1 && hasLetter(w):
		return "NNP"
	case unicode.IsUpper(first) && !sentenceStart:
		return "NNP"
	case len(lower) > 4 && strings.HasSuffix(lower, "ing"):
		return "VBG"
	case len(lower) > 3 && strings.HasSuffix(lower, "ed"):
		return "VBD"
	case len(lower) > 3 && strings.HasSuffix(lower, "ly"):
		return "RB"
	case len(lower) > 3 && strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return "NNS"
	}
	return "NN"
}

// properRuns labels maximal runs of NNP tokens as entities.
func properRuns(tokens []Token) []Span {
	var spans []Span
	for i := 0; i < len(tokens); {
		if tokens[i].Tag != "NNP" {
			i++
			continue
		}
		start := i
		for i < len(tokens) && tokens[i].Tag == "NNP" {
			i++
		}
		spans = append(spans, newSpan(tokens, start, i, "PROPER"))
	}
	return spans
}

func isNumber(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

func hasLetter(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
