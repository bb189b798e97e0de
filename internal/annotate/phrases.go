package annotate

import "strings"

// NounPhrases derives base noun-phrase spans from tag runs: optional adjectives,
// numbers and nouns, ending on a noun.
func NounPhrases(tokens []Token) []Span {
	var spans []Span
	i := 0
	for i < len(tokens) {
		if !isPhraseTag(tokens[i]) {
			i++
			continue
		}
		start := i
		lastNoun := -1
		for i < len(tokens) && isPhraseTag(tokens[i]) {
			if tokens[i].IsNoun() {
				lastNoun = i
			}
			i++
		}
		if lastNoun >= 0 {
			spans = append(spans, newSpan(tokens, start, lastNoun+1, ""))
		}
	}
	return spans
}

// locate finds words as a contiguous token run at or after from.
func locate(tokens []Token, words []string, from int) int {
	if len(words) == 0 {
		return -1
	}
	for i := from; i+len(words) <= len(tokens); i++ {
		match := true
		for j, w := range words {
			if tokens[i+j].Text != w {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func newSpan(tokens []Token, start, end int, label string) Span {
	parts := make([]string, 0, end-start)
	for _, t := range tokens[start:end] {
		parts = append(parts, t.Text)
	}
	return Span{Start: start, End: end, Text: strings.Join(parts, " "), Label: label}
}

func isPhraseTag(t Token) bool {
	if t.IsNoun() {
		return true
	}
	switch t.Tag {
	case "JJ", "JJR", "JJS", "ADJ", "CD", "NUM":
		return true
	}
	return false
}
