// Package matching scores a certification catalog against a skill list and returns
// a deduplicated, relevance-ranked recommendation list.
package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
)

// Tier points for a single skill/relevant-skill comparison.
const (
	pointsExact      = 3
	pointsNormalized = 2
	pointsSubstring  = 1

	// MinRelevanceScore is the accumulated score a certification needs to be recommended.
	MinRelevanceScore = 3

	// minSubstringLen is the shortest skill allowed to match by containment.
	minSubstringLen = 3
)

var separatorReplacer = strings.NewReplacer("/", " ", "-", " ")

// comparePair scores one skill against one relevant-skill entry. The first satisfied
// tier wins: exact, then separator-normalized equality, then containment.
func comparePair(skill, relevant string) int {
	rel := strings.ToLower(relevant)
	switch {
	case skill == rel:
		return pointsExact
	case separatorReplacer.Replace(skill) == separatorReplacer.Replace(rel):
		return pointsNormalized
	case utf8.RuneCountInString(skill) >= minSubstringLen && strings.Contains(rel, skill):
		return pointsSubstring
	}
	return 0
}

// ScoreSkill compares one skill against every relevant skill of cert and returns the
// summed points with the relevant-skill strings that matched, in catalog order.
func ScoreSkill(skill string, cert types.Certification) (int, []string) {
	s := vocabulary.Normalize(skill)
	if s == "" {
		return 0, nil
	}

	score := 0
	var matched []string
	for _, rel := range cert.RelevantSkills {
		if p := comparePair(s, rel); p > 0 {
			score += p
			matched = append(matched, rel)
		}
	}
	return score, matched
}

// Score is the relevance of cert for a whole skill set: the sum of ScoreSkill over the
// distinct normalized skills. Adding skills never lowers it.
func Score(skills []string, cert types.Certification) int {
	total := 0
	for _, s := range distinct(skills) {
		p, _ := ScoreSkill(s, cert)
		total += p
	}
	return total
}

// distinct normalizes skills and drops blanks and repeats, keeping first occurrence order.
func distinct(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := vocabulary.Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
