// Package types provides type definitions for structured data used throughout the certification roadmap engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Certification is a single catalog entry. Name is the identity key used for deduplication.
type Certification struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Link           string   `json:"link"`
	RelevantSkills []string `json:"relevant_skills"`
}

// MatchResult is a certification recommended for a skill list.
type MatchResult struct {
	Certification  Certification `json:"certification"`
	MatchedSkills  []string      `json:"matched_skills"`
	RelevanceScore int           `json:"relevance_score"`
}

// Recommendation is the flattened wire shape of a MatchResult, as returned by the HTTP API.
type Recommendation struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	MatchedSkills  []string `json:"matched_skills"`
	RelevanceScore int      `json:"relevance_score"`
}

// ToRecommendations flattens match results for output.
func ToRecommendations(results []MatchResult) []Recommendation {
	out := make([]Recommendation, 0, len(results))
	for _, r := range results {
		out = append(out, Recommendation{
			Name:           r.Certification.Name,
			Description:    r.Certification.Description,
			URL:            r.Certification.Link,
			MatchedSkills:  r.MatchedSkills,
			RelevanceScore: r.RelevanceScore,
		})
	}
	return out
}
