package matching

import (
	"fmt"
	"sort"

	"github.com/jonathan/cert-roadmap/internal/taxonomy"
	"github.com/jonathan/cert-roadmap/internal/types"
)

// Strategy selects how scores are gathered across the skill list.
type Strategy string

const (
	// StrategyFirstAccept scores each skill on its own. A certification is accepted
	// by the first skill that scores it at MinRelevanceScore or above and is never
	// revisited, so later, stronger skills cannot raise its score. This is the default.
	StrategyFirstAccept Strategy = "first-accept"

	// StrategyAccumulate sums every skill's points into each certification before
	// ranking. Acceptance order is the order in which certifications first cross
	// MinRelevanceScore.
	StrategyAccumulate Strategy = "accumulate"
)

// ParseStrategy maps a configuration value to a Strategy. Empty selects StrategyFirstAccept.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyFirstAccept:
		return StrategyFirstAccept, nil
	case StrategyAccumulate:
		return StrategyAccumulate, nil
	}
	return "", fmt.Errorf("unknown matching strategy %q", s)
}

// Matcher ranks a fixed catalog. It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	catalog  []types.Certification
	taxonomy *taxonomy.Taxonomy
	strategy Strategy
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithStrategy overrides the default StrategyFirstAccept.
func WithStrategy(s Strategy) Option {
	return func(m *Matcher) {
		m.strategy = s
	}
}

// New creates a Matcher over catalog using tax for domain detection and filtering.
func New(catalog []types.Certification, tax *taxonomy.Taxonomy, opts ...Option) *Matcher {
	m := &Matcher{
		catalog:  catalog,
		taxonomy: tax,
		strategy: StrategyFirstAccept,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Strategy returns the configured strategy.
func (m *Matcher) Strategy() Strategy {
	return m.strategy
}

// GetCertifications returns certifications relevant to skills, best first. profile may be
// nil; jobTitle may be empty. When a domain is detected only certifications admitted by
// that domain's rule are returned. No two results share a certification name.
func (m *Matcher) GetCertifications(skills []string, profile *types.RoleProfile, jobTitle string) []types.MatchResult {
	ordered := orderSkills(distinct(skills), profile)
	if len(ordered) == 0 || len(m.catalog) == 0 {
		return []types.MatchResult{}
	}

	var rule *types.DomainRule
	if m.taxonomy != nil {
		if domain, ok := m.taxonomy.DetectDomain(jobTitle, ordered); ok {
			if r, found := m.taxonomy.Rule(domain); found {
				rule = &r
			}
		}
	}
	admits := func(c types.Certification) bool {
		return rule == nil || taxonomy.Admits(*rule, c)
	}

	var results []types.MatchResult
	if m.strategy == StrategyAccumulate {
		results = m.accumulate(ordered, admits)
	} else {
		results = m.firstAccept(ordered, admits)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	return results
}

// orderSkills stable-sorts skills by descending profile frequency. Without a profile the
// input order is kept.
func orderSkills(skills []string, profile *types.RoleProfile) []string {
	if profile == nil {
		return skills
	}
	out := make([]string, len(skills))
	copy(out, skills)
	sort.SliceStable(out, func(i, j int) bool {
		return profile.Frequency(out[i]) > profile.Frequency(out[j])
	})
	return out
}

type candidate struct {
	score   int
	matched []string
	seen    map[string]struct{}
}

func (c *candidate) add(points int, matched []string) {
	c.score += points
	for _, s := range matched {
		if _, dup := c.seen[s]; dup {
			continue
		}
		c.seen[s] = struct{}{}
		c.matched = append(c.matched, s)
	}
}

func (m *Matcher) accumulate(skills []string, admits func(types.Certification) bool) []types.MatchResult {
	candidates := make([]*candidate, len(m.catalog))
	for i := range candidates {
		candidates[i] = &candidate{seen: make(map[string]struct{})}
	}

	// Acceptance order: catalog indexes in the order they first crossed the threshold.
	var order []int
	crossed := make([]bool, len(m.catalog))
	for _, skill := range skills {
		for i, cert := range m.catalog {
			points, matched := ScoreSkill(skill, cert)
			if points == 0 {
				continue
			}
			c := candidates[i]
			c.add(points, matched)
			if !crossed[i] && c.score >= MinRelevanceScore && len(c.matched) > 0 {
				crossed[i] = true
				order = append(order, i)
			}
		}
	}

	results := make([]types.MatchResult, 0, len(order))
	names := make(map[string]struct{}, len(order))
	for _, i := range order {
		cert := m.catalog[i]
		if _, dup := names[cert.Name]; dup {
			continue
		}
		if !admits(cert) {
			continue
		}
		names[cert.Name] = struct{}{}
		results = append(results, types.MatchResult{
			Certification:  cert,
			MatchedSkills:  candidates[i].matched,
			RelevanceScore: candidates[i].score,
		})
	}
	return results
}

func (m *Matcher) firstAccept(skills []string, admits func(types.Certification) bool) []types.MatchResult {
	results := make([]types.MatchResult, 0)
	names := make(map[string]struct{})
	for _, skill := range skills {
		for _, cert := range m.catalog {
			if _, done := names[cert.Name]; done {
				continue
			}
			points, matched := ScoreSkill(skill, cert)
			if points < MinRelevanceScore || len(matched) == 0 {
				continue
			}
			if !admits(cert) {
				continue
			}
			c := &candidate{seen: make(map[string]struct{})}
			c.add(points, matched)
			names[cert.Name] = struct{}{}
			results = append(results, types.MatchResult{
				Certification:  cert,
				MatchedSkills:  c.matched,
				RelevanceScore: c.score,
			})
		}
	}
	return results
}
