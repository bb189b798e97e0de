// Package taxonomy classifies job titles and skill sets into a professional domain
// using an ordered, first-match-wins list of keyword rules.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
	"gopkg.in/yaml.v3"
)

// Taxonomy is immutable after construction and safe for concurrent use.
type Taxonomy struct {
	rules []types.DomainRule
	index map[string]int
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	t, err := New(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("built-in taxonomy is invalid: %v", err))
	}
	return t
}

// New builds a taxonomy from rules in priority order. Keywords and patterns are lower-cased.
func New(rules []types.DomainRule) (*Taxonomy, error) {
	if len(rules) == 0 {
		return nil, &vocabulary.ConfigurationError{Source: "taxonomy", Message: "no domain rules"}
	}

	t := &Taxonomy{
		rules: make([]types.DomainRule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		domain := strings.TrimSpace(r.Domain)
		if domain == "" {
			return nil, &vocabulary.ConfigurationError{Source: "taxonomy", Message: fmt.Sprintf("rule %d has no domain", i)}
		}
		if _, dup := t.index[domain]; dup {
			return nil, &vocabulary.ConfigurationError{Source: "taxonomy", Message: fmt.Sprintf("duplicate domain %q", domain)}
		}
		t.index[domain] = len(t.rules)
		t.rules = append(t.rules, types.DomainRule{
			Domain:           domain,
			TitleKeywords:    lowerAll(r.TitleKeywords),
			SkillKeywords:    lowerAll(r.SkillKeywords),
			CertNamePatterns: lowerAll(r.CertNamePatterns),
		})
	}
	return t, nil
}

// file is the YAML layout of a taxonomy override.
type file struct {
	Domains []types.DomainRule `yaml:"domains"`
}

// LoadYAML reads a taxonomy from a YAML file with a top-level "domains" list.
func LoadYAML(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &vocabulary.ConfigurationError{Source: "taxonomy", Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return ParseYAML(data)
}

// ParseYAML decodes a taxonomy document.
func ParseYAML(data []byte) (*Taxonomy, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &vocabulary.ConfigurationError{Source: "taxonomy", Message: "invalid YAML", Cause: err}
	}
	return New(f.Domains)
}

// DetectDomain walks the rules in order. Within a rule a title keyword contained in the
// title wins over a skill keyword present in skills. No match returns ok == false.
func (t *Taxonomy) DetectDomain(jobTitle string, skills []string) (domain string, ok bool) {
	title := strings.ToLower(jobTitle)
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[vocabulary.Normalize(s)] = struct{}{}
	}

	for _, r := range t.rules {
		if title != "" {
			for _, kw := range r.TitleKeywords {
				if strings.Contains(title, kw) {
					return r.Domain, true
				}
			}
		}
		for _, kw := range r.SkillKeywords {
			if _, hit := skillSet[kw]; hit {
				return r.Domain, true
			}
		}
	}
	return "", false
}

// Rule returns the rule for domain.
func (t *Taxonomy) Rule(domain string) (types.DomainRule, bool) {
	i, ok := t.index[domain]
	if !ok {
		return types.DomainRule{}, false
	}
	return t.rules[i], true
}

// Rules returns the rules in priority order. The slice must not be modified.
func (t *Taxonomy) Rules() []types.DomainRule {
	return t.rules
}

// Admits reports whether cert belongs to the rule's domain: its name or one of its
// relevant skills contains one of the rule's certification patterns.
func Admits(rule types.DomainRule, cert types.Certification) bool {
	name := strings.ToLower(cert.Name)
	for _, pat := range rule.CertNamePatterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	for _, s := range cert.RelevantSkills {
		lower := strings.ToLower(s)
		for _, pat := range rule.CertNamePatterns {
			if strings.Contains(lower, pat) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
