// Package vocabulary holds the immutable reference tables the engine matches against:
// the known skill set, the generic-skill deny list and the certification catalog.
package vocabulary

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/types"
)

// DefaultGenericSkills are phrases too broad to be actionable as extracted skills.
var DefaultGenericSkills = []string{
	"communication",
	"teamwork",
	"leadership",
	"management",
	"project management",
	"customer service",
	"adaptability",
	"problem-solving",
	"research",
	"organization",
}

// Normalize returns the matching key for a skill: lower-cased and trimmed.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Vocabulary is read-only after construction and safe for concurrent use.
type Vocabulary struct {
	known    map[string]struct{}
	sorted   []string
	generic  map[string]struct{}
	catalog  []types.Certification
	accepted []string
}

// New builds a Vocabulary. Skills and deny-list entries are normalized; blanks are dropped.
// A nil genericSkills uses DefaultGenericSkills.
func New(skills, genericSkills []string, catalog []types.Certification) (*Vocabulary, error) {
	if genericSkills == nil {
		genericSkills = DefaultGenericSkills
	}

	v := &Vocabulary{
		known:   make(map[string]struct{}, len(skills)),
		generic: make(map[string]struct{}, len(genericSkills)),
	}
	for _, s := range skills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := v.known[n]; dup {
			continue
		}
		v.known[n] = struct{}{}
		v.sorted = append(v.sorted, n)
	}
	if len(v.known) == 0 {
		return nil, &ConfigurationError{Source: "skills", Message: "known skill set is empty"}
	}
	sort.Strings(v.sorted)

	for _, s := range genericSkills {
		if n := Normalize(s); n != "" {
			v.generic[n] = struct{}{}
		}
	}

	for _, s := range v.sorted {
		if _, deny := v.generic[s]; !deny {
			v.accepted = append(v.accepted, s)
		}
	}

	v.catalog = make([]types.Certification, 0, len(catalog))
	for i, c := range catalog {
		if strings.TrimSpace(c.Name) == "" {
			return nil, &ConfigurationError{Source: "catalog", Message: "certification without a name at position " + strconv.Itoa(i)}
		}
		rel := make([]string, len(c.RelevantSkills))
		copy(rel, c.RelevantSkills)
		c.RelevantSkills = rel
		v.catalog = append(v.catalog, c)
	}

	return v, nil
}

// IsKnown reports whether the normalized skill is in the known set.
func (v *Vocabulary) IsKnown(skill string) bool {
	_, ok := v.known[skill]
	return ok
}

// IsGeneric reports whether the normalized skill is on the deny list.
func (v *Vocabulary) IsGeneric(skill string) bool {
	_, ok := v.generic[skill]
	return ok
}

// Accepts reports whether a normalized candidate may appear in extraction output.
func (v *Vocabulary) Accepts(skill string) bool {
	return v.IsKnown(skill) && !v.IsGeneric(skill)
}

// Skills returns the known skills in sorted order. The slice must not be modified.
func (v *Vocabulary) Skills() []string {
	return v.sorted
}

// Extractable returns known skills that are not on the deny list, in sorted order.
// The slice must not be modified.
func (v *Vocabulary) Extractable() []string {
	return v.accepted
}

// Certifications returns the catalog in load order. The slice must not be modified.
func (v *Vocabulary) Certifications() []types.Certification {
	return v.catalog
}

// Size returns the number of known skills and catalog entries.
func (v *Vocabulary) Size() (skills, certifications int) {
	return len(v.known), len(v.catalog)
}
