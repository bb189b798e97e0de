package types

// RoleProfile aggregates skill occurrence counts and surrounding text across a batch of job descriptions.
type RoleProfile struct {
	Frequencies map[string]int      `json:"frequencies"`
	Contexts    map[string][]string `json:"contexts"`
}

// NewRoleProfile returns a profile with empty, non-nil mappings.
func NewRoleProfile() *RoleProfile {
	return &RoleProfile{
		Frequencies: make(map[string]int),
		Contexts:    make(map[string][]string),
	}
}

// Record counts one occurrence of skill seen inside context.
func (p *RoleProfile) Record(skill, context string) {
	p.Frequencies[skill]++
	p.Contexts[skill] = append(p.Contexts[skill], context)
}

// Frequency returns the occurrence count for skill. A nil profile has no counts.
func (p *RoleProfile) Frequency(skill string) int {
	if p == nil {
		return 0
	}
	return p.Frequencies[skill]
}

// Merge adds every count and context of other into p, preserving context order.
func (p *RoleProfile) Merge(other *RoleProfile) {
	if other == nil {
		return
	}
	for skill, n := range other.Frequencies {
		p.Frequencies[skill] += n
	}
	for skill, ctxs := range other.Contexts {
		p.Contexts[skill] = append(p.Contexts[skill], ctxs...)
	}
}
