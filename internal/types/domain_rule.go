package types

// DomainRule maps title and skill keywords to a professional domain, and names the
// substrings a certification must carry to be considered part of that domain.
type DomainRule struct {
	Domain           string   `json:"domain" yaml:"domain"`
	TitleKeywords    []string `json:"title_keywords" yaml:"title_keywords"`
	SkillKeywords    []string `json:"skill_keywords" yaml:"skill_keywords"`
	CertNamePatterns []string `json:"cert_name_patterns" yaml:"cert_name_patterns"`
}
