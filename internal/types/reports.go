package types

// AnalysisReport is the outcome of comparing a résumé against job descriptions for a role.
type AnalysisReport struct {
	TargetRole              string           `json:"target_role"`
	Location                string           `json:"location"`
	JobCount                int              `json:"job_count"`
	ResumeSkills            []string         `json:"resume_skills"`
	JobSkills               []string         `json:"job_skills"`
	MissingSkills           []string         `json:"missing_skills"`
	Profile                 *RoleProfile     `json:"-"`
	RecommendedCertificates []Recommendation `json:"recommended_certifications"`
	Review                  string           `json:"review,omitempty"`
}

// RoadmapReport is the certification roadmap for a single stored job.
type RoadmapReport struct {
	Job                     JobSummary       `json:"job"`
	Domain                  string           `json:"domain,omitempty"`
	JobSkills               []string         `json:"job_skills"`
	ResumeSkills            []string         `json:"resume_skills"`
	RecommendedCertificates []Recommendation `json:"recommended_certifications"`
	Review                  string           `json:"review,omitempty"`
}
