package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExtractSkillsRequest is the request body for skill extraction.
type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

// DetectDomainRequest is the request body for domain detection.
type DetectDomainRequest struct {
	JobTitle string   `json:"job_title,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// RecommendRequest asks for certifications for a skill list. JobDescriptions, when
// present, are turned into a role profile that orders the skills by frequency.
type RecommendRequest struct {
	Skills          []string `json:"skills" validate:"dive,max=200"`
	JobTitle        string   `json:"job_title,omitempty" validate:"max=200"`
	JobDescriptions []string `json:"job_descriptions,omitempty" validate:"max=50"`
}

// AnalyzeSkillsRequest compares a résumé against job descriptions fetched for a target role.
type AnalyzeSkillsRequest struct {
	ResumeText string `json:"resume_text" validate:"required_without=ResumeKey"`
	ResumeKey  string `json:"resume_key,omitempty"`
	TargetRole string `json:"target_role" validate:"required,max=200"`
	Location   string `json:"location,omitempty" validate:"max=200"`
	Review     bool   `json:"review,omitempty"`
}

// RoadmapRequest builds a certification roadmap for a stored job.
type RoadmapRequest struct {
	JobID      string `json:"job_id,omitempty" validate:"omitempty,uuid"`
	ResumeText string `json:"resume_text" validate:"required_without=ResumeKey"`
	ResumeKey  string `json:"resume_key,omitempty"`
	TargetRole string `json:"target_role,omitempty" validate:"max=200"`
	Review     bool   `json:"review,omitempty"`
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeSkillsRequest using the validator.
func (r *AnalyzeSkillsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RoadmapRequest using the validator.
func (r *RoadmapRequest) Validate() error {
	return validate.Struct(r)
}
