package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/cert-roadmap/internal/document"
	"github.com/jonathan/cert-roadmap/internal/types"
)

// RecommendResult is the outcome of Recommend.
type RecommendResult struct {
	Domain          string                 `json:"domain,omitempty"`
	Certifications  []types.Recommendation `json:"recommended_certifications"`
	Profile         *types.RoleProfile     `json:"profile,omitempty"`
	ProfileJobCount int                    `json:"profile_job_count,omitempty"`
}

// Recommend ranks certifications for a skill list. Job descriptions in the request are
// turned into a role profile first.
func (e *Engine) Recommend(ctx context.Context, req *types.RecommendRequest) (*RecommendResult, error) {
	var profile *types.RoleProfile
	if len(req.JobDescriptions) > 0 {
		p, err := e.BuildRoleProfile(ctx, req.JobDescriptions)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	result := &RecommendResult{
		Certifications:  types.ToRecommendations(e.GetCertifications(req.Skills, profile, req.JobTitle)),
		Profile:         profile,
		ProfileJobCount: len(req.JobDescriptions),
	}
	if domain, ok := e.DetectDomain(req.JobTitle, req.Skills); ok {
		result.Domain = domain
	}
	return result, nil
}

// Analyze compares a résumé against job descriptions for the target role and recommends
// certifications covering the skills the résumé lacks.
func (e *Engine) Analyze(ctx context.Context, req *types.AnalyzeSkillsRequest) (*types.AnalysisReport, error) {
	if e.jobs == nil {
		return nil, fmt.Errorf("job source: %w", ErrNotConfigured)
	}

	resumeText, err := e.resumeText(ctx, req.ResumeText, req.ResumeKey)
	if err != nil {
		return nil, err
	}
	resumeSkills, err := e.ExtractSkills(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	descriptions, err := e.jobs.Descriptions(ctx, req.TargetRole, req.Location)
	if err != nil {
		return nil, &UpstreamError{Op: "job search", Cause: err}
	}
	if len(descriptions) == 0 {
		return nil, ErrNoJobDescriptions
	}
	log.Printf("[analyze] %d job descriptions for %q", len(descriptions), req.TargetRole)

	profile, err := e.BuildRoleProfile(ctx, descriptions)
	if err != nil {
		return nil, err
	}
	jobSkills, err := e.ExtractSkills(ctx, strings.Join(descriptions, "\n\n"))
	if err != nil {
		return nil, err
	}
	missing := difference(jobSkills, resumeSkills)

	report := &types.AnalysisReport{
		TargetRole:              req.TargetRole,
		Location:                req.Location,
		JobCount:                len(descriptions),
		ResumeSkills:            resumeSkills,
		JobSkills:               jobSkills,
		MissingSkills:           missing,
		Profile:                 profile,
		RecommendedCertificates: types.ToRecommendations(e.GetCertifications(missing, profile, "")),
	}

	if req.Review {
		report.Review = e.review(ctx, "analysis", func(ctx context.Context) (string, error) {
			return e.reviewer.Analysis(ctx, report)
		})
	}
	return report, nil
}

// Roadmap recommends certifications for a stored job, found by ID or else by the first
// job whose title contains the target role.
func (e *Engine) Roadmap(ctx context.Context, req *types.RoadmapRequest) (*types.RoadmapReport, error) {
	if e.store == nil {
		return nil, fmt.Errorf("job store: %w", ErrNotConfigured)
	}

	resumeText, err := e.resumeText(ctx, req.ResumeText, req.ResumeKey)
	if err != nil {
		return nil, err
	}
	resumeSkills, err := e.ExtractSkills(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	job, err := e.findJob(ctx, req.JobID, req.TargetRole)
	if err != nil {
		return nil, err
	}

	jobSkills, err := e.ExtractSkills(ctx, job.Description)
	if err != nil {
		return nil, err
	}
	profile, err := e.BuildRoleProfile(ctx, []string{job.Description})
	if err != nil {
		return nil, err
	}

	// The stored job title is not used for the domain; without a target role it comes from skills.
	title := req.TargetRole
	all := union(jobSkills, resumeSkills)

	report := &types.RoadmapReport{
		Job:                     job.Summary(),
		JobSkills:               jobSkills,
		ResumeSkills:            resumeSkills,
		RecommendedCertificates: types.ToRecommendations(e.GetCertifications(all, profile, title)),
	}
	if domain, ok := e.DetectDomain(title, all); ok {
		report.Domain = domain
	}

	if req.Review {
		report.Review = e.review(ctx, "roadmap", func(ctx context.Context) (string, error) {
			return e.reviewer.Roadmap(ctx, report)
		})
	}
	return report, nil
}

// SearchJobs lists stored jobs whose title contains title.
func (e *Engine) SearchJobs(ctx context.Context, title string) ([]types.JobSummary, error) {
	if e.store == nil {
		return nil, fmt.Errorf("job store: %w", ErrNotConfigured)
	}
	if strings.TrimSpace(title) == "" {
		return nil, &InputError{Field: "title", Message: "missing title parameter"}
	}
	return e.store.SearchJobs(ctx, title)
}

func (e *Engine) findJob(ctx context.Context, jobID, role string) (*types.Job, error) {
	var (
		job *types.Job
		err error
	)
	switch {
	case jobID != "":
		id, parseErr := uuid.Parse(jobID)
		if parseErr != nil {
			return nil, &InputError{Field: "job_id", Message: "must be a UUID"}
		}
		job, err = e.store.GetJob(ctx, id)
	case strings.TrimSpace(role) != "":
		job, err = e.store.FindJobByTitle(ctx, role)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil || strings.TrimSpace(job.Description) == "" {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// resumeText returns text, or the extracted text of the stored résumé under key.
func (e *Engine) resumeText(ctx context.Context, text, key string) (string, error) {
	if strings.TrimSpace(text) != "" || key == "" {
		return text, nil
	}
	if e.resumes == nil {
		return "", fmt.Errorf("résumé storage: %w", ErrNotConfigured)
	}

	obj, err := e.resumes.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to fetch résumé %s: %w", key, err)
	}
	mimeType := obj.ContentType
	if mimeType == "" || mimeType == "application/octet-stream" || mimeType == "binary/octet-stream" {
		mimeType = document.MIMEFromName(key)
	}
	extracted, err := document.ExtractText(mimeType, obj.Data)
	if err != nil {
		return "", fmt.Errorf("failed to read résumé %s: %w", key, err)
	}
	return extracted, nil
}

// review runs the optional review step. Failures are logged and leave the review empty.
func (e *Engine) review(ctx context.Context, kind string, fn func(context.Context) (string, error)) string {
	if e.reviewer == nil {
		log.Printf("[review] %s review requested but no reviewer is configured", kind)
		return ""
	}
	text, err := fn(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ""
		}
		log.Printf("[review] %s review failed: %v", kind, err)
		return ""
	}
	return text
}

// difference returns the entries of a not in b, in a's order.
func difference(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, s := range b {
		exclude[s] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, s := range a {
		if _, ok := exclude[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// union returns a followed by the entries of b not in a.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
