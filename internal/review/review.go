// Package review asks a language model to turn a certification report into a written roadmap.
package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/llm"
	"github.com/jonathan/cert-roadmap/internal/prompts"
	"github.com/jonathan/cert-roadmap/internal/types"
)

const promptFile = "review.json"

// Reviewer writes prose reviews of analysis and roadmap reports.
type Reviewer struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates a Reviewer using the standard model tier.
func New(client llm.Client) *Reviewer {
	return &Reviewer{client: client, tier: llm.TierStandard}
}

// Analysis reviews the outcome of a résumé-versus-role analysis.
func (r *Reviewer) Analysis(ctx context.Context, report *types.AnalysisReport) (string, error) {
	return r.generate(ctx, "review-analysis", map[string]string{
		"Role":           report.TargetRole,
		"ResumeSkills":   joinOrNone(report.ResumeSkills),
		"MissingSkills":  joinOrNone(report.MissingSkills),
		"Certifications": formatCertifications(report.RecommendedCertificates),
	})
}

// Roadmap reviews the certification roadmap for a stored job.
func (r *Reviewer) Roadmap(ctx context.Context, report *types.RoadmapReport) (string, error) {
	job := report.Job.Title
	if report.Job.Company != "" {
		job += " at " + report.Job.Company
	}
	domain := report.Domain
	if domain == "" {
		domain = "unknown"
	}
	return r.generate(ctx, "review-roadmap", map[string]string{
		"Job":            job,
		"Domain":         domain,
		"JobSkills":      joinOrNone(report.JobSkills),
		"ResumeSkills":   joinOrNone(report.ResumeSkills),
		"Certifications": formatCertifications(report.RecommendedCertificates),
	})
}

func (r *Reviewer) generate(ctx context.Context, key string, data map[string]string) (string, error) {
	prompt, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return "", err
	}
	text, err := r.client.GenerateContent(ctx, prompt, r.tier)
	if err != nil {
		return "", fmt.Errorf("failed to generate review: %w", err)
	}
	return text, nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func formatCertifications(recs []types.Recommendation) string {
	if len(recs) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, rec := range recs {
		fmt.Fprintf(&sb, "%d. %s (score %d; covers %s)\n", i+1, rec.Name, rec.RelevanceScore, joinOrNone(rec.MatchedSkills))
	}
	return strings.TrimRight(sb.String(), "\n")
}
