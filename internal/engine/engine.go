// Package engine wires the vocabulary, annotator, extractor, taxonomy and matcher into
// the caller-facing operations, and composes them with job sources, the job store,
// résumé storage and the optional review step.
package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/extraction"
	"github.com/jonathan/cert-roadmap/internal/jobsource"
	"github.com/jonathan/cert-roadmap/internal/matching"
	"github.com/jonathan/cert-roadmap/internal/storage"
	"github.com/jonathan/cert-roadmap/internal/taxonomy"
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
)

// JobStore reads stored job postings.
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	FindJobByTitle(ctx context.Context, title string) (*types.Job, error)
	SearchJobs(ctx context.Context, title string) ([]types.JobSummary, error)
}

// Reviewer writes prose reviews of reports.
type Reviewer interface {
	Analysis(ctx context.Context, report *types.AnalysisReport) (string, error)
	Roadmap(ctx context.Context, report *types.RoadmapReport) (string, error)
}

// Options configures an Engine. Only Annotator is required.
type Options struct {
	Annotator   annotate.Annotator
	Strategy    matching.Strategy
	Concurrency int
	// Cache memoizes annotations by input text for the process lifetime.
	Cache bool

	JobSource jobsource.Source
	JobStore  JobStore
	Resumes   storage.ObjectStore
	Reviewer  Reviewer
}

// Engine is immutable after New and safe for concurrent use.
type Engine struct {
	vocab     *vocabulary.Vocabulary
	taxonomy  *taxonomy.Taxonomy
	annotator annotate.Annotator
	extractor *extraction.Extractor
	matcher   *matching.Matcher

	jobs     jobsource.Source
	store    JobStore
	resumes  storage.ObjectStore
	reviewer Reviewer
}

// New builds an Engine. A nil tax uses the built-in taxonomy.
func New(vocab *vocabulary.Vocabulary, tax *taxonomy.Taxonomy, opts Options) (*Engine, error) {
	if vocab == nil {
		return nil, &vocabulary.ConfigurationError{Source: "engine", Message: "vocabulary is required"}
	}
	if opts.Annotator == nil {
		return nil, &vocabulary.ConfigurationError{Source: "engine", Message: "annotator is required"}
	}
	if tax == nil {
		tax = taxonomy.Default()
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = matching.StrategyFirstAccept
	}

	ann := opts.Annotator
	if opts.Cache {
		ann = annotate.NewCached(ann)
	}

	return &Engine{
		vocab:     vocab,
		taxonomy:  tax,
		annotator: ann,
		extractor: extraction.New(vocab, ann, extraction.WithConcurrency(opts.Concurrency)),
		matcher:   matching.New(vocab.Certifications(), tax, matching.WithStrategy(strategy)),
		jobs:      opts.JobSource,
		store:     opts.JobStore,
		resumes:   opts.Resumes,
		reviewer:  opts.Reviewer,
	}, nil
}

// Vocabulary returns the engine's vocabulary.
func (e *Engine) Vocabulary() *vocabulary.Vocabulary {
	return e.vocab
}

// Strategy returns the matching strategy in use.
func (e *Engine) Strategy() matching.Strategy {
	return e.matcher.Strategy()
}

// ExtractSkills returns the sorted known skills mentioned in text.
func (e *Engine) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	skills, err := e.extractor.ExtractSkills(ctx, text)
	if err != nil {
		return nil, &UpstreamError{Op: "skill extraction", Cause: err}
	}
	return skills, nil
}

// BuildRoleProfile aggregates skill frequencies and contexts across descriptions.
func (e *Engine) BuildRoleProfile(ctx context.Context, descriptions []string) (*types.RoleProfile, error) {
	profile, err := e.extractor.BuildRoleProfile(ctx, descriptions)
	if err != nil {
		return nil, &UpstreamError{Op: "role profile", Cause: err}
	}
	return profile, nil
}

// DetectDomain classifies a job title and skill set. ok is false when no rule matches.
func (e *Engine) DetectDomain(jobTitle string, skills []string) (domain string, ok bool) {
	return e.taxonomy.DetectDomain(jobTitle, skills)
}

// GetCertifications ranks the catalog against skills. profile and jobTitle are optional.
func (e *Engine) GetCertifications(skills []string, profile *types.RoleProfile, jobTitle string) []types.MatchResult {
	return e.matcher.GetCertifications(skills, profile, jobTitle)
}
