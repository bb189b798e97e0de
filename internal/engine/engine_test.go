package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/jobsource"
	"github.com/jonathan/cert-roadmap/internal/storage"
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []types.Certification{
	{Name: "AWS Certified Developer", Link: "https://aws.amazon.com/certification/", RelevantSkills: []string{"AWS", "Python"}},
	{Name: "Cloud Native Kubernetes Associate", Link: "https://training.linuxfoundation.org/", RelevantSkills: []string{"Kubernetes", "Docker"}},
}

type fakeStore struct {
	jobs []types.Job
	err  error
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindJobByTitle(_ context.Context, title string) (*types.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.jobs {
		if strings.Contains(strings.ToLower(f.jobs[i].Title), strings.ToLower(title)) {
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SearchJobs(_ context.Context, title string) ([]types.JobSummary, error) {
	var out []types.JobSummary
	for i := range f.jobs {
		if strings.Contains(strings.ToLower(f.jobs[i].Title), strings.ToLower(title)) {
			out = append(out, f.jobs[i].Summary())
		}
	}
	return out, nil
}

type fakeReviewer struct {
	text string
	err  error
}

func (f *fakeReviewer) Analysis(context.Context, *types.AnalysisReport) (string, error) {
	return f.text, f.err
}

func (f *fakeReviewer) Roadmap(context.Context, *types.RoadmapReport) (string, error) {
	return f.text, f.err
}

type failingSource struct{}

func (failingSource) Descriptions(context.Context, string, string) ([]string, error) {
	return nil, &jobsource.Error{Source: "test", Message: "down"}
}

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	vocab, err := vocabulary.New([]string{"python", "aws", "docker", "kubernetes"}, nil, testCatalog)
	require.NoError(t, err)
	if opts.Annotator == nil {
		opts.Annotator = annotate.NewLexical()
	}
	e, err := New(vocab, nil, opts)
	require.NoError(t, err)
	return e
}

func names(recs []types.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, nil, Options{Annotator: annotate.NewLexical()})
	var cfgErr *vocabulary.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	vocab, err := vocabulary.New([]string{"python"}, nil, nil)
	require.NoError(t, err)
	_, err = New(vocab, nil, Options{})
	assert.ErrorAs(t, err, &cfgErr)
}

func TestExtractSkills_UpstreamFailure(t *testing.T) {
	cause := errors.New("model unavailable")
	e := newEngine(t, Options{Annotator: annotate.Func(func(context.Context, string) (*annotate.Annotation, error) {
		return nil, cause
	})})

	_, err := e.ExtractSkills(context.Background(), "Python")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestExtractSkills_CachedAnnotator(t *testing.T) {
	calls := 0
	lex := annotate.NewLexical()
	e := newEngine(t, Options{Cache: true, Annotator: annotate.Func(func(ctx context.Context, text string) (*annotate.Annotation, error) {
		calls++
		return lex.Annotate(ctx, text)
	})})

	for i := 0; i < 3; i++ {
		skills, err := e.ExtractSkills(context.Background(), "Built Python services.")
		require.NoError(t, err)
		assert.Equal(t, []string{"python"}, skills)
	}
	assert.Equal(t, 1, calls)
}

func TestRecommend(t *testing.T) {
	e := newEngine(t, Options{})

	result, err := e.Recommend(context.Background(), &types.RecommendRequest{
		Skills:   []string{"Docker", "kubernetes"},
		JobTitle: "Platform Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "it", result.Domain)
	require.Len(t, result.Certifications, 1)
	assert.Equal(t, "Cloud Native Kubernetes Associate", result.Certifications[0].Name)
	assert.Equal(t, 3, result.Certifications[0].RelevanceScore)
	assert.Nil(t, result.Profile)
}

func TestRecommend_WithDescriptions(t *testing.T) {
	e := newEngine(t, Options{})

	result, err := e.Recommend(context.Background(), &types.RecommendRequest{
		Skills:          []string{"python", "aws"},
		JobDescriptions: []string{"Strong AWS skills.", "We run AWS daily."},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Profile)
	assert.Equal(t, 2, result.Profile.Frequency("aws"))
	assert.Equal(t, 2, result.ProfileJobCount)
	require.Len(t, result.Certifications, 1)
	// aws is ordered first by frequency, so it accepts the certification.
	assert.Equal(t, []string{"AWS"}, result.Certifications[0].MatchedSkills)
}

func TestAnalyze(t *testing.T) {
	e := newEngine(t, Options{
		JobSource: jobsource.Static{
			"We need AWS and Kubernetes experience.",
			"Docker and AWS skills required.",
		},
	})

	report, err := e.Analyze(context.Background(), &types.AnalyzeSkillsRequest{
		ResumeText: "Built Python services.",
		TargetRole: "Cloud Engineer",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.JobCount)
	assert.Equal(t, []string{"python"}, report.ResumeSkills)
	assert.Equal(t, []string{"aws", "docker", "kubernetes"}, report.JobSkills)
	assert.Equal(t, []string{"aws", "docker", "kubernetes"}, report.MissingSkills)
	assert.Equal(t, 2, report.Profile.Frequency("aws"))

	assert.Equal(t, []string{"AWS Certified Developer", "Cloud Native Kubernetes Associate"}, names(report.RecommendedCertificates))
	assert.Equal(t, 3, report.RecommendedCertificates[0].RelevanceScore)
	assert.Equal(t, []string{"AWS"}, report.RecommendedCertificates[0].MatchedSkills)
	assert.Empty(t, report.Review)
}

func TestAnalyze_NoDescriptions(t *testing.T) {
	e := newEngine(t, Options{JobSource: jobsource.Static{}})

	_, err := e.Analyze(context.Background(), &types.AnalyzeSkillsRequest{ResumeText: "Python", TargetRole: "x"})
	assert.ErrorIs(t, err, ErrNoJobDescriptions)
}

func TestAnalyze_SourceFailure(t *testing.T) {
	e := newEngine(t, Options{JobSource: failingSource{}})

	_, err := e.Analyze(context.Background(), &types.AnalyzeSkillsRequest{ResumeText: "Python", TargetRole: "x"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	var srcErr *jobsource.Error
	assert.ErrorAs(t, err, &srcErr)
}

func TestAnalyze_NoSource(t *testing.T) {
	e := newEngine(t, Options{})

	_, err := e.Analyze(context.Background(), &types.AnalyzeSkillsRequest{ResumeText: "Python", TargetRole: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnalyze_Review(t *testing.T) {
	req := &types.AnalyzeSkillsRequest{ResumeText: "Python", TargetRole: "Cloud Engineer", Review: true}

	e := newEngine(t, Options{
		JobSource: jobsource.Static{"AWS work."},
		Reviewer:  &fakeReviewer{text: "Get the AWS certification first."},
	})
	report, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Get the AWS certification first.", report.Review)

	e = newEngine(t, Options{
		JobSource: jobsource.Static{"AWS work."},
		Reviewer:  &fakeReviewer{err: errors.New("quota exceeded")},
	})
	report, err = e.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, report.Review)
}

func TestAnalyze_ResumeFromStorage(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Put(context.Background(), &storage.Object{
		Key:  "resumes/jane.txt",
		Data: []byte("Built Docker images."),
	}))
	e := newEngine(t, Options{
		JobSource: jobsource.Static{"Docker and AWS."},
		Resumes:   store,
	})

	report, err := e.Analyze(context.Background(), &types.AnalyzeSkillsRequest{
		ResumeKey:  "resumes/jane.txt",
		TargetRole: "Cloud Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docker"}, report.ResumeSkills)
	assert.Equal(t, []string{"aws"}, report.MissingSkills)

	_, err = e.Analyze(context.Background(), &types.AnalyzeSkillsRequest{
		ResumeKey:  "resumes/missing.txt",
		TargetRole: "Cloud Engineer",
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRoadmap(t *testing.T) {
	job := types.Job{
		ID:          uuid.New(),
		Title:       "Cloud Engineer",
		Company:     "Acme",
		Description: "Deploy Docker containers on AWS.",
	}
	e := newEngine(t, Options{JobStore: &fakeStore{jobs: []types.Job{job}}})

	report, err := e.Roadmap(context.Background(), &types.RoadmapRequest{
		JobID:      job.ID.String(),
		ResumeText: "Built Python services.",
	})
	require.NoError(t, err)

	assert.Equal(t, job.Summary(), report.Job)
	assert.Equal(t, "it", report.Domain)
	assert.Equal(t, []string{"aws", "docker"}, report.JobSkills)
	assert.Equal(t, []string{"python"}, report.ResumeSkills)
	assert.Equal(t, []string{"AWS Certified Developer", "Cloud Native Kubernetes Associate"}, names(report.RecommendedCertificates))
	assert.Equal(t, 3, report.RecommendedCertificates[0].RelevanceScore)
}

func TestRoadmap_DomainFromTargetRoleOnly(t *testing.T) {
	job := types.Job{ID: uuid.New(), Title: "Registered Nurse", Description: "Deploy Docker containers on AWS."}
	e := newEngine(t, Options{JobStore: &fakeStore{jobs: []types.Job{job}}})

	report, err := e.Roadmap(context.Background(), &types.RoadmapRequest{
		JobID:      job.ID.String(),
		ResumeText: "Built Python services.",
	})
	require.NoError(t, err)
	assert.Equal(t, "it", report.Domain)
	assert.NotEmpty(t, report.RecommendedCertificates)

	report, err = e.Roadmap(context.Background(), &types.RoadmapRequest{
		JobID:      job.ID.String(),
		TargetRole: "nurse",
		ResumeText: "Built Python services.",
	})
	require.NoError(t, err)
	assert.Equal(t, "healthcare", report.Domain)
	assert.Empty(t, report.RecommendedCertificates)
}

func TestRoadmap_ByTargetRole(t *testing.T) {
	store := &fakeStore{jobs: []types.Job{
		{ID: uuid.New(), Title: "Registered Nurse", Description: "Patient care."},
		{ID: uuid.New(), Title: "Senior Cloud Engineer", Description: "Kubernetes and Docker."},
	}}
	e := newEngine(t, Options{JobStore: store})

	report, err := e.Roadmap(context.Background(), &types.RoadmapRequest{
		ResumeText: "Python",
		TargetRole: "cloud engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Cloud Engineer", report.Job.Title)
	assert.Equal(t, []string{"docker", "kubernetes"}, report.JobSkills)
}

func TestRoadmap_NotFound(t *testing.T) {
	e := newEngine(t, Options{JobStore: &fakeStore{}})

	_, err := e.Roadmap(context.Background(), &types.RoadmapRequest{ResumeText: "Python", JobID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = e.Roadmap(context.Background(), &types.RoadmapRequest{ResumeText: "Python", TargetRole: "pilot"})
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = e.Roadmap(context.Background(), &types.RoadmapRequest{ResumeText: "Python"})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRoadmap_InvalidJobID(t *testing.T) {
	e := newEngine(t, Options{JobStore: &fakeStore{}})

	_, err := e.Roadmap(context.Background(), &types.RoadmapRequest{ResumeText: "Python", JobID: "42"})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "job_id", inputErr.Field)
}

func TestRoadmap_StoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	e := newEngine(t, Options{JobStore: &fakeStore{err: cause}})

	_, err := e.Roadmap(context.Background(), &types.RoadmapRequest{ResumeText: "Python", TargetRole: "engineer"})
	assert.ErrorIs(t, err, cause)
}

func TestSearchJobs(t *testing.T) {
	store := &fakeStore{jobs: []types.Job{
		{ID: uuid.New(), Title: "Data Engineer"},
		{ID: uuid.New(), Title: "Nurse"},
	}}
	e := newEngine(t, Options{JobStore: store})

	jobs, err := e.SearchJobs(context.Background(), "engineer")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Data Engineer", jobs[0].Title)

	_, err = e.SearchJobs(context.Background(), "  ")
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestDifferenceAndUnion(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, difference([]string{"a", "b", "c"}, []string{"b", "d"}))
	assert.Equal(t, []string{"a", "b", "d"}, union([]string{"a", "b"}, []string{"b", "d"}))
	assert.Empty(t, difference(nil, []string{"x"}))
}
