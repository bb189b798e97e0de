package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/engine"
	"github.com/jonathan/cert-roadmap/internal/jobsource"
	"github.com/jonathan/cert-roadmap/internal/server/ratelimit"
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []types.Certification{
	{Name: "AWS Certified Developer", Link: "https://aws.amazon.com/certification/", RelevantSkills: []string{"AWS", "Python"}},
	{Name: "Cloud Native Kubernetes Associate", RelevantSkills: []string{"Kubernetes", "Docker"}},
	{Name: "Basic Life Support (BLS)", RelevantSkills: []string{"BLS", "Patient Care"}},
}

// mockStore implements engine.JobStore in memory
type mockStore struct {
	jobs []types.Job
}

func (m *mockStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			return &m.jobs[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) FindJobByTitle(_ context.Context, title string) (*types.Job, error) {
	for i := range m.jobs {
		if strings.Contains(strings.ToLower(m.jobs[i].Title), strings.ToLower(title)) {
			return &m.jobs[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) SearchJobs(_ context.Context, title string) ([]types.JobSummary, error) {
	var out []types.JobSummary
	for i := range m.jobs {
		if strings.Contains(strings.ToLower(m.jobs[i].Title), strings.ToLower(title)) {
			out = append(out, m.jobs[i].Summary())
		}
	}
	return out, nil
}

var testJob = types.Job{
	ID:          uuid.MustParse("7d3c3a52-7a36-4f3e-9d55-1f8f4a0c2b11"),
	Title:       "Cloud Engineer",
	Company:     "Acme",
	Description: "Deploy Docker containers on AWS.",
}

func newTestServer(t *testing.T, opts engine.Options) http.Handler {
	t.Helper()
	vocab, err := vocabulary.New([]string{"python", "aws", "docker", "kubernetes", "bls", "patient care"}, nil, testCatalog)
	require.NoError(t, err)
	if opts.Annotator == nil {
		opts.Annotator = annotate.NewLexical()
	}
	eng, err := engine.New(vocab, nil, opts)
	require.NoError(t, err)

	s := New(Config{RateLimit: &ratelimit.Config{Enabled: false}}, eng)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	w := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(3), resp["certifications"])
	assert.Equal(t, "first-accept", resp["strategy"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestExtractSkills(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	w := do(t, h, http.MethodPost, "/skills/extract", map[string]string{"text": "Built Python services on AWS."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"aws", "python"}, decode[SkillsResponse](t, w).Skills)

	w = do(t, h, http.MethodPost, "/skills/extract", map[string]string{"text": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"skills":[]}`, strings.TrimSpace(w.Body.String()))
}

func TestExtractSkills_InvalidBody(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	w := do(t, h, http.MethodPost, "/skills/extract", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "Invalid request body")
}

func TestExtractSkills_AnnotatorDown(t *testing.T) {
	h := newTestServer(t, engine.Options{Annotator: annotate.Func(func(context.Context, string) (*annotate.Annotation, error) {
		return nil, errors.New("model crashed")
	})})

	w := do(t, h, http.MethodPost, "/skills/extract", map[string]string{"text": "Python"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDetectDomain(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	w := do(t, h, http.MethodPost, "/domain/detect", types.DetectDomainRequest{JobTitle: "Registered Nurse"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[DomainResponse](t, w)
	require.NotNil(t, resp.Domain)
	assert.Equal(t, "healthcare", *resp.Domain)

	w = do(t, h, http.MethodPost, "/domain/detect", types.DetectDomainRequest{JobTitle: "Pilot", Skills: []string{"flying"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"domain":null}`, strings.TrimSpace(w.Body.String()))
}

func TestRecommend(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	w := do(t, h, http.MethodPost, "/certifications/recommend", types.RecommendRequest{
		Skills:   []string{"aws lambda", "serverless", "bls"},
		JobTitle: "Registered Nurse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[engine.RecommendResult](t, w)
	assert.Equal(t, "healthcare", resp.Domain)
	require.Len(t, resp.Certifications, 1)
	assert.Equal(t, "Basic Life Support (BLS)", resp.Certifications[0].Name)
}

func TestRecommend_Validation(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	descs := make([]string, 51)
	w := do(t, h, http.MethodPost, "/certifications/recommend", types.RecommendRequest{Skills: []string{"aws"}, JobDescriptions: descs})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "job_descriptions")
}

func TestAnalyzeSkills(t *testing.T) {
	h := newTestServer(t, engine.Options{JobSource: jobsource.Static{
		"We need AWS and Kubernetes experience.",
		"Docker and AWS skills required.",
	}})

	w := do(t, h, http.MethodPost, "/analyze-skills", types.AnalyzeSkillsRequest{
		ResumeText: "Built Python services.",
		TargetRole: "Cloud Engineer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decode[types.AnalysisReport](t, w)
	assert.Equal(t, []string{"aws", "docker", "kubernetes"}, report.MissingSkills)
	require.Len(t, report.RecommendedCertificates, 2)
	assert.Equal(t, "AWS Certified Developer", report.RecommendedCertificates[0].Name)
	assert.Equal(t, 3, report.RecommendedCertificates[0].RelevanceScore)
}

func TestAnalyzeSkills_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source jobsource.Source
		req    types.AnalyzeSkillsRequest
		status int
	}{
		{
			name:   "missing target role",
			source: jobsource.Static{"AWS"},
			req:    types.AnalyzeSkillsRequest{ResumeText: "Python"},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing resume",
			source: jobsource.Static{"AWS"},
			req:    types.AnalyzeSkillsRequest{TargetRole: "Engineer"},
			status: http.StatusBadRequest,
		},
		{
			name:   "no descriptions",
			source: jobsource.Static{},
			req:    types.AnalyzeSkillsRequest{ResumeText: "Python", TargetRole: "Engineer"},
			status: http.StatusNotFound,
		},
		{
			name:   "no job source",
			req:    types.AnalyzeSkillsRequest{ResumeText: "Python", TargetRole: "Engineer"},
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, engine.Options{JobSource: tt.source})
			w := do(t, h, http.MethodPost, "/analyze-skills", tt.req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRoadmapForJob(t *testing.T) {
	h := newTestServer(t, engine.Options{JobStore: &mockStore{jobs: []types.Job{testJob}}})

	w := do(t, h, http.MethodPost, "/roadmap-for-job", types.RoadmapRequest{
		JobID:      testJob.ID.String(),
		ResumeText: "Built Python services.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decode[types.RoadmapReport](t, w)
	assert.Equal(t, "Cloud Engineer", report.Job.Title)
	assert.Equal(t, "it", report.Domain)
	require.NotEmpty(t, report.RecommendedCertificates)
	assert.Equal(t, "AWS Certified Developer", report.RecommendedCertificates[0].Name)
}

func TestRoadmapForJob_Errors(t *testing.T) {
	h := newTestServer(t, engine.Options{JobStore: &mockStore{jobs: []types.Job{testJob}}})

	tests := []struct {
		name   string
		req    types.RoadmapRequest
		status int
	}{
		{name: "neither id nor role", req: types.RoadmapRequest{ResumeText: "Python"}, status: http.StatusBadRequest},
		{name: "malformed id", req: types.RoadmapRequest{ResumeText: "Python", JobID: "42"}, status: http.StatusBadRequest},
		{name: "unknown id", req: types.RoadmapRequest{ResumeText: "Python", JobID: uuid.NewString()}, status: http.StatusNotFound},
		{name: "unknown role", req: types.RoadmapRequest{ResumeText: "Python", TargetRole: "astronaut"}, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/roadmap-for-job", tt.req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestSearchJobs(t *testing.T) {
	h := newTestServer(t, engine.Options{JobStore: &mockStore{jobs: []types.Job{testJob}}})

	w := do(t, h, http.MethodGet, "/jobs/search?title=cloud", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[JobsResponse](t, w)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, testJob.ID, resp.Jobs[0].ID)

	w = do(t, h, http.MethodGet, "/jobs/search?title=nurse", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"jobs":[]}`, strings.TrimSpace(w.Body.String()))

	w = do(t, h, http.MethodGet, "/jobs/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, engine.Options{})

	w := do(t, h, http.MethodOptions, "/skills/extract", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	vocab, err := vocabulary.New([]string{"python"}, nil, nil)
	require.NoError(t, err)
	eng, err := engine.New(vocab, nil, engine.Options{Annotator: annotate.NewLexical()})
	require.NoError(t, err)

	s := New(Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/skills/extract", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	}}, eng)
	defer s.rateLimiter.Stop()
	h := s.Handler()

	for i := 0; i < 2; i++ {
		w := do(t, h, http.MethodPost, "/skills/extract", map[string]string{"text": "Python"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, h, http.MethodPost, "/skills/extract", map[string]string{"text": "Python"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	w = do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
