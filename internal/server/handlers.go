package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/types"
)

// SkillsResponse is the response for /skills/extract
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// DomainResponse is the response for /domain/detect. Domain is null when no rule matches.
type DomainResponse struct {
	Domain *string `json:"domain"`
}

// JobsResponse is the response for /jobs/search
type JobsResponse struct {
	Jobs []types.JobSummary `json:"jobs"`
}

// decodeBody reads a JSON request body into v.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// failure writes err with its mapped status. Internal errors are logged and not echoed.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
	}
	if status == http.StatusInternalServerError {
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// handleExtractSkills returns the known skills mentioned in the text
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractSkillsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	skills, err := s.engine.ExtractSkills(r.Context(), req.Text)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: skills})
}

// handleDetectDomain classifies a job title and skill list
func (s *Server) handleDetectDomain(w http.ResponseWriter, r *http.Request) {
	var req types.DetectDomainRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	var resp DomainResponse
	if domain, ok := s.engine.DetectDomain(req.JobTitle, req.Skills); ok {
		resp.Domain = &domain
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRecommend ranks certifications for a skill list
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}

	result, err := s.engine.Recommend(r.Context(), &req)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeSkills compares a résumé against job descriptions for a target role
func (s *Server) handleAnalyzeSkills(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeSkillsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}

	report, err := s.engine.Analyze(r.Context(), &req)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleRoadmapForJob builds a certification roadmap for a stored job
func (s *Server) handleRoadmapForJob(w http.ResponseWriter, r *http.Request) {
	var req types.RoadmapRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}
	if req.JobID == "" && strings.TrimSpace(req.TargetRole) == "" {
		s.failure(w, r, &ErrValidation{Field: "job_id", Message: "job_id or target_role is required"})
		return
	}

	report, err := s.engine.Roadmap(r.Context(), &req)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleSearchJobs lists stored jobs whose title contains the title query parameter
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		s.failure(w, r, &ErrValidation{Field: "title", Message: "missing title parameter"})
		return
	}

	jobs, err := s.engine.SearchJobs(r.Context(), title)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []types.JobSummary{}
	}
	s.jsonResponse(w, http.StatusOK, JobsResponse{Jobs: jobs})
}

