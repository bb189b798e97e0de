package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// JSearch defaults.
const (
	DefaultJSearchURL  = "https://jsearch.p.rapidapi.com"
	DefaultJSearchHost = "jsearch.p.rapidapi.com"
	DefaultTimeout     = 30 * time.Second

	maxResponseBytes = 4 << 20
)

// JSearchConfig configures the JSearch client.
type JSearchConfig struct {
	BaseURL string
	APIKey  string
	Host    string
	Timeout time.Duration
	// RequestsPerSecond caps outbound calls. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// JSearch fetches job postings from the JSearch API on RapidAPI.
type JSearch struct {
	baseURL string
	apiKey  string
	host    string
	client  *http.Client
	limiter *rate.Limiter
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	ID          string `json:"job_id"`
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	Description string `json:"job_description"`
}

// NewJSearch creates a client. Empty fields take the package defaults.
func NewJSearch(cfg JSearchConfig) *JSearch {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultJSearchURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultJSearchHost
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	j := &JSearch{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		host:    cfg.Host,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		j.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return j
}

// Descriptions queries "<role> in <location>" for one page of results.
func (j *JSearch) Descriptions(ctx context.Context, role, location string) ([]string, error) {
	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}

	if j.limiter != nil {
		if err := j.limiter.Wait(ctx); err != nil {
			return nil, &Error{Source: "jsearch", Message: "rate limiter wait aborted", Cause: err}
		}
	}

	query := url.Values{}
	query.Set("query", fmt.Sprintf("%s in %s", role, location))
	query.Set("num_pages", "1")
	query.Set("page", "1")
	endpoint := j.baseURL + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Source: "jsearch", Message: "failed to create request", Cause: err}
	}
	req.Header.Set("X-RapidAPI-Key", j.apiKey)
	req.Header.Set("X-RapidAPI-Host", j.host)

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, &Error{Source: "jsearch", Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &Error{Source: "jsearch", Message: "failed to read response body", Cause: err}
	}
	if len(body) > maxResponseBytes {
		return nil, &Error{Source: "jsearch", Message: "response body too large"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: "jsearch", Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var parsed jsearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Source: "jsearch", Message: "failed to decode response", Cause: err}
	}
	if parsed.Data == nil {
		log.Printf("[jsearch] no job data in response for %q", role)
		return []string{}, nil
	}

	descriptions := make([]string, 0, len(parsed.Data))
	for _, job := range parsed.Data {
		if text := PlainText(job.Description); text != "" {
			descriptions = append(descriptions, text)
		}
	}
	log.Printf("[jsearch] found %d job descriptions for %q", len(descriptions), role)
	return descriptions, nil
}
