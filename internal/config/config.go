// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/matching"
)

// Job source kinds.
const (
	JobSourceJSearch  = "jsearch"
	JobSourceDatabase = "database"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Vocabulary
	SkillsPath   string `json:"skills_path,omitempty"`    // Known skills list (JSON array or object)
	CatalogPath  string `json:"catalog_path,omitempty"`   // Certification catalog (JSON)
	DenyListPath string `json:"deny_list_path,omitempty"` // Generic-skill deny list override (JSON array)
	TaxonomyPath string `json:"taxonomy_path,omitempty"`  // Domain taxonomy override (YAML)
	// CatalogFromDB reads the certification catalog from the certifications table instead of CatalogPath.
	CatalogFromDB bool `json:"catalog_from_db,omitempty"`

	// Engine
	Annotator   string `json:"annotator,omitempty"`   // "prose" or "lexical"
	Strategy    string `json:"strategy,omitempty"`    // "first-accept" (default) or "accumulate"
	Cache       bool   `json:"cache,omitempty"`       // Cache annotations by input text
	Concurrency int    `json:"concurrency,omitempty"` // Parallel annotations per profile build

	// Job descriptions
	JobSource         string  `json:"job_source,omitempty"` // "jsearch" or "database"
	RapidAPIKey       string  `json:"rapidapi_key,omitempty"`
	RapidAPIHost      string  `json:"rapidapi_host,omitempty"`
	JSearchURL        string  `json:"jsearch_url,omitempty"`
	JSearchRatePerSec float64 `json:"jsearch_rate_per_sec,omitempty"`

	// Storage
	DatabaseURL  string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ResumeBucket string `json:"resume_bucket,omitempty"`
	S3Endpoint   string `json:"s3_endpoint,omitempty"`
	S3Region     string `json:"s3_region,omitempty"`
	S3AccessKey  string `json:"s3_access_key,omitempty"`
	S3SecretKey  string `json:"s3_secret_key,omitempty"`
	S3PathStyle  bool   `json:"s3_path_style,omitempty"`

	// Review
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Overrides the standard-tier model

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		SkillsPath:        "data/skills-list.json",
		CatalogPath:       "data/certificationMap.json",
		Annotator:         annotate.KindProse,
		Strategy:          string(matching.StrategyFirstAccept),
		Concurrency:       4,
		JobSource:         JobSourceJSearch,
		JSearchRatePerSec: 1,
	}
}

// FromEnv reads configuration values from environment variables. Unset variables
// leave the corresponding fields empty.
func FromEnv() Config {
	cfg := Config{
		SkillsPath:   os.Getenv("CERTMATCH_SKILLS"),
		CatalogPath:  os.Getenv("CERTMATCH_CATALOG"),
		DenyListPath: os.Getenv("CERTMATCH_DENYLIST"),
		TaxonomyPath: os.Getenv("CERTMATCH_TAXONOMY"),
		Annotator:    os.Getenv("CERTMATCH_ANNOTATOR"),
		Strategy:     os.Getenv("CERTMATCH_STRATEGY"),
		JobSource:    os.Getenv("CERTMATCH_JOB_SOURCE"),
		RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"),
		RapidAPIHost: os.Getenv("RAPIDAPI_HOST"),
		JSearchURL:   os.Getenv("JSEARCH_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ResumeBucket: os.Getenv("RESUME_BUCKET"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3Region:     os.Getenv("S3_REGION"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		Model:        os.Getenv("GEMINI_MODEL"),
	}
	if v, err := strconv.ParseBool(os.Getenv("CERTMATCH_CACHE")); err == nil {
		cfg.Cache = v
	}
	if v, err := strconv.ParseBool(os.Getenv("CERTMATCH_CATALOG_FROM_DB")); err == nil {
		cfg.CatalogFromDB = v
	}
	if v, err := strconv.ParseBool(os.Getenv("S3_PATH_STYLE")); err == nil {
		cfg.S3PathStyle = v
	}
	if v, err := strconv.Atoi(os.Getenv("CERTMATCH_CONCURRENCY")); err == nil {
		cfg.Concurrency = v
	}
	return cfg
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Annotator {
	case "", annotate.KindProse, annotate.KindLexical:
	default:
		return fmt.Errorf("config error: unknown annotator %q", c.Annotator)
	}

	if _, err := matching.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.JobSource {
	case "", JobSourceJSearch:
	case JobSourceDatabase:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'job_source' database requires 'database_url'")
		}
	default:
		return fmt.Errorf("config error: unknown job source %q", c.JobSource)
	}

	if c.CatalogFromDB && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'catalog_from_db' requires 'database_url'")
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.JSearchRatePerSec < 0 {
		return fmt.Errorf("config error: 'jsearch_rate_per_sec' must be non-negative")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"skills_path":    c.SkillsPath,
		"catalog_path":   c.CatalogPath,
		"deny_list_path": c.DenyListPath,
		"taxonomy_path":  c.TaxonomyPath,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file, environment and built-in values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fields := []struct {
		dst *string
		src string
	}{
		{&result.SkillsPath, defaults.SkillsPath},
		{&result.CatalogPath, defaults.CatalogPath},
		{&result.DenyListPath, defaults.DenyListPath},
		{&result.TaxonomyPath, defaults.TaxonomyPath},
		{&result.Annotator, defaults.Annotator},
		{&result.Strategy, defaults.Strategy},
		{&result.JobSource, defaults.JobSource},
		{&result.RapidAPIKey, defaults.RapidAPIKey},
		{&result.RapidAPIHost, defaults.RapidAPIHost},
		{&result.JSearchURL, defaults.JSearchURL},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.ResumeBucket, defaults.ResumeBucket},
		{&result.S3Endpoint, defaults.S3Endpoint},
		{&result.S3Region, defaults.S3Region},
		{&result.S3AccessKey, defaults.S3AccessKey},
		{&result.S3SecretKey, defaults.S3SecretKey},
		{&result.APIKey, defaults.APIKey},
		{&result.Model, defaults.Model},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}

	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.JSearchRatePerSec == 0 {
		result.JSearchRatePerSec = defaults.JSearchRatePerSec
	}

	// Bool fields: true in either wins
	result.Cache = result.Cache || defaults.Cache
	result.CatalogFromDB = result.CatalogFromDB || defaults.CatalogFromDB
	result.S3PathStyle = result.S3PathStyle || defaults.S3PathStyle
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Resolve layers a config file (optional), the environment and the built-in defaults,
// in that order of precedence, and validates the result.
func Resolve(path string) (Config, error) {
	var file Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = *loaded
	}

	env := FromEnv()
	merged := file.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
