package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/config"
	"github.com/jonathan/cert-roadmap/internal/db"
	"github.com/jonathan/cert-roadmap/internal/document"
	"github.com/jonathan/cert-roadmap/internal/engine"
	"github.com/jonathan/cert-roadmap/internal/jobsource"
	"github.com/jonathan/cert-roadmap/internal/llm"
	"github.com/jonathan/cert-roadmap/internal/matching"
	"github.com/jonathan/cert-roadmap/internal/observability"
	"github.com/jonathan/cert-roadmap/internal/review"
	"github.com/jonathan/cert-roadmap/internal/storage"
	"github.com/jonathan/cert-roadmap/internal/taxonomy"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
)

// app holds the engine and the collaborators it was built from.
type app struct {
	cfg     config.Config
	engine  *engine.Engine
	db      *db.DB
	resumes storage.ObjectStore
	closers []func()
}

// loadConfig resolves the --config file, environment and defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Verbose = cfg.Verbose || verbose
	return cfg, nil
}

// newApp builds every configured collaborator. Optional ones (database, object store,
// reviewer, job search) are left nil when their settings are absent.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = database
		a.closers = append(a.closers, database.Close)
	}

	vocab, err := a.loadVocabulary(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var tax *taxonomy.Taxonomy
	if cfg.TaxonomyPath != "" {
		if tax, err = taxonomy.LoadYAML(cfg.TaxonomyPath); err != nil {
			a.Close()
			return nil, err
		}
	}

	annotator, err := annotate.New(cfg.Annotator)
	if err != nil {
		a.Close()
		return nil, err
	}
	strategy, err := matching.ParseStrategy(cfg.Strategy)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := engine.Options{
		Annotator:   annotator,
		Strategy:    strategy,
		Concurrency: cfg.Concurrency,
		Cache:       cfg.Cache,
		JobSource:   a.jobSource(),
	}
	if a.db != nil {
		opts.JobStore = a.db
	}

	if cfg.ResumeBucket != "" {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:       cfg.ResumeBucket,
			Region:       cfg.S3Region,
			Endpoint:     cfg.S3Endpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create résumé store: %w", err)
		}
		a.resumes = store
		opts.Resumes = store
	}

	if cfg.APIKey != "" {
		llmConfig := llm.DefaultConfig()
		if cfg.Model != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
		}
		client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		opts.Reviewer = review.New(client)
	}

	eng, err := engine.New(vocab, tax, opts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.engine = eng

	skills, certs := vocab.Size()
	log.Printf("[certmatch] loaded %d skills and %d certifications (annotator=%s strategy=%s)",
		skills, certs, cfg.Annotator, strategy)
	return a, nil
}

func (a *app) loadVocabulary(ctx context.Context) (*vocabulary.Vocabulary, error) {
	if !a.cfg.CatalogFromDB {
		return vocabulary.Load(vocabulary.Sources{
			SkillsPath:   a.cfg.SkillsPath,
			CatalogPath:  a.cfg.CatalogPath,
			DenyListPath: a.cfg.DenyListPath,
		})
	}

	skills, err := vocabulary.LoadSkills(a.cfg.SkillsPath)
	if err != nil {
		return nil, err
	}
	var deny []string
	if a.cfg.DenyListPath != "" {
		if deny, err = vocabulary.LoadDenyList(a.cfg.DenyListPath); err != nil {
			return nil, err
		}
	}
	catalog, err := a.db.ListCertifications(ctx)
	if err != nil {
		return nil, &vocabulary.ConfigurationError{Source: "catalog", Message: "failed to read certifications table", Cause: err}
	}
	return vocabulary.New(skills, deny, catalog)
}

func (a *app) jobSource() jobsource.Source {
	switch a.cfg.JobSource {
	case config.JobSourceDatabase:
		if a.db == nil {
			return nil
		}
		return jobsource.NewDatabase(a.db, 0)
	default:
		if a.cfg.RapidAPIKey == "" {
			log.Printf("[certmatch] RAPIDAPI_KEY not set; job search is disabled")
			return nil
		}
		return jobsource.NewJSearch(jobsource.JSearchConfig{
			BaseURL:           a.cfg.JSearchURL,
			APIKey:            a.cfg.RapidAPIKey,
			Host:              a.cfg.RapidAPIHost,
			RequestsPerSecond: a.cfg.JSearchRatePerSec,
		})
	}
}

// Close releases collaborators in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// printer returns a verbose-mode printer, or nil when verbose output is off.
func (a *app) printer() *observability.Printer {
	if !a.cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(os.Stderr)
}

// readResume returns the text of a local résumé file, or "" when path is empty.
func readResume(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	text, err := document.ExtractFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read résumé: %w", err)
	}
	return text, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
