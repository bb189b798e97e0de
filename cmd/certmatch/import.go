package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/cert-roadmap/internal/db"
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load jobs and certifications into the database",
	Long: `Create the database tables if needed, then load a jobs CSV (--jobs) and/or a
certification catalog (--catalog). The CSV needs a header row with at least
"title" and "description" columns; "id", "company" and "location" are optional.`,
	RunE: runImport,
}

var (
	importJobsPath    string
	importCatalogPath string
)

func init() {
	importCmd.Flags().StringVar(&importJobsPath, "jobs", "", "Path to a jobs CSV file")
	importCmd.Flags().StringVar(&importCatalogPath, "catalog", "", "Path to a certification catalog JSON file")
	rootCmd.AddCommand(importCmd)
}

// importStore is the subset of the database the import writes to.
type importStore interface {
	EnsureSchema(ctx context.Context) error
	CreateJob(ctx context.Context, job *types.Job) (*types.Job, error)
	UpsertCertification(ctx context.Context, c types.Certification) error
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importJobsPath == "" && importCatalogPath == "" {
		return fmt.Errorf("at least one of --jobs or --catalog is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for import")
	}

	// Parse everything before touching the database
	var jobs []types.Job
	if importJobsPath != "" {
		f, err := os.Open(importJobsPath)
		if err != nil {
			return fmt.Errorf("failed to open jobs file: %w", err)
		}
		jobs, err = readJobsCSV(f)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	var catalog []types.Certification
	if importCatalogPath != "" {
		if catalog, err = vocabulary.LoadCatalog(importCatalogPath); err != nil {
			return err
		}
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	result, err := importAll(cmd.Context(), database, jobs, catalog)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

type importResult struct {
	Jobs           int `json:"jobs"`
	Certifications int `json:"certifications"`
}

func importAll(ctx context.Context, store importStore, jobs []types.Job, catalog []types.Certification) (*importResult, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	result := &importResult{}
	for i := range jobs {
		if _, err := store.CreateJob(ctx, &jobs[i]); err != nil {
			return result, fmt.Errorf("job %d (%s): %w", i+1, jobs[i].Title, err)
		}
		result.Jobs++
	}
	for _, c := range catalog {
		if err := store.UpsertCertification(ctx, c); err != nil {
			return result, err
		}
		result.Certifications++
	}

	log.Printf("[import] stored %d jobs and %d certifications", result.Jobs, result.Certifications)
	return result, nil
}

// readJobsCSV reads job rows keyed by a header line. Rows without a title are skipped.
// IDs that are not UUIDs are replaced on insert.
func readJobsCSV(r io.Reader) ([]types.Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("jobs CSV is empty")
		}
		return nil, fmt.Errorf("failed to read jobs CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"title", "description"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("jobs CSV is missing the %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var jobs []types.Job
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read jobs CSV line %d: %w", line, err)
		}
		job := types.Job{
			Title:       field(record, "title"),
			Company:     field(record, "company"),
			Location:    field(record, "location"),
			Description: field(record, "description"),
		}
		if job.Title == "" {
			continue
		}
		if id, err := uuid.Parse(field(record, "id")); err == nil {
			job.ID = id
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
