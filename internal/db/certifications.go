package db

import (
	"context"
	"fmt"

	"github.com/jonathan/cert-roadmap/internal/types"
)

// UpsertCertification inserts or replaces a catalog entry keyed by name.
func (db *DB) UpsertCertification(ctx context.Context, c types.Certification) error {
	skills := c.RelevantSkills
	if skills == nil {
		skills = []string{}
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO certifications (name, description, link, relevant_skills)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET description = $2, link = $3, relevant_skills = $4`,
		c.Name, c.Description, c.Link, skills,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert certification %s: %w", c.Name, err)
	}
	return nil
}

// ListCertifications returns the catalog in insertion order.
func (db *DB) ListCertifications(ctx context.Context) ([]types.Certification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, description, link, relevant_skills FROM certifications ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	defer rows.Close()

	var certs []types.Certification
	for rows.Next() {
		var c types.Certification
		if err := rows.Scan(&c.Name, &c.Description, &c.Link, &c.RelevantSkills); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate certifications: %w", err)
	}
	return certs, nil
}
