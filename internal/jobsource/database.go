package jobsource

import (
	"context"
)

// DefaultDatabaseLimit caps how many stored descriptions one query returns.
const DefaultDatabaseLimit = 20

// DescriptionStore looks up stored job descriptions by title.
type DescriptionStore interface {
	DescriptionsByTitle(ctx context.Context, title string, limit int) ([]string, error)
}

// Database serves descriptions of stored jobs whose title contains the role.
// Location is ignored.
type Database struct {
	store DescriptionStore
	limit int
}

// NewDatabase wraps store. A limit below 1 uses DefaultDatabaseLimit.
func NewDatabase(store DescriptionStore, limit int) *Database {
	if limit < 1 {
		limit = DefaultDatabaseLimit
	}
	return &Database{store: store, limit: limit}
}

// Descriptions returns up to the configured number of stored descriptions.
func (d *Database) Descriptions(ctx context.Context, role, _ string) ([]string, error) {
	descs, err := d.store.DescriptionsByTitle(ctx, role, d.limit)
	if err != nil {
		return nil, &Error{Source: "database", Message: "failed to query descriptions", Cause: err}
	}
	out := make([]string, 0, len(descs))
	for _, desc := range descs {
		if text := PlainText(desc); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}
