package types

import "github.com/google/uuid"

// Job is a stored job posting used by the roadmap flow.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
}

// Summary drops the description.
func (j *Job) Summary() JobSummary {
	return JobSummary{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location}
}

// JobSummary is the search-result view of a job.
type JobSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
}
