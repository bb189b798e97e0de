package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable matches every failure of the annotator or a job source.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNoJobDescriptions is returned by Analyze when the job source has nothing for the role.
	ErrNoJobDescriptions = errors.New("no job descriptions found for the given role")
	// ErrJobNotFound is returned by Roadmap when neither the job ID nor the role matches a stored job.
	ErrJobNotFound = errors.New("no matching job found for the given job_id or target_role")
	// ErrNotConfigured is returned when an operation needs a collaborator the engine was built without.
	ErrNotConfigured = errors.New("collaborator not configured")
)

// UpstreamError wraps a failure of an external collaborator. It matches
// ErrUpstreamUnavailable with errors.Is.
type UpstreamError struct {
	Op    string
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream unavailable during %s: %v", e.Op, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrUpstreamUnavailable.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// InputError reports an invalid request value.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
