package vocabulary

import "fmt"

// ConfigurationError reports a missing or malformed reference table. It is fatal at startup.
type ConfigurationError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Source, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
