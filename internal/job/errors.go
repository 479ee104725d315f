package job

import "fmt"

// ConfigurationError reports a kind that cannot derive a required field from
// its template. Detected at generation time; never survives into a pipeline.
type ConfigurationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for kind %q: %s: %s", e.Kind, e.Field, e.Message)
}
