package job

import (
	"github.com/halcyard/gantry/internal/trait"
)

// PublishArtifact declares a named output a job uploads after it finishes:
// the files under Dir matching Patterns, addressable pipeline-wide by Name.
type PublishArtifact struct {
	Name     string   `json:"name" yaml:"name"`
	Dir      string   `json:"dir" yaml:"dir"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// RequireArtifact declares a named input a job needs before it starts. The
// runner places the artifact under Dir; AutoExtract unpacks archives there.
type RequireArtifact struct {
	Name        string `json:"name" yaml:"name"`
	Dir         string `json:"dir" yaml:"dir"`
	AutoExtract bool   `json:"autoExtract,omitempty" yaml:"autoExtract,omitempty"`
}

// Job is a fully resolved runnable CI unit. Field tags define the external
// descriptor consumed by the CI engine; Kind is generator-internal.
type Job struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"-" yaml:"-"`

	// TimeLimit is "H:MM:SS". Exceeding it is fatal to this job only; the
	// engine marks transitive dependents skipped.
	TimeLimit string `json:"timelimit" yaml:"timelimit"`

	// DiskSpace is the required scratch space, e.g. "10G".
	DiskSpace string `json:"diskspace_required" yaml:"diskspace_required"`

	Logs    []string `json:"logs" yaml:"logs"`
	Targets []string `json:"targets" yaml:"targets"`

	// Run is the ordered command sequence. Never reordered after assembly.
	Run []Step `json:"run" yaml:"run"`

	Publishes []PublishArtifact `json:"publishArtifacts,omitempty" yaml:"publishArtifacts,omitempty"`
	Requires  []RequireArtifact `json:"requireArtifacts,omitempty" yaml:"requireArtifacts,omitempty"`

	Env          map[string]string         `json:"environment" yaml:"environment"`
	Downloads    map[string]trait.Download `json:"downloads" yaml:"downloads"`
	Packages     map[string]string         `json:"packages" yaml:"packages"`
	Capabilities []string                  `json:"capabilities" yaml:"capabilities"`
}
