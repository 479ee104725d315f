package pipeline

import (
	"github.com/halcyard/gantry/internal/job"
)

// Edge is one dependency: Consumer requires Artifact, which Producer
// publishes. The consumer must not start before the producer has completed
// and published.
type Edge struct {
	Producer string `json:"producer" yaml:"producer"`
	Consumer string `json:"consumer" yaml:"consumer"`
	Artifact string `json:"artifact" yaml:"artifact"`
}

// Pipeline is the generator's output: the job sequence in declaration order
// plus the artifact-induced dependency graph. Declaration order is a display
// convention; execution order is governed solely by the edges.
type Pipeline struct {
	Jobs  []job.Job `json:"jobs" yaml:"jobs"`
	Edges []Edge    `json:"edges" yaml:"edges"`
}

// Job returns the named job, or nil if the pipeline has no job by that name.
func (p *Pipeline) Job(name string) *job.Job {
	for i := range p.Jobs {
		if p.Jobs[i].Name == name {
			return &p.Jobs[i]
		}
	}
	return nil
}

// Dependencies returns the edges the named job consumes, in edge order.
func (p *Pipeline) Dependencies(name string) []Edge {
	var deps []Edge
	for _, e := range p.Edges {
		if e.Consumer == name {
			deps = append(deps, e)
		}
	}
	return deps
}
