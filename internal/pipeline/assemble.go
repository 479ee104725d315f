package pipeline

import (
	"github.com/halcyard/gantry/internal/job"
	"github.com/halcyard/gantry/internal/matrix"
	"github.com/halcyard/gantry/internal/trait"
)

// Assemble concatenates per-kind job lists in the order given and delegates
// to Resolve. Callers pass lists in the fixed declaration order (job.Order);
// the list order is a display convention only.
func Assemble(kindLists ...[]job.Job) (*Pipeline, error) {
	var total int
	for _, list := range kindLists {
		total += len(list)
	}
	jobs := make([]job.Job, 0, total)
	for _, list := range kindLists {
		jobs = append(jobs, list...)
	}
	return Resolve(jobs)
}

// Generate runs the full generation against a registry with the default
// matrix: expand each kind's cells, build every job, assemble, resolve.
// The transformation is pure, so repeated calls with the same registry
// produce identical pipelines.
func Generate(reg *trait.Registry) (*Pipeline, error) {
	return GenerateMatrix(reg, matrix.Default())
}

// GenerateMatrix is Generate with an explicit matrix, for callers that trim
// or extend the default combination lists.
func GenerateMatrix(reg *trait.Registry, kinds []matrix.KindCells) (*Pipeline, error) {
	kindLists := make([][]job.Job, 0, len(kinds))
	for _, kc := range kinds {
		jobs, err := matrix.BuildKind(reg, kc)
		if err != nil {
			return nil, err
		}
		kindLists = append(kindLists, jobs)
	}
	return Assemble(kindLists...)
}
