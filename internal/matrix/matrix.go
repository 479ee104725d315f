// Package matrix enumerates the concrete OS/arch/feature combinations each
// job kind runs on and expands them into composed templates.
//
// Combinations are explicit, not a cross-product: each kind declares exactly
// the cells it supports, and expansion emits templates in the declared order
// because downstream naming and display depend on it.
package matrix

import (
	"fmt"

	"github.com/halcyard/gantry/internal/job"
	"github.com/halcyard/gantry/internal/trait"
)

// Cell names one combination: an OS trait, an architecture trait, and any
// feature traits, composed in that order on top of the base trait.
type Cell struct {
	OS       string
	Arch     string
	Features []string
}

// Traits returns the trait names the cell composes, in composition order.
func (c Cell) Traits() []string {
	names := make([]string, 0, 3+len(c.Features))
	names = append(names, trait.Base, c.OS, c.Arch)
	names = append(names, c.Features...)
	return names
}

// KindCells binds a job kind to its enumerated cells.
type KindCells struct {
	Kind  job.Kind
	Cells []Cell
}

// Default returns the project matrix in pipeline declaration order.
//
// Builds cover every platform a release ships on; test kinds run where
// gate machines exist (no darwin test capacity); the musl variant builds on
// its single supported platform.
func Default() []KindCells {
	buildCells := []Cell{
		{OS: "linux", Arch: "amd64"},
		{OS: "linux", Arch: "aarch64"},
		{OS: "darwin", Arch: "amd64"},
		{OS: "windows", Arch: "amd64"},
	}
	testCells := []Cell{
		{OS: "linux", Arch: "amd64"},
		{OS: "linux", Arch: "aarch64"},
		{OS: "windows", Arch: "amd64"},
	}

	return []KindCells{
		{Kind: job.KindBuild, Cells: buildCells},
		{Kind: job.KindCompilerTest, Cells: testCells},
		{Kind: job.KindJSTest, Cells: testCells},
		{Kind: job.KindLibgraalBuild, Cells: testCells},
		{Kind: job.KindLibgraalTest, Cells: testCells},
		{Kind: job.KindMuslBuild, Cells: []Cell{
			{OS: "linux", Arch: "amd64", Features: []string{"musl"}},
		}},
		{Kind: job.KindRunOnly, Cells: []Cell{
			{OS: "linux", Arch: "amd64"},
		}},
	}
}

// Expand composes one template per cell, in exactly the declared order.
func Expand(reg *trait.Registry, cells []Cell) ([]*trait.Template, error) {
	templates := make([]*trait.Template, 0, len(cells))
	for i, cell := range cells {
		tmpl, err := reg.Compose(cell.Traits()...)
		if err != nil {
			return nil, fmt.Errorf("cell %d (%s/%s): %w", i, cell.OS, cell.Arch, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// BuildKind expands a kind's cells and builds one job per template,
// preserving cell order.
func BuildKind(reg *trait.Registry, kc KindCells) ([]job.Job, error) {
	templates, err := Expand(reg, kc.Cells)
	if err != nil {
		return nil, fmt.Errorf("kind %s: %w", kc.Kind, err)
	}
	jobs := make([]job.Job, 0, len(templates))
	for _, tmpl := range templates {
		j, err := job.Build(tmpl, kc.Kind)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
