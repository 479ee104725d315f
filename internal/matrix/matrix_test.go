package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyard/gantry/internal/job"
	"github.com/halcyard/gantry/internal/trait"
)

func TestExpand_EmissionOrderMatchesDeclaration(t *testing.T) {
	cells := []Cell{
		{OS: "windows", Arch: "amd64"},
		{OS: "linux", Arch: "aarch64"},
		{OS: "linux", Arch: "amd64"},
	}

	templates, err := Expand(trait.Default(), cells)
	require.NoError(t, err)
	require.Len(t, templates, 3)

	assert.Equal(t, "-windows-amd64", templates[0].Suffix)
	assert.Equal(t, "-linux-aarch64", templates[1].Suffix)
	assert.Equal(t, "-linux-amd64", templates[2].Suffix)
}

func TestExpand_UnknownTrait(t *testing.T) {
	_, err := Expand(trait.Default(), []Cell{{OS: "solaris", Arch: "amd64"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solaris")
}

func TestDefault_CellCounts(t *testing.T) {
	counts := map[job.Kind]int{}
	for _, kc := range Default() {
		counts[kc.Kind] = len(kc.Cells)
	}

	assert.Equal(t, 4, counts[job.KindBuild])
	assert.Equal(t, 3, counts[job.KindCompilerTest])
	assert.Equal(t, 3, counts[job.KindJSTest])
	assert.Equal(t, 3, counts[job.KindLibgraalBuild])
	assert.Equal(t, 3, counts[job.KindLibgraalTest])
	assert.Equal(t, 1, counts[job.KindMuslBuild])
	assert.Equal(t, 1, counts[job.KindRunOnly])
}

func TestDefault_KindOrderMatchesDeclarationOrder(t *testing.T) {
	kinds := Default()
	require.Len(t, kinds, len(job.Order))
	for i, kc := range kinds {
		assert.Equal(t, job.Order[i], kc.Kind)
	}
}

func TestDefault_TestCellsAreBuildCells(t *testing.T) {
	// Every test cell must have a matching build cell, or its labsjdk
	// requirement could never resolve.
	buildCells := map[string]bool{}
	var testKinds []KindCells
	for _, kc := range Default() {
		switch kc.Kind {
		case job.KindBuild:
			for _, c := range kc.Cells {
				buildCells[c.OS+"/"+c.Arch] = true
			}
		case job.KindCompilerTest, job.KindJSTest, job.KindLibgraalBuild:
			testKinds = append(testKinds, kc)
		}
	}

	for _, kc := range testKinds {
		for _, c := range kc.Cells {
			assert.True(t, buildCells[c.OS+"/"+c.Arch],
				"kind %s cell %s/%s has no producing build", kc.Kind, c.OS, c.Arch)
		}
	}
}

func TestBuildKind_JobsInCellOrder(t *testing.T) {
	kc := KindCells{Kind: job.KindBuild, Cells: []Cell{
		{OS: "darwin", Arch: "amd64"},
		{OS: "linux", Arch: "amd64"},
	}}

	jobs, err := BuildKind(trait.Default(), kc)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "build-darwin-amd64", jobs[0].Name)
	assert.Equal(t, "build-linux-amd64", jobs[1].Name)
}
