package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyard/gantry/internal/job"
)

func publisher(name, artifact string) job.Job {
	return job.Job{
		Name:      name,
		Publishes: []job.PublishArtifact{{Name: artifact, Dir: "out", Patterns: []string{"*"}}},
	}
}

func consumer(name string, artifacts ...string) job.Job {
	j := job.Job{Name: name}
	for _, a := range artifacts {
		j.Requires = append(j.Requires, job.RequireArtifact{Name: a, Dir: a})
	}
	return j
}

func TestResolve_SingleEdge(t *testing.T) {
	p, err := Resolve([]job.Job{publisher("prod", "A"), consumer("cons", "A")})
	require.NoError(t, err)

	require.Len(t, p.Edges, 1)
	assert.Equal(t, Edge{Producer: "prod", Consumer: "cons", Artifact: "A"}, p.Edges[0])
}

func TestResolve_UnresolvedArtifact(t *testing.T) {
	_, err := Resolve([]job.Job{consumer("cons", "A")})
	require.Error(t, err)

	var resErr *ResolveError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, ErrCodeUnresolvedArtifact, resErr.Code)
	assert.Equal(t, "A", resErr.Artifact)
	assert.Equal(t, []string{"cons"}, resErr.Jobs)
}

func TestResolve_DuplicateProducer(t *testing.T) {
	for _, jobs := range [][]job.Job{
		{publisher("p1", "A"), publisher("p2", "A")},
		{publisher("p2", "A"), publisher("p1", "A")},
	} {
		_, err := Resolve(jobs)
		require.Error(t, err)

		var resErr *ResolveError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, ErrCodeDuplicateProducer, resErr.Code)
		assert.Equal(t, "A", resErr.Artifact)
		assert.Len(t, resErr.Jobs, 2)
	}
}

func TestResolve_CyclicDependency(t *testing.T) {
	a := publisher("a", "A")
	a.Requires = []job.RequireArtifact{{Name: "B", Dir: "b"}}
	b := publisher("b", "B")
	b.Requires = []job.RequireArtifact{{Name: "A", Dir: "a"}}

	_, err := Resolve([]job.Job{a, b})
	require.Error(t, err)

	var resErr *ResolveError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, ErrCodeCyclicDependency, resErr.Code)
	assert.GreaterOrEqual(t, len(resErr.Jobs), 2)
	assert.Equal(t, resErr.Jobs[0], resErr.Jobs[len(resErr.Jobs)-1], "cycle path closes on itself")
}

func TestResolve_SelfCycle(t *testing.T) {
	j := publisher("selfish", "A")
	j.Requires = []job.RequireArtifact{{Name: "A", Dir: "a"}}

	_, err := Resolve([]job.Job{j})
	require.Error(t, err)

	var resErr *ResolveError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, ErrCodeCyclicDependency, resErr.Code)
	assert.Equal(t, []string{"selfish", "selfish"}, resErr.Jobs)
}

func TestResolve_JobOrderPreserved(t *testing.T) {
	jobs := []job.Job{
		publisher("z", "Z"),
		publisher("a", "A"),
		consumer("m", "Z", "A"),
	}

	p, err := Resolve(jobs)
	require.NoError(t, err)

	require.Len(t, p.Jobs, 3)
	assert.Equal(t, "z", p.Jobs[0].Name)
	assert.Equal(t, "a", p.Jobs[1].Name)
	assert.Equal(t, "m", p.Jobs[2].Name)

	// Edges follow consumer order then declaration order of requirements.
	require.Len(t, p.Edges, 2)
	assert.Equal(t, "Z", p.Edges[0].Artifact)
	assert.Equal(t, "A", p.Edges[1].Artifact)
}

func TestPipeline_Dependencies(t *testing.T) {
	p, err := Resolve([]job.Job{
		publisher("p1", "A"),
		publisher("p2", "B"),
		consumer("c", "A", "B"),
	})
	require.NoError(t, err)

	deps := p.Dependencies("c")
	require.Len(t, deps, 2)
	assert.Equal(t, Edge{Producer: "p1", Consumer: "c", Artifact: "A"}, deps[0])
	assert.Equal(t, Edge{Producer: "p2", Consumer: "c", Artifact: "B"}, deps[1])
	assert.Empty(t, p.Dependencies("p1"))
}
