package pipeline

import (
	"fmt"
	"strings"

	"github.com/halcyard/gantry/internal/job"
)

// ResolveErrorCode categorizes dependency-resolution failures.
type ResolveErrorCode string

const (
	// ErrCodeDuplicateProducer indicates two jobs publish the same artifact.
	ErrCodeDuplicateProducer ResolveErrorCode = "DUPLICATE_PRODUCER"

	// ErrCodeUnresolvedArtifact indicates a required artifact has no producer.
	ErrCodeUnresolvedArtifact ResolveErrorCode = "UNRESOLVED_ARTIFACT"

	// ErrCodeCyclicDependency indicates the artifact graph contains a cycle.
	ErrCodeCyclicDependency ResolveErrorCode = "CYCLIC_DEPENDENCY"
)

// ResolveError reports a dependency-resolution failure. All resolution
// failures are fatal at generation time.
type ResolveError struct {
	Code     ResolveErrorCode
	Artifact string   // artifact involved, if any
	Jobs     []string // jobs involved (producers, consumer, or cycle path)
	Message  string
}

func (e *ResolveError) Error() string {
	if len(e.Jobs) > 0 {
		return fmt.Sprintf("%s: %s (jobs: %s)", e.Code, e.Message, strings.Join(e.Jobs, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Resolve validates artifact declarations across the job list and builds the
// dependency graph.
//
// Steps: map each published artifact name to its producer, failing on a
// duplicate; resolve each required artifact to its producer, failing on a
// miss; derive producer→consumer edges; run a cycle check over the edge set.
// Linear kind-by-kind generation cannot introduce cycles; a hand-assembled
// job list can.
//
// Jobs keep their input order in the returned pipeline.
func Resolve(jobs []job.Job) (*Pipeline, error) {
	producers := make(map[string]string, len(jobs))
	for _, j := range jobs {
		for _, pub := range j.Publishes {
			if prev, ok := producers[pub.Name]; ok {
				return nil, &ResolveError{
					Code:     ErrCodeDuplicateProducer,
					Artifact: pub.Name,
					Jobs:     []string{prev, j.Name},
					Message:  fmt.Sprintf("artifact %q published by more than one job", pub.Name),
				}
			}
			producers[pub.Name] = j.Name
		}
	}

	var edges []Edge
	for _, j := range jobs {
		for _, req := range j.Requires {
			producer, ok := producers[req.Name]
			if !ok {
				return nil, &ResolveError{
					Code:     ErrCodeUnresolvedArtifact,
					Artifact: req.Name,
					Jobs:     []string{j.Name},
					Message:  fmt.Sprintf("artifact %q required by %q has no producer", req.Name, j.Name),
				}
			}
			edges = append(edges, Edge{Producer: producer, Consumer: j.Name, Artifact: req.Name})
		}
	}

	if cycle := findCycle(jobs, edges); cycle != nil {
		return nil, &ResolveError{
			Code:    ErrCodeCyclicDependency,
			Jobs:    cycle,
			Message: fmt.Sprintf("dependency cycle: %s", strings.Join(cycle, " -> ")),
		}
	}

	return &Pipeline{Jobs: jobs, Edges: edges}, nil
}

// findCycle runs Tarjan's strongly-connected-components algorithm over the
// job dependency graph and returns a cycle path if one exists, nil otherwise.
// A job requiring its own artifact yields a producer == consumer edge and is
// reported as a cycle of length two.
func findCycle(jobs []job.Job, edges []Edge) []string {
	graph := make(map[string][]string, len(jobs))
	for _, j := range jobs {
		graph[j.Name] = nil
	}
	for _, e := range edges {
		graph[e.Producer] = append(graph[e.Producer], e.Consumer)
	}

	// Deterministic visit order: jobs slice order, not map order.
	order := make([]string, 0, len(jobs))
	for _, j := range jobs {
		order = append(order, j.Name)
	}

	var (
		index   int
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		cycle   []string
	)

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			if len(scc) > 1 && cycle == nil {
				cycle = reconstructCycle(scc, graph)
			}
			if len(scc) == 1 && cycle == nil && hasSelfEdge(scc[0], graph) {
				cycle = []string{scc[0], scc[0]}
			}
		}
	}

	for _, v := range order {
		if _, visited := indices[v]; !visited {
			strongConnect(v)
		}
	}

	return cycle
}

func hasSelfEdge(v string, graph map[string][]string) bool {
	for _, w := range graph[v] {
		if w == v {
			return true
		}
	}
	return false
}

// reconstructCycle walks edges within the SCC from its first member until it
// returns there, producing a readable cycle path for the error message.
func reconstructCycle(scc []string, graph map[string][]string) []string {
	members := make(map[string]bool, len(scc))
	for _, v := range scc {
		members[v] = true
	}

	start := scc[len(scc)-1] // first-visited member sits at the bottom of the popped SCC
	path := []string{start}
	visited := map[string]bool{start: true}
	current := start

	for {
		var next string
		for _, w := range graph[current] {
			if members[w] && (!visited[w] || w == start) {
				next = w
				break
			}
		}
		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		visited[next] = true
		current = next
	}

	return path
}
