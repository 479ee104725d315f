package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/halcyard/gantry/internal/job"
)

// MarshalCanonical serializes the pipeline as canonical JSON: object keys
// sorted, strings NFC-normalized, no HTML escaping, no floats, no nulls.
// This is the byte representation the content hash is computed over, and the
// default descriptor encoding. Repeated generation from the same inputs
// yields byte-identical output.
func (p *Pipeline) MarshalCanonical() ([]byte, error) {
	return marshalValue(p.exportMap())
}

// exportMap converts the pipeline to plain JSON-shaped data (strings, ints,
// bools, []any, map[string]any) for the canonical encoder.
func (p *Pipeline) exportMap() map[string]any {
	jobs := make([]any, len(p.Jobs))
	for i, j := range p.Jobs {
		jobs[i] = exportJob(j)
	}
	edges := make([]any, len(p.Edges))
	for i, e := range p.Edges {
		edges[i] = map[string]any{
			"producer": e.Producer,
			"consumer": e.Consumer,
			"artifact": e.Artifact,
		}
	}
	return map[string]any{"jobs": jobs, "edges": edges}
}

func exportJob(j job.Job) map[string]any {
	run := make([]any, len(j.Run))
	for i, step := range j.Run {
		run[i] = step.Export()
	}

	env := make(map[string]any, len(j.Env))
	for k, v := range j.Env {
		env[k] = v
	}
	packages := make(map[string]any, len(j.Packages))
	for k, v := range j.Packages {
		packages[k] = v
	}
	downloads := make(map[string]any, len(j.Downloads))
	for k, d := range j.Downloads {
		downloads[k] = map[string]any{
			"name":             d.Name,
			"version":          d.Version,
			"platformspecific": d.PlatformSpecific,
		}
	}

	capabilities := make([]any, len(j.Capabilities))
	for i, c := range j.Capabilities {
		capabilities[i] = c
	}
	logs := make([]any, len(j.Logs))
	for i, l := range j.Logs {
		logs[i] = l
	}
	targets := make([]any, len(j.Targets))
	for i, t := range j.Targets {
		targets[i] = t
	}

	out := map[string]any{
		"name":               j.Name,
		"timelimit":          j.TimeLimit,
		"diskspace_required": j.DiskSpace,
		"logs":               logs,
		"targets":            targets,
		"run":                run,
		"environment":        env,
		"downloads":          downloads,
		"packages":           packages,
		"capabilities":       capabilities,
	}

	if len(j.Publishes) > 0 {
		pubs := make([]any, len(j.Publishes))
		for i, pub := range j.Publishes {
			patterns := make([]any, len(pub.Patterns))
			for k, pat := range pub.Patterns {
				patterns[k] = pat
			}
			pubs[i] = map[string]any{
				"name":     pub.Name,
				"dir":      pub.Dir,
				"patterns": patterns,
			}
		}
		out["publishArtifacts"] = pubs
	}
	if len(j.Requires) > 0 {
		reqs := make([]any, len(j.Requires))
		for i, req := range j.Requires {
			m := map[string]any{
				"name": req.Name,
				"dir":  req.Dir,
			}
			if req.AutoExtract {
				m["autoExtract"] = true
			}
			reqs[i] = m
		}
		out["requireArtifacts"] = reqs
	}

	return out
}

// marshalValue encodes plain JSON-shaped data canonically. Floats and nulls
// are forbidden: nothing in a pipeline descriptor is fractional or optional
// enough to need them, and excluding them keeps hashing unambiguous.
func marshalValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical output")
	case string:
		return marshalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case []any:
		return marshalArray(val)
	case map[string]any:
		return marshalObject(val)
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in canonical output: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical output: %T", v)
	}
}

func marshalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		enc, err := marshalValue(elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		buf.Write(enc)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalObject emits keys in sorted order. Descriptor keys are ASCII, so
// bytewise sort and UTF-16 code-unit sort agree.
func marshalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encKey, err := marshalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(encKey)
		buf.WriteByte(':')
		encVal, err := marshalValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		buf.Write(encVal)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString NFC-normalizes at the serialization boundary and encodes
// without HTML escaping (<, > and & stay literal).
func marshalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder appends a trailing newline; strip it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}
