// Package trait defines the immutable configuration fragments that CI jobs
// are composed from, and the composition engine that merges an ordered
// sequence of them into a single job template.
//
// A trait bundles everything one dimension of the build matrix contributes
// to a job: capability tags, a name suffix, environment variables, dependency
// downloads, system package constraints, and (for OS traits) the platform
// translation data used to render paths and executable names.
//
// Composition is a pure merge with deterministic per-field rules:
//
//   - capabilities: set union, first-occurrence order, duplicates collapsed
//   - name suffix: ordered concatenation (order is load-bearing for job names)
//   - env, downloads, packages: per-key, later trait overrides earlier
//   - platform: exactly one trait in the sequence may carry it
//
// Traits are defined once at process start and never mutated. A registry
// overlay (see override.go) produces a new derived registry rather than
// editing traits in place.
package trait
