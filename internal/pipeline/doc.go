// Package pipeline assembles built jobs into a validated pipeline: it checks
// the single-producer-per-artifact invariant, resolves every required
// artifact to its producer, derives the dependency edge set, and runs a
// cycle check before anything is emitted.
//
// The generator fails closed: any resolution error aborts the whole
// generation rather than emitting an ambiguous or unschedulable pipeline.
//
// Serialization is canonical: object keys sorted, strings NFC-normalized, no
// HTML escaping, no floats or nulls. Two generations from the same registry
// and matrix are byte-identical, and the content hash is computed over this
// canonical form.
package pipeline
