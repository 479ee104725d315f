// Package job turns composed trait templates into concrete CI jobs: a named
// command sequence with resolved environment, downloads, artifact roles and
// resource limits, ready for an external CI engine to schedule.
//
// Command sequences are data, not behavior. A step is an ordered argument
// vector whose elements are either literal strings or nested command
// substitutions; execution semantics (including substitution timing and
// output capture) belong entirely to the CI runner. Step order is a
// correctness invariant: later steps may reference variables exported by
// earlier steps, so builders never reorder what they emit.
package job
