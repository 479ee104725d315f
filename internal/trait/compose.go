package trait

import (
	"fmt"
	"strings"
)

// Template is the result of composing an ordered trait sequence: the merged
// configuration a job builder turns into a concrete job. Templates are
// transient values, created per matrix cell and discarded after building.
type Template struct {
	// Suffix is the ordered concatenation of the composed traits' suffixes,
	// e.g. "-linux-amd64-musl". Order is semantically significant: generated
	// job and artifact names embed it verbatim.
	Suffix string

	// Capabilities is the deduplicated union, first occurrence wins the slot.
	Capabilities []string

	Env       map[string]string
	Downloads map[string]Download
	Packages  map[string]string

	// Platform is the single OS selected by the sequence, or nil if no OS
	// trait was composed.
	Platform *Platform

	// composed records the trait names in composition order, for diagnostics.
	composed []string
}

// CompositionError reports a conflict between two composed traits on a
// singular field. Keyed-map collisions are legal (later wins); singular
// fields such as the OS tag are not.
type CompositionError struct {
	Field   string   // template field the conflict occurred on
	Traits  []string // names of the traits that collided
	Message string
}

func (e *CompositionError) Error() string {
	if len(e.Traits) > 0 {
		return fmt.Sprintf("composition conflict on %s: %s (traits: %s)",
			e.Field, e.Message, strings.Join(e.Traits, ", "))
	}
	return fmt.Sprintf("composition conflict on %s: %s", e.Field, e.Message)
}

// Compose merges an ordered trait sequence into one Template.
//
// Merge rules, per field kind:
//   - capabilities: set union, first-occurrence order retained
//   - suffix: ordered concatenation
//   - env/downloads/packages: per-key, later trait overrides earlier
//   - platform: at most one trait may carry it; a second OS trait is a
//     CompositionError even if it names the same OS
//
// Compose is pure: input traits are never mutated and the returned template
// shares no maps with them.
func Compose(traits ...Trait) (*Template, error) {
	tmpl := &Template{
		Env:       make(map[string]string),
		Downloads: make(map[string]Download),
		Packages:  make(map[string]string),
	}

	seen := make(map[string]bool)
	platformTrait := ""

	for _, t := range traits {
		tmpl.composed = append(tmpl.composed, t.Name)
		tmpl.Suffix += t.Suffix

		for _, c := range t.Capabilities {
			if seen[c] {
				continue
			}
			seen[c] = true
			tmpl.Capabilities = append(tmpl.Capabilities, c)
		}

		for k, v := range t.Env {
			tmpl.Env[k] = v
		}
		for k, v := range t.Downloads {
			tmpl.Downloads[k] = v
		}
		for k, v := range t.Packages {
			tmpl.Packages[k] = v
		}

		if t.Platform != nil {
			if tmpl.Platform != nil {
				return nil, &CompositionError{
					Field:  "os",
					Traits: []string{platformTrait, t.Name},
					Message: fmt.Sprintf("OS already pinned to %q, cannot also compose %q",
						tmpl.Platform.OS, t.Platform.OS),
				}
			}
			tmpl.Platform = t.Platform
			platformTrait = t.Name
		}
	}

	return tmpl, nil
}

// Arch returns the architecture capability carried by the template, if any.
func (t *Template) Arch() (string, bool) {
	for _, arch := range archCapabilities {
		if t.HasCapability(arch) {
			return arch, true
		}
	}
	return "", false
}

// HasCapability reports whether the template carries the named capability.
func (t *Template) HasCapability(name string) bool {
	for _, c := range t.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}

// Composed returns the trait names that produced this template, in order.
func (t *Template) Composed() []string {
	out := make([]string, len(t.composed))
	copy(out, t.composed)
	return out
}
