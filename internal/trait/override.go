package trait

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"
)

// Override is a compiled overlay for a single trait: extra capabilities and
// per-key replacements for env, downloads and packages. The platform set is
// closed, so overlays cannot introduce an OS tag.
type Override struct {
	Trait        string
	Capabilities []string
	Env          map[string]string
	Downloads    map[string]Download
	Packages     map[string]string
}

// OverrideSet is a full compiled overlay document.
type OverrideSet struct {
	Overrides []Override

	// Versions maps download keys to replacement versions, applied across
	// every trait after per-trait overrides.
	Versions map[string]string
}

// OverrideError reports a problem compiling or applying an overlay.
type OverrideError struct {
	Field   string
	Message string
	Pos     token.Pos // CUE source position if available
}

func (e *OverrideError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// overrideDoc is the CUE-facing shape of a per-trait overlay entry.
type overrideDoc struct {
	Capabilities []string            `json:"capabilities"`
	Env          map[string]string   `json:"env"`
	Downloads    map[string]Download `json:"downloads"`
	Packages     map[string]string   `json:"packages"`
}

// CompileOverrides compiles an overlay document from a CUE value.
//
// The expected shape is:
//
//	trait: linux: {
//		packages: gcc: "==12.2.0"
//	}
//	versions: labsjdk: "ce-22+21-jvmci-b01"
//
// Unknown trait names are accepted here and rejected by Registry.Apply, so a
// single overlay can serve registries with different trait sets.
func CompileOverrides(v cue.Value) (*OverrideSet, error) {
	if err := v.Err(); err != nil {
		return nil, &OverrideError{Field: "overlay", Message: err.Error(), Pos: v.Pos()}
	}

	set := &OverrideSet{Versions: make(map[string]string)}

	traitsVal := v.LookupPath(cue.ParsePath("trait"))
	if traitsVal.Exists() {
		iter, err := traitsVal.Fields()
		if err != nil {
			return nil, &OverrideError{Field: "trait", Message: err.Error(), Pos: traitsVal.Pos()}
		}
		for iter.Next() {
			var doc overrideDoc
			if err := iter.Value().Decode(&doc); err != nil {
				return nil, &OverrideError{
					Field:   "trait." + iter.Label(),
					Message: err.Error(),
					Pos:     iter.Value().Pos(),
				}
			}
			set.Overrides = append(set.Overrides, Override{
				Trait:        iter.Label(),
				Capabilities: doc.Capabilities,
				Env:          doc.Env,
				Downloads:    doc.Downloads,
				Packages:     doc.Packages,
			})
		}
	}

	versionsVal := v.LookupPath(cue.ParsePath("versions"))
	if versionsVal.Exists() {
		if err := versionsVal.Decode(&set.Versions); err != nil {
			return nil, &OverrideError{Field: "versions", Message: err.Error(), Pos: versionsVal.Pos()}
		}
	}

	return set, nil
}

// Apply returns a derived registry with the overlay applied. The receiver is
// untouched; traits remain immutable.
func (r *Registry) Apply(set *OverrideSet) (*Registry, error) {
	derived := &Registry{traits: make(map[string]Trait, len(r.traits))}
	for name, t := range r.traits {
		derived.traits[name] = cloneTrait(t)
	}

	for _, o := range set.Overrides {
		t, ok := derived.traits[o.Trait]
		if !ok {
			return nil, &OverrideError{
				Field:   "trait." + o.Trait,
				Message: fmt.Sprintf("unknown trait %q", o.Trait),
			}
		}

		for _, c := range o.Capabilities {
			found := false
			for _, existing := range t.Capabilities {
				if existing == c {
					found = true
					break
				}
			}
			if !found {
				t.Capabilities = append(t.Capabilities, c)
			}
		}
		for k, v := range o.Env {
			t.Env[k] = v
		}
		for k, v := range o.Downloads {
			t.Downloads[k] = v
		}
		for k, v := range o.Packages {
			t.Packages[k] = v
		}

		derived.traits[o.Trait] = t
	}

	for key, version := range set.Versions {
		for name, t := range derived.traits {
			if d, ok := t.Downloads[key]; ok {
				d.Version = version
				t.Downloads[key] = d
				derived.traits[name] = t
			}
		}
	}

	return derived, nil
}

// cloneTrait deep-copies the mutable parts of a trait so a derived registry
// never aliases the source registry's maps.
func cloneTrait(t Trait) Trait {
	out := t
	out.Capabilities = append([]string(nil), t.Capabilities...)
	out.Env = make(map[string]string, len(t.Env))
	for k, v := range t.Env {
		out.Env[k] = v
	}
	out.Downloads = make(map[string]Download, len(t.Downloads))
	for k, v := range t.Downloads {
		out.Downloads[k] = v
	}
	out.Packages = make(map[string]string, len(t.Packages))
	for k, v := range t.Packages {
		out.Packages[k] = v
	}
	return out
}
