package trait

import (
	"fmt"
	"sort"
)

// Registry is the static, process-wide set of named traits. Traits are
// immutable by convention; the registry never hands out mutable internals.
type Registry struct {
	traits map[string]Trait
}

// Lookup returns the named trait.
func (r *Registry) Lookup(name string) (Trait, bool) {
	t, ok := r.traits[name]
	return t, ok
}

// Names returns the registered trait names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.traits))
	for name := range r.traits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Base names the trait every matrix cell composes first.
const Base = "deps"

// Default returns the built-in trait registry for the project.
//
// Versions and package constraints pass through opaquely to the download and
// package mirror infrastructure; the CUE overlay mechanism (override.go) is
// the supported way to bump them without a code change.
func Default() *Registry {
	return &Registry{traits: map[string]Trait{
		Base: {
			Name: Base,
			Env: map[string]string{
				"MX_PYTHON":     "python3",
				"ZLIB_BUNDLING": "system",
			},
			Downloads: map[string]Download{
				"labsjdk": {Name: "labsjdk", Version: "ce-21.0.2+13-jvmci-23.1-b33", PlatformSpecific: true},
				"jdt":     {Name: "ecj", Version: "3.32.0", PlatformSpecific: false},
			},
			Packages: map[string]string{
				"pip:logilab-common": "==1.4.4",
				"pip:ninja_syntax":   "==1.7.2",
			},
		},

		"linux": {
			Name:         "linux",
			Suffix:       "-linux",
			Capabilities: []string{"linux"},
			Packages: map[string]string{
				"binutils": "==2.34",
				"gcc":      "==10.2.0",
				"git":      ">=1.8.3",
				"make":     ">=3.83",
			},
			Platform: &LinuxPlatform,
		},

		"darwin": {
			Name:         "darwin",
			Suffix:       "-darwin",
			Capabilities: []string{"darwin"},
			Env: map[string]string{
				"MACOSX_DEPLOYMENT_TARGET": "11.0",
			},
			Platform: &DarwinPlatform,
		},

		"windows": {
			Name:         "windows",
			Suffix:       "-windows",
			Capabilities: []string{"windows"},
			Env: map[string]string{
				// The system zlib is unavailable on the Windows runners.
				"ZLIB_BUNDLING": "bundled",
			},
			Downloads: map[string]Download{
				"devkit": {Name: "devkit", Version: "VS2022-17.6.5+1", PlatformSpecific: true},
			},
			Platform: &WindowsPlatform,
		},

		"amd64": {
			Name:         "amd64",
			Suffix:       "-amd64",
			Capabilities: []string{"amd64"},
		},

		"aarch64": {
			Name:         "aarch64",
			Suffix:       "-aarch64",
			Capabilities: []string{"aarch64"},
		},

		"musl": {
			Name:         "musl",
			Suffix:       "-musl",
			Capabilities: []string{"musl"},
			Env: map[string]string{
				"MUSL_TOOLCHAIN": "/opt/musl-toolchain",
			},
			Packages: map[string]string{
				"musl-toolchain": "==1.2.2",
			},
		},
	}}
}

// Compose looks up the named traits and composes them in the given order.
func (r *Registry) Compose(names ...string) (*Template, error) {
	traits := make([]Trait, 0, len(names))
	for _, name := range names {
		t, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown trait %q", name)
		}
		traits = append(traits, t)
	}
	return Compose(traits...)
}
