package trait

// Download describes one dependency the CI runner fetches into the job's
// workspace before any command runs. PlatformSpecific selects a per-OS/arch
// build of the artifact on the mirror; names and versions pass through
// opaquely to the download infrastructure.
type Download struct {
	Name             string `json:"name" yaml:"name"`
	Version          string `json:"version" yaml:"version"`
	PlatformSpecific bool   `json:"platformspecific" yaml:"platformspecific"`
}

// Trait is an immutable named configuration fragment. One trait covers one
// dimension of a job: the base dependency set, an OS, an architecture, or a
// build variant such as the musl static toolchain.
//
// Only OS traits set Platform. Feature and arch traits contribute
// capabilities, suffix fragments, and keyed-map entries.
type Trait struct {
	Name string

	// Suffix is appended to the composed job-name suffix, in composition
	// order. Suffix fragments start with "-".
	Suffix string

	// Capabilities are machine-selection tags; merged as an ordered set.
	Capabilities []string

	// Env, Downloads and Packages merge per-key, later trait wins.
	Env       map[string]string
	Downloads map[string]Download
	Packages  map[string]string

	// Platform is the OS tag plus translation parameters. Nil for traits
	// that do not pin an operating system.
	Platform *Platform
}

// archCapabilities are the capability tags recognized as CPU architectures.
// Templates derive their architecture by scanning for one of these.
var archCapabilities = []string{"amd64", "aarch64"}
