package job

// Kind is a fixed category of work. The kind selects a job's command
// template, artifact roles and resource limits; the trait template supplies
// everything platform-shaped.
type Kind string

const (
	KindBuild         Kind = "build"
	KindMuslBuild     Kind = "musl-build"
	KindCompilerTest  Kind = "compiler-test"
	KindJSTest        Kind = "js-test"
	KindLibgraalBuild Kind = "libgraal-build"
	KindLibgraalTest  Kind = "libgraal-test"
	KindRunOnly       Kind = "run-only"
)

// Order is the fixed declaration order in which per-kind job lists are
// concatenated into a pipeline. This is a display convention; execution
// order is governed solely by the artifact dependency graph.
var Order = []Kind{
	KindBuild,
	KindCompilerTest,
	KindJSTest,
	KindLibgraalBuild,
	KindLibgraalTest,
	KindMuslBuild,
	KindRunOnly,
}

// kindLabels prefix the composed template suffix to form job names. The musl
// build reuses the plain build label; the musl trait's suffix keeps the
// resulting names distinct.
var kindLabels = map[Kind]string{
	KindBuild:         "build",
	KindMuslBuild:     "build",
	KindCompilerTest:  "test-compiler",
	KindJSTest:        "test-js",
	KindLibgraalBuild: "build-libgraal",
	KindLibgraalTest:  "test-libgraal",
	KindRunOnly:       "style",
}

// Label returns the job-name prefix for the kind.
func (k Kind) Label() string {
	return kindLabels[k]
}

// Valid reports whether k names a known kind.
func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}
