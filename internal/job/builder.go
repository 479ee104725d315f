package job

import (
	"fmt"

	"github.com/halcyard/gantry/internal/trait"
)

// gitRepo is the source repository cloned by every job. The clone URL passes
// through the build tool's URL rewriter so mirrored runners can redirect it.
const gitRepo = "https://github.com/oracle/graal.git"

// muslCapability marks templates built against the static musl toolchain.
// Musl builds produce no relocatable home artifact, so the build kind
// suppresses its publish list when it sees this tag.
const muslCapability = "musl"

// Build turns a composed template plus a job kind into a concrete Job.
//
// The template contributes everything platform-shaped (environment,
// downloads, packages, capabilities, translators); the kind contributes the
// command sequence, artifact roles and resource limits. Step order in the
// returned job is exact: later steps read variables exported by earlier
// ones, and the Windows line-ending step must precede the clone.
func Build(tmpl *trait.Template, kind Kind) (Job, error) {
	if !kind.Valid() {
		return Job{}, &ConfigurationError{Kind: kind, Field: "kind", Message: "unknown job kind"}
	}

	p := tmpl.Platform
	if p == nil {
		return Job{}, &ConfigurationError{Kind: kind, Field: "os", Message: "template composes no OS trait"}
	}
	arch, ok := tmpl.Arch()
	if !ok {
		return Job{}, &ConfigurationError{Kind: kind, Field: "arch", Message: "template carries no architecture capability"}
	}

	// platform cell name, e.g. "windows-amd64"; artifact names embed it.
	cell := fmt.Sprintf("%s-%s", p.OS, arch)

	j := Job{
		Name:         kind.Label() + tmpl.Suffix,
		Kind:         kind,
		Logs:         []string{"*.log", "*/*.log"},
		Targets:      []string{"gate"},
		Env:          copyStringMap(tmpl.Env),
		Downloads:    copyDownloadMap(tmpl.Downloads),
		Packages:     copyStringMap(tmpl.Packages),
		Capabilities: append([]string(nil), tmpl.Capabilities...),
	}

	switch kind {
	case KindBuild:
		j.TimeLimit = "1:00:00"
		if p.OS == trait.Windows {
			j.TimeLimit = "1:30:00"
		}
		j.DiskSpace = "10G"
		j.Run = append(checkout(p),
			exportJavaHomeDownload(p),
			Cmd(p.Exe("mx"), "--strict-compliance", "build"),
		)
		if !tmpl.HasCapability(muslCapability) {
			j.Publishes = []PublishArtifact{{
				Name:     "labsjdk-" + cell,
				Dir:      p.Path("graal/sdk/latest_graalvm_home"),
				Patterns: []string{"*"},
			}}
		}

	case KindMuslBuild:
		j.TimeLimit = "1:00:00"
		j.DiskSpace = "10G"
		j.Run = append(checkout(p),
			exportJavaHomeDownload(p),
			Cmd(p.Exe("mx"), "--env", "static-musl", "build"),
		)

	case KindCompilerTest:
		j.TimeLimit = "1:30:00"
		j.DiskSpace = "10G"
		j.Requires = []RequireArtifact{{
			Name:        "labsjdk-" + cell,
			Dir:         "labsjdk",
			AutoExtract: true,
		}}
		j.Run = append(checkout(p),
			exportJavaHomeDir(p, "labsjdk"),
			Cmd(p.Exe("mx"), "--kill-with-sigquit", "gate", "--tags", "compiler"),
		)

	case KindJSTest:
		j.TimeLimit = "0:45:00"
		j.DiskSpace = "10G"
		j.Requires = []RequireArtifact{{
			Name:        "labsjdk-" + cell,
			Dir:         "labsjdk",
			AutoExtract: true,
		}}
		j.Run = append(checkout(p),
			exportJavaHomeDir(p, "labsjdk"),
			Cmd(p.Exe("mx"), "--kill-with-sigquit", "gate", "--tags", "js"),
		)

	case KindLibgraalBuild:
		j.TimeLimit = "1:30:00"
		j.DiskSpace = "16G"
		j.Requires = []RequireArtifact{{
			Name:        "labsjdk-" + cell,
			Dir:         "labsjdk",
			AutoExtract: true,
		}}
		j.Run = append(checkout(p),
			exportJavaHomeDir(p, "labsjdk"),
			Cmd(p.Exe("mx"), "--env", "libgraal", "build"),
		)
		j.Publishes = []PublishArtifact{
			{
				Name:     "libgraal-" + cell,
				Dir:      p.Path("graal/vm/latest_graalvm_home"),
				Patterns: []string{"*"},
			},
			{
				// Commit marker: pins which revision the binaries were built
				// from, so downstream test jobs can cross-check their clone.
				Name:     "libgraal-commit-" + cell,
				Dir:      p.Path("graal/.git"),
				Patterns: []string{"HEAD", "refs/heads/*"},
			},
		}

	case KindLibgraalTest:
		j.TimeLimit = "2:00:00"
		j.DiskSpace = "16G"
		j.Requires = []RequireArtifact{
			{Name: "libgraal-" + cell, Dir: "libgraal", AutoExtract: true},
			{Name: "libgraal-commit-" + cell, Dir: "libgraal-commit"},
		}
		j.Run = append(checkout(p),
			exportJavaHomeDir(p, "libgraal"),
			Cmd(p.Exe("mx"), "--env", "libgraal", "gate", "--tags", "libgraal"),
		)

	case KindRunOnly:
		j.TimeLimit = "0:30:00"
		j.DiskSpace = "10G"
		j.Run = append(checkout(p),
			exportJavaHomeDownload(p),
			Cmd(p.Exe("mx"), "gate", "--tags", "style,fullbuild"),
		)
	}

	return j, nil
}

// checkout emits the clone prologue. On Windows the line-ending
// normalization must run before the clone or checked-out sources get CRLF
// translated and hash checks on generated files fail.
func checkout(p *trait.Platform) []Step {
	var steps []Step
	if p.OS == trait.Windows {
		steps = append(steps, Cmd("git", "config", "--global", "core.autocrlf", "false"))
	}
	steps = append(steps, Step{
		Lit("git"), Lit("clone"),
		Subst(p.Exe("mx"), "urlrewrite", gitRepo),
		Lit("graal"),
	})
	return steps
}

// exportJavaHomeDownload points JAVA_HOME at the labsjdk download. The
// runner unpacks downloads under "downloads/<key>" before the first step.
func exportJavaHomeDownload(p *trait.Platform) Step {
	return Cmd("set-export", "JAVA_HOME", p.Home(p.Path("downloads/labsjdk")))
}

// exportJavaHomeDir points JAVA_HOME at an extracted artifact directory.
func exportJavaHomeDir(p *trait.Platform, dir string) Step {
	return Cmd("set-export", "JAVA_HOME", p.Home(dir))
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyDownloadMap(m map[string]trait.Download) map[string]trait.Download {
	out := make(map[string]trait.Download, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
