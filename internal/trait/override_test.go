package trait

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileOverlay(t *testing.T, src string) *OverrideSet {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	set, err := CompileOverrides(v)
	require.NoError(t, err)
	return set
}

func TestCompileOverrides_TraitsAndVersions(t *testing.T) {
	set := compileOverlay(t, `
trait: linux: {
	packages: gcc: "==12.2.0"
	env: EXTRA_FLAG: "1"
	capabilities: ["tmpfs25g"]
}
versions: labsjdk: "ce-22+21-jvmci-b01"
`)

	require.Len(t, set.Overrides, 1)
	o := set.Overrides[0]
	assert.Equal(t, "linux", o.Trait)
	assert.Equal(t, "==12.2.0", o.Packages["gcc"])
	assert.Equal(t, "1", o.Env["EXTRA_FLAG"])
	assert.Equal(t, []string{"tmpfs25g"}, o.Capabilities)
	assert.Equal(t, "ce-22+21-jvmci-b01", set.Versions["labsjdk"])
}

func TestApply_OverridesDerivedRegistryOnly(t *testing.T) {
	set := compileOverlay(t, `
trait: linux: packages: gcc: "==12.2.0"
`)

	base := Default()
	derived, err := base.Apply(set)
	require.NoError(t, err)

	derivedLinux, _ := derived.Lookup("linux")
	assert.Equal(t, "==12.2.0", derivedLinux.Packages["gcc"])

	baseLinux, _ := base.Lookup("linux")
	assert.Equal(t, "==10.2.0", baseLinux.Packages["gcc"], "source registry stays immutable")
}

func TestApply_VersionsPinDownloads(t *testing.T) {
	set := compileOverlay(t, `
versions: labsjdk: "ce-99"
`)

	derived, err := Default().Apply(set)
	require.NoError(t, err)

	deps, _ := derived.Lookup(Base)
	assert.Equal(t, "ce-99", deps.Downloads["labsjdk"].Version)
}

func TestApply_UnknownTrait(t *testing.T) {
	set := compileOverlay(t, `
trait: beos: env: X: "1"
`)

	_, err := Default().Apply(set)
	require.Error(t, err)

	var oErr *OverrideError
	require.True(t, errors.As(err, &oErr))
	assert.Contains(t, oErr.Message, "beos")
}

func TestApply_CapabilitiesAppendWithoutDuplicates(t *testing.T) {
	set := compileOverlay(t, `
trait: linux: capabilities: ["linux", "tmpfs25g"]
`)

	derived, err := Default().Apply(set)
	require.NoError(t, err)

	linux, _ := derived.Lookup("linux")
	assert.Equal(t, []string{"linux", "tmpfs25g"}, linux.Capabilities)
}
