package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArg_MarshalJSON(t *testing.T) {
	step := Step{
		Lit("git"), Lit("clone"),
		Subst("mx", "urlrewrite", "https://example.com/repo.git"),
		Lit("repo"),
	}

	data, err := json.Marshal(step)
	require.NoError(t, err)
	assert.JSONEq(t, `["git","clone",["mx","urlrewrite","https://example.com/repo.git"],"repo"]`, string(data))
}

func TestArg_UnmarshalJSON(t *testing.T) {
	var step Step
	require.NoError(t, json.Unmarshal([]byte(`["echo",["pwd"]]`), &step))

	require.Len(t, step, 2)
	assert.Equal(t, "echo", step[0].Literal)
	assert.Equal(t, []string{"pwd"}, step[1].Command)
}

func TestArg_String(t *testing.T) {
	assert.Equal(t, "plain", Lit("plain").String())
	assert.Equal(t, "$(git rev-parse HEAD)", Subst("git", "rev-parse", "HEAD").String())
}

func TestStep_Export(t *testing.T) {
	step := Step{Lit("set-export"), Lit("SHA"), Subst("git", "rev-parse", "HEAD")}

	exported := step.Export()
	require.Len(t, exported, 3)
	assert.Equal(t, "set-export", exported[0])
	assert.Equal(t, []any{"git", "rev-parse", "HEAD"}, exported[2])
}

func TestStep_Executable(t *testing.T) {
	exe, err := Cmd("mx", "build").Executable()
	require.NoError(t, err)
	assert.Equal(t, "mx", exe)

	_, err = Step{}.Executable()
	assert.Error(t, err)

	_, err = Step{Subst("which", "mx")}.Executable()
	assert.Error(t, err)
}
