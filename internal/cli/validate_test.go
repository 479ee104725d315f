package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "✓ Pipeline valid")
	assert.Contains(t, output, "18 job(s), 15 edge(s)")
	assert.Contains(t, output, "content hash ")
}

func TestValidateJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 18, resp.Data.Jobs)
	assert.Equal(t, 15, resp.Data.Edges)
	assert.Len(t, resp.Data.Hash, 64)

	// One labsjdk artifact per build cell (4, musl suppressed) plus two
	// libgraal artifacts per libgraal-build cell (6).
	assert.Equal(t, 10, resp.Data.Artifacts)
}
