package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEmptyText(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gantry.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no recorded generations")
}

func TestHistoryAfterRecordText(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gantry.db")
	runGenerateCmd(t, "json", "--record", "--db", dbPath)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "18 job(s)")
	assert.Contains(t, output, "15 edge(s)")
}
