package cli

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStartCommand(t *testing.T, repoPath string, extra ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewStartCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{repoPath}, extra...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestStartCommandShow(t *testing.T) {
	repoPath, ids := seedRepoFile(t)

	out, err := runStartCommand(t, repoPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Start frame: "+strconv.FormatInt(ids[0], 10))
}

func TestStartCommandSet(t *testing.T) {
	repoPath, ids := seedRepoFile(t)
	target := strconv.FormatInt(ids[1], 10)

	out, err := runStartCommand(t, repoPath, "--set", target)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Start frame set to "+target)

	out, err = runStartCommand(t, repoPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Start frame: "+target)
}

func TestStartCommandSetUnknownFrame(t *testing.T) {
	repoPath, _ := seedRepoFile(t)

	out, err := runStartCommand(t, repoPath, "--set", "9999")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NOT_FOUND")
}

func TestStartCommandClear(t *testing.T) {
	repoPath, _ := seedRepoFile(t)

	out, err := runStartCommand(t, repoPath, "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Start frame cleared")

	out, err = runStartCommand(t, repoPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Start frame: none")
}

func TestStartCommandShowEmptyRepository(t *testing.T) {
	repoPath := newRepoFile(t)

	out, err := runStartCommand(t, repoPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Start frame: none")
}
