package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/pikov"
	"github.com/roach88/pikov/internal/imaging"
	"github.com/roach88/pikov/internal/testutil"
)

// newRepoFile creates an empty repository file and returns its path.
func newRepoFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pikov")
	r, err := pikov.Create(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return path
}

// seedRepoFile creates a repository with a two-frame loop and returns the
// path and frame ids.
func seedRepoFile(t *testing.T) (string, []int64) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.pikov")

	r, err := pikov.Create(path)
	require.NoError(t, err)
	defer r.Close()

	red, _, err := r.AddImage(ctx, testutil.Solid(2, 2, testutil.Red))
	require.NoError(t, err)
	blue, _, err := r.AddImage(ctx, testutil.Solid(2, 2, testutil.Blue))
	require.NoError(t, err)

	a, err := r.AddFrame(ctx, red, 100*time.Millisecond)
	require.NoError(t, err)
	b, err := r.AddFrame(ctx, blue, 100*time.Millisecond)
	require.NoError(t, err)

	_, err = r.AddTransition(ctx, a.ID(), b.ID())
	require.NoError(t, err)
	_, err = r.AddTransition(ctx, b.ID(), a.ID())
	require.NoError(t, err)

	return path, []int64{a.ID(), b.ID()}
}

// writeTestSheet writes a two-cell 4x4 sprite sheet PNG and returns its path.
func writeTestSheet(t *testing.T, dir string) string {
	t.Helper()
	data, err := imaging.EncodePNG(testutil.StripSheet(4, 4, testutil.Red, testutil.Green))
	require.NoError(t, err)
	path := filepath.Join(dir, "sheet.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
