package pikov

import (
	"context"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Create(filepath.Join(t.TempDir(), "test.pikov"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func mustAddImage(t *testing.T, r *Repository, img image.Image) string {
	t.Helper()
	key, _, err := r.AddImage(context.Background(), img)
	require.NoError(t, err)
	return key
}

func mustAddFrame(t *testing.T, r *Repository, imageKey string, duration time.Duration) *Frame {
	t.Helper()
	f, err := r.AddFrame(context.Background(), imageKey, duration)
	require.NoError(t, err)
	return f
}

func mustAddTransition(t *testing.T, r *Repository, source, target *Frame) *Transition {
	t.Helper()
	tr, err := r.AddTransition(context.Background(), source.ID(), target.ID())
	require.NoError(t, err)
	return tr
}

// scriptRand replays a fixed choice sequence, wrapping at the end.
type scriptRand struct {
	seq []int
	pos int
}

func (s *scriptRand) Intn(n int) int {
	v := s.seq[s.pos%len(s.seq)]
	s.pos++
	return v % n
}
