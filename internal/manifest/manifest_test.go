package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `
clips:
  - id: walk
    sheet: cat-walk.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0, 1, 2, 3]
    loop: true
  - id: walk-left
    sheet: cat-walk.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0, 1, 2, 3]
    flipX: true
    loop: true
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clips.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, validManifest)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Clips, 2)

	walk := m.Clips[0]
	assert.Equal(t, "walk", walk.ID)
	assert.Equal(t, 32, walk.FrameWidth)
	assert.Equal(t, 32, walk.FrameHeight)
	assert.Equal(t, 12, walk.FPS)
	assert.Equal(t, []int{0, 1, 2, 3}, walk.Frames)
	assert.True(t, walk.Loop)
	assert.False(t, walk.FlipX)

	assert.True(t, m.Clips[1].FlipX)
}

func TestLoadResolvesRelativeSheetPaths(t *testing.T) {
	path := writeManifest(t, validManifest)

	m, err := Load(path)
	require.NoError(t, err)

	want := filepath.Join(filepath.Dir(path), "cat-walk.png")
	assert.Equal(t, want, m.Clips[0].Sheet)
}

func TestLoadKeepsAbsoluteSheetPaths(t *testing.T) {
	content := `
clips:
  - id: walk
    sheet: /sprites/cat-walk.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0]
`
	m, err := Load(writeManifest(t, content))
	require.NoError(t, err)
	assert.Equal(t, "/sprites/cat-walk.png", m.Clips[0].Sheet)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	content := `
clips:
  - id: walk
    sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    framez: [0, 1]
`
	_, err := Load(writeManifest(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "framez")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no clips",
			content: `clips: []`,
			wantErr: "non-empty",
		},
		{
			name: "missing id",
			content: `
clips:
  - sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0]
`,
			wantErr: "id is required",
		},
		{
			name: "duplicate id",
			content: `
clips:
  - id: walk
    sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0]
  - id: walk
    sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0]
`,
			wantErr: "duplicate id",
		},
		{
			name: "missing sheet",
			content: `
clips:
  - id: walk
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0]
`,
			wantErr: "sheet is required",
		},
		{
			name: "zero frame width",
			content: `
clips:
  - id: walk
    sheet: cat.png
    frameWidth: 0
    frameHeight: 32
    fps: 12
    frames: [0]
`,
			wantErr: "frame size must be positive",
		},
		{
			name: "zero fps",
			content: `
clips:
  - id: walk
    sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 0
    frames: [0]
`,
			wantErr: "fps must be positive",
		},
		{
			name: "empty frames",
			content: `
clips:
  - id: walk
    sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: []
`,
			wantErr: "frames list is required",
		},
		{
			name: "negative frame index",
			content: `
clips:
  - id: walk
    sheet: cat.png
    frameWidth: 32
    frameHeight: 32
    fps: 12
    frames: [0, -2]
`,
			wantErr: "negative",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestFrameDurationMicros(t *testing.T) {
	cases := []struct {
		fps  int
		want int64
	}{
		{10, 100_000},
		{12, 83_333},
		{24, 41_666},
		{60, 16_666},
	}

	for _, tc := range cases {
		c := Clip{FPS: tc.fps}
		assert.Equal(t, tc.want, c.FrameDurationMicros(), "fps %d", tc.fps)
	}
}
