// Package manifest reads clip import declarations from YAML.
//
// A manifest batches sprite-sheet imports so a whole character's animation
// set loads in one command. Parsing is strict: unknown fields are rejected
// to catch typos before anything touches the repository.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest declares a batch of clip imports.
type Manifest struct {
	// Clips lists the sprite-sheet imports, applied in order.
	Clips []Clip `yaml:"clips"`
}

// Clip declares one sprite-sheet import.
type Clip struct {
	// ID names the clip; recorded on every imported frame.
	ID string `yaml:"id"`

	// Sheet is the sprite sheet image path. Relative paths resolve
	// against the manifest file's directory.
	Sheet string `yaml:"sheet"`

	// FrameWidth and FrameHeight give the cell size in pixels.
	FrameWidth  int `yaml:"frameWidth"`
	FrameHeight int `yaml:"frameHeight"`

	// FPS sets playback speed; each frame lasts 1/FPS seconds.
	FPS int `yaml:"fps"`

	// Frames lists cell indices in playback order. Indices are row-major
	// from the sheet's top left and may repeat.
	Frames []int `yaml:"frames"`

	// FlipX mirrors the whole sheet before slicing.
	FlipX bool `yaml:"flipX,omitempty"`

	// Loop adds a transition from the last frame back to the first.
	Loop bool `yaml:"loop,omitempty"`
}

// FrameDurationMicros derives the per-frame duration from FPS,
// truncating to whole microseconds (24fps becomes 41666us).
func (c Clip) FrameDurationMicros() int64 {
	return int64(1_000_000 / c.FPS)
}

// Load reads and parses a manifest file. Relative sheet paths are resolved
// against the manifest's directory before validation.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i, clip := range m.Clips {
		if clip.Sheet != "" && !filepath.IsAbs(clip.Sheet) {
			m.Clips[i].Sheet = filepath.Join(base, clip.Sheet)
		}
	}

	if err := validate(m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return m, nil
}

// Parse decodes manifest YAML with strict field checking.
// Callers that parse in-memory data must run validation themselves via
// Load; Parse alone only guarantees well-formed fields.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &m, nil
}

// validate checks that required fields are present and consistent.
func validate(m *Manifest) error {
	if len(m.Clips) == 0 {
		return fmt.Errorf("clips list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(m.Clips))
	for i, clip := range m.Clips {
		where := fmt.Sprintf("clip %d", i)
		if clip.ID != "" {
			where = fmt.Sprintf("clip %q", clip.ID)
		}

		if clip.ID == "" {
			return fmt.Errorf("%s: id is required", where)
		}
		if seen[clip.ID] {
			return fmt.Errorf("%s: duplicate id", where)
		}
		seen[clip.ID] = true

		if clip.Sheet == "" {
			return fmt.Errorf("%s: sheet is required", where)
		}
		if clip.FrameWidth <= 0 || clip.FrameHeight <= 0 {
			return fmt.Errorf("%s: frame size must be positive, got %dx%d",
				where, clip.FrameWidth, clip.FrameHeight)
		}
		if clip.FPS <= 0 {
			return fmt.Errorf("%s: fps must be positive, got %d", where, clip.FPS)
		}
		if len(clip.Frames) == 0 {
			return fmt.Errorf("%s: frames list is required and must be non-empty", where)
		}
		for _, index := range clip.Frames {
			if index < 0 {
				return fmt.Errorf("%s: frame index %d is negative", where, index)
			}
		}
	}

	return nil
}
