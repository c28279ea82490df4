package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is discovered in the working directory when no
// --config flag is given.
const defaultConfigFile = "pikov.toml"

// Config holds defaults read from a pikov.toml file. Command-line flags
// take precedence over every entry.
type Config struct {
	// Repository is the default repository file path.
	Repository string

	// Format is the default output format.
	Format string

	// Preview holds preview command defaults.
	Preview PreviewConfig
}

// PreviewConfig holds defaults for the preview command.
type PreviewConfig struct {
	Min   time.Duration
	Max   time.Duration
	Scale int
}

// fileConfig mirrors the TOML layout. Durations are strings in the file
// ("10s", "1m30s") and parse into PreviewConfig.
type fileConfig struct {
	Repository string          `toml:"repository"`
	Format     string          `toml:"format"`
	Preview    filePreviewConf `toml:"preview"`
}

type filePreviewConf struct {
	Min   string `toml:"min"`
	Max   string `toml:"max"`
	Scale int    `toml:"scale"`
}

// loadConfig reads the config file at path. An empty path looks for
// pikov.toml in the working directory; its absence is not an error.
// An explicitly given path must exist.
func loadConfig(path string) (Config, error) {
	discovered := path == ""
	if discovered {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if discovered && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg := Config{
		Repository: raw.Repository,
		Format:     raw.Format,
		Preview:    PreviewConfig{Scale: raw.Preview.Scale},
	}

	if raw.Preview.Min != "" {
		cfg.Preview.Min, err = time.ParseDuration(raw.Preview.Min)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: preview.min: %w", path, err)
		}
	}
	if raw.Preview.Max != "" {
		cfg.Preview.Max, err = time.ParseDuration(raw.Preview.Max)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: preview.max: %w", path, err)
		}
	}
	if raw.Preview.Scale < 0 {
		return Config{}, fmt.Errorf("config %s: preview.scale must not be negative", path)
	}

	return cfg, nil
}
