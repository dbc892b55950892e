// Package config loads the YAML settings file shared by the CLI binaries,
// the way cmd/gedcom/internal/config.go does for the teacher's JSON config,
// adapted to REC-GEN's tunables (spec §6 External Interfaces). Of the
// rec_gen section, rec-gen reads sib, cand and bush_threshold; its other
// fields are loaded but not read, and rec-gen's command-line flags with
// their built-in defaults govern those tunables. tree-diff falls back to
// tree_diff.child_accuracy when -a is not given, and the output section
// gates color and progress bars.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the per-generation override lists for the sibling test's
// sib/cand thresholds (spec §4.4, SibList/CandList in recgen.Options).
// rec-gen does not read them; its override lists come from -S and -c.
type Thresholds struct {
	Sib  []float64 `yaml:"sib"`
	Cand []float64 `yaml:"cand"`
}

// RecGen holds rec-gen's tunables (spec §6 `-S`, `-c`, `-r`, `-y`, `-d`,
// `-B`/`-R`/`-P`, `-e`, `-m`).
type RecGen struct {
	Sib          float64    `yaml:"sib"`
	Cand         float64    `yaml:"cand"`
	Rec          float64    `yaml:"rec"`
	Decay        float64    `yaml:"decay"`
	Richness     int        `yaml:"richness"`
	Collector    string     `yaml:"collector"` // triplevote, mostfrequent, recursive, parsimony, bp
	BushThresh   int        `yaml:"bush_threshold"`
	Epsilon      float64    `yaml:"epsilon"`
	MemoryMode   string     `yaml:"memory_mode"` // full, purge_child
	CacheSize    int        `yaml:"cache_size"`
	PruneClaimed bool       `yaml:"prune_claimed"`
	Thresholds   Thresholds `yaml:"thresholds"`
}

// TreeDiff holds tree-diff's tunables (spec §6 `-a`).
type TreeDiff struct {
	ChildAccuracy float64 `yaml:"child_accuracy"`
}

// Output holds the CLI's presentation preferences, the same concern the
// teacher's Config.Output struct covers.
type Output struct {
	Color    bool `yaml:"color"`
	Progress bool `yaml:"progress"`
}

// Config is the root configuration document, one YAML file shared by all
// four cmd binaries.
type Config struct {
	RecGen   RecGen   `yaml:"rec_gen"`
	TreeDiff TreeDiff `yaml:"tree_diff"`
	Output   Output   `yaml:"output"`
}

// Default returns the reference implementation's documented defaults
// (spec §4.4 "typical defaults", §4.8 DefaultChildAccuracy).
func Default() *Config {
	return &Config{
		RecGen: RecGen{
			Sib:        0.5,
			Cand:       0.3,
			Rec:        0.5,
			Decay:      0.9,
			Richness:   3,
			Collector:  "triplevote",
			BushThresh: 1,
			Epsilon:    0.01,
			MemoryMode: "full",
			CacheSize:  4096,
		},
		TreeDiff: TreeDiff{
			ChildAccuracy: 0.49,
		},
		Output: Output{
			Color:    true,
			Progress: true,
		},
	}
}

// Load reads a YAML config from path, overlaying it onto Default(). An
// empty path checks ~/.rec-gen/config.yaml then
// ~/.config/rec-gen/config.yaml, falling back to defaults if neither
// exists.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		candidates := []string{
			filepath.Join(home, ".rec-gen", "config.yaml"),
			filepath.Join(home, ".config", "rec-gen", "config.yaml"),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".rec-gen", "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
