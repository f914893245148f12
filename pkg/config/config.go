// Package config loads the per-project settings of a coding workspace.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfigFile is the name of the optional per-workdir config file.
const ProjectConfigFile = "qoda.yaml"

// Config holds the project-level settings. Every field has a default, so
// a workspace without a qoda.yaml is fully usable.
type Config struct {
	// Codebook is the codebook document, relative to the project root.
	Codebook string `yaml:"codebook"`
	// IgnoreCode silences coding differences for a sentence when one
	// coder applies it.
	IgnoreCode string `yaml:"ignore_code"`
	// GarbageCodes are codes excluded from analyses.
	GarbageCodes []string `yaml:"garbage_codes"`
	// MaxCountDiff is how far apart two coders' i/u gap counts may be
	// before compare reports them. A pointer so that an explicit 0 in
	// qoda.yaml is distinguishable from an absent setting.
	MaxCountDiff *int `yaml:"max_count_diff"`
	// Topics maps a code to its coarse grouping label for reporting.
	Topics map[string]string `yaml:"topics"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Codebook:     "codebook.md",
		IgnoreCode:   "-ignorediff",
		GarbageCodes: []string{"cruft"},
		MaxCountDiff: IntRef(2),
		Topics:       map[string]string{},
	}
}

// IntRef returns a pointer to n, for the settings that distinguish
// "set to zero" from "not set".
func IntRef(n int) *int { return &n }

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other.Codebook != "" {
		c.Codebook = other.Codebook
	}
	if other.IgnoreCode != "" {
		c.IgnoreCode = other.IgnoreCode
	}
	if len(other.GarbageCodes) > 0 {
		c.GarbageCodes = other.GarbageCodes
	}
	if other.MaxCountDiff != nil {
		c.MaxCountDiff = other.MaxCountDiff
	}
	for code, topic := range other.Topics {
		c.Topics[code] = topic
	}
}

// LoadFromFile reads a single config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with the project file of workdir,
// if one exists. A missing project file is not an error.
func Load(workdir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(workdir, ProjectConfigFile)
	fileCfg, err := LoadFromFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	cfg.Merge(fileCfg)
	return cfg, nil
}
