package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunnerConfig is the persisted, file-based form of a Runner's
// selection and output configuration — the settings a user would
// otherwise have to repeat on every command-line invocation.
type RunnerConfig struct {
	Families    []string `yaml:"families"`
	Sources     []string `yaml:"sources"`
	Concurrency string   `yaml:"concurrency"`
	Verbose     bool     `yaml:"verbose"`
	Recovery    bool     `yaml:"recovery"`
	Dump        bool     `yaml:"dump"`
	OutputDir   string   `yaml:"output_dir"`
}

// LoadRunnerConfig reads and parses a RunnerConfig from path.
func LoadRunnerConfig(path string) (*RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg RunnerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("harness: parsing runner config: %w", err)
	}
	return &cfg, nil
}

// ParseConcurrencyMode maps a config/CLI string onto a ConcurrencyMode.
func ParseConcurrencyMode(s string) (ConcurrencyMode, error) {
	switch s {
	case "", "serial":
		return Serial, nil
	case "family":
		return Family, nil
	case "test":
		return Test, nil
	case "deep":
		return Deep, nil
	default:
		return Serial, fmt.Errorf("harness: unknown concurrency mode %q", s)
	}
}

// Selection builds a Selection from the config's Families/Sources.
func (c *RunnerConfig) Selection() Selection {
	return Selection{Families: c.Families, Sources: c.Sources}
}

// OutputMode builds an OutputMode from the config, with WriteFiles
// implied by a non-empty OutputDir.
func (c *RunnerConfig) OutputMode() OutputMode {
	return OutputMode{
		WriteFiles: c.OutputDir != "",
		Verbose:    c.Verbose,
		Recovery:   c.Recovery,
		Dump:       c.Dump,
		OutputDir:  c.OutputDir,
	}
}
