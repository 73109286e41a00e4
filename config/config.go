// Package config holds the pipeline stage configuration: the built-in
// default gate and the optional preflight.yaml override.
package config

import (
	"fmt"
	"os"

	"github.com/initializ/preflight/pipeline"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when no
// --config path is given.
const DefaultFile = "preflight.yaml"

// Config represents a preflight.yaml file.
type Config struct {
	Stages []StageConfig `yaml:"stages"`
}

// StageConfig defines one verification stage. Deny lists lint categories
// escalated from warning to hard failure; they are folded into the command
// as `-- -D <category>` when the pipeline is assembled, so strictness stays
// data rather than runner logic.
type StageConfig struct {
	Name    string   `yaml:"name"`
	Command []string `yaml:"command"`
	Deny    []string `yaml:"deny,omitempty"`
}

// Default returns the built-in gate: format check, lint check with the
// unused-import category escalated to a failure, and the test suite with
// every optional feature enabled. Ordering is part of the contract — later
// stages assume earlier ones already vetted the input they operate on.
func Default() *Config {
	return &Config{
		Stages: []StageConfig{
			{
				Name:    "fmt",
				Command: []string{"cargo", "fmt", "--all", "--", "--check"},
			},
			{
				Name:    "lint",
				Command: []string{"cargo", "clippy", "--all-targets"},
				Deny:    []string{"unused_imports"},
			},
			{
				Name:    "test",
				Command: []string{"cargo", "test", "--all-features"},
			},
		},
	}
}

// Load reads and parses the YAML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses raw YAML bytes into a Config, validating the document against
// the embedded schema first. An empty or missing stage list is rejected: an
// empty pipeline must surface as a configuration error, never as a pass.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing preflight config: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("preflight config: stages must not be empty")
	}

	errs, err := validateSchema(doc)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("preflight config invalid: %v", errs)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing preflight config: %w", err)
	}
	if len(cfg.Stages) == 0 {
		return nil, fmt.Errorf("preflight config: stages must not be empty")
	}
	return &cfg, nil
}

// Pipeline assembles the final ordered stage list, folding each stage's deny
// list into its argv after a `--` separator.
func (c *Config) Pipeline() []pipeline.Stage {
	stages := make([]pipeline.Stage, 0, len(c.Stages))
	for _, sc := range c.Stages {
		cmd := append([]string(nil), sc.Command...)
		if len(sc.Deny) > 0 {
			cmd = append(cmd, "--")
			for _, category := range sc.Deny {
				cmd = append(cmd, "-D", category)
			}
		}
		stages = append(stages, pipeline.Stage{Name: sc.Name, Command: cmd})
	}
	return stages
}
