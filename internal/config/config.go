// Package config loads the optional cfront.yaml file. Command-line flags
// override whatever it sets.
package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v2"
)

// Version is the compiler version checked against a config's requires
// constraint.
const Version = "0.3.0"

type Dump struct {
	Tokens bool `yaml:"tokens"` // Print the token stream.
	AST    bool `yaml:"ast"`    // Print the syntax tree.
	IL     bool `yaml:"il"`     // Print the instruction listing.
}

type Config struct {
	Requires string `yaml:"requires"` // Semver constraint on Version, e.g. ">= 0.3".
	Color    string `yaml:"color"`    // One of auto, always, never. Default: auto

	// WarningsAsErrors makes warnings fail the exit status. They are still
	// printed as warnings.
	WarningsAsErrors bool `yaml:"warnings-as-errors"`

	Parse *bool `yaml:"parse"` // Whether to parse after tokenizing. Default: true
	Dump  Dump  `yaml:"dump"`
}

func Default() *Config {
	return &Config{Color: "auto"}
}

// FromFile reads and checks the config at path.
func FromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed := Default()
	if err = yaml.UnmarshalStrict(raw, parsed); err != nil {
		return nil, err
	}
	if err = parsed.Check(Version); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return parsed, nil
}

// Check validates the config for a compiler at version.
func (c *Config) Check(version string) error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color setting %q", c.Color)
	}
	if c.Requires == "" {
		return nil
	}
	cons, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("bad requires constraint: %v", err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return err
	}
	if !cons.Check(v) {
		return fmt.Errorf("config requires cfront %s, this is %s", c.Requires, v)
	}
	return nil
}

func (c *Config) ShouldParse() bool { return c.Parse == nil || *c.Parse }

// UseColor decides whether diagnostics are colored, given whether stderr is
// a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return terminal
}
