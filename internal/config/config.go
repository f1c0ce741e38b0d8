package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config mirrors the scan flag names. Zero values mean "not set"; list
// fields are additive on top of the built-in filter policy.
type Config struct {
	Base            string   `yaml:"base,omitempty"`
	Head            string   `yaml:"head,omitempty"`
	RulesDir        string   `yaml:"rules_dir,omitempty"`
	NoCustomRules   *bool    `yaml:"no_custom_rules,omitempty"`
	ExcludeDirs     []string `yaml:"exclude_dirs,omitempty"`
	ExcludeSuffixes []string `yaml:"exclude_suffixes,omitempty"`
	FailOn          string   `yaml:"fail_on,omitempty"`
	Format          string   `yaml:"format,omitempty"`
	Out             string   `yaml:"out,omitempty"`
	Verbose         *bool    `yaml:"verbose,omitempty"`
}

// Load reads config from layered sources:
//  1. ~/.patrol/config.yaml (global)
//  2. ./.patrol/config.yaml (repo-local, takes precedence)
//
// Missing files are silently ignored. Returns zero Config if neither exists.
func Load() (Config, error) {
	var merged Config

	if home, _ := os.UserHomeDir(); home != "" {
		path := filepath.Join(home, ".patrol", "config.yaml")
		global, err := loadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load global config %s: %w", path, err)
		}
		merged = merge(merged, global)
	}

	if cwd, _ := os.Getwd(); cwd != "" {
		path := filepath.Join(cwd, ".patrol", "config.yaml")
		local, err := loadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load local config %s: %w", path, err)
		}
		merged = merge(merged, local)
	}

	return merged, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return Config{}, nil
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// merge applies overrides from b onto a. Non-zero scalars in b win; list
// fields are concatenated since exclusions only ever add to the policy.
func merge(a, b Config) Config {
	if b.Base != "" {
		a.Base = b.Base
	}
	if b.Head != "" {
		a.Head = b.Head
	}
	if b.RulesDir != "" {
		a.RulesDir = b.RulesDir
	}
	if b.NoCustomRules != nil {
		a.NoCustomRules = b.NoCustomRules
	}
	a.ExcludeDirs = append(a.ExcludeDirs, b.ExcludeDirs...)
	a.ExcludeSuffixes = append(a.ExcludeSuffixes, b.ExcludeSuffixes...)
	if b.FailOn != "" {
		a.FailOn = b.FailOn
	}
	if b.Format != "" {
		a.Format = b.Format
	}
	if b.Out != "" {
		a.Out = b.Out
	}
	if b.Verbose != nil {
		a.Verbose = b.Verbose
	}
	return a
}
