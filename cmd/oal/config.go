package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional project file, oal.yaml (SPEC_FULL.md §2). Only
// cmd/oal reads it; the compiler internals never see a Config value.
type Config struct {
	// ModuleRoots lists directories module loading (external) should search
	// for imports. Unused by this thin demo entry point, carried so a real
	// loader has somewhere to read its configuration from.
	ModuleRoots []string `yaml:"moduleRoots"`
	// Output selects the dump format: "text" (default) or "yaml".
	Output string `yaml:"output"`
}

// loadConfig reads path if it exists, returning a zero-value Config if it
// does not — oal.yaml is optional (mirrors the teacher's funxy.yaml, which
// is likewise looked up best-effort via ext.FindConfig).
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Output: "text"}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	return cfg, nil
}
