// Package config loads the CLI driver's optional JSON configuration
// file, gathering the tunables the original tool only exposed as
// compile-time macros and globals (verbosity, the classification
// epsilon) into a single value that can be overridden per invocation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Build holds everything the CLI driver threads through ingestion and
// the builder.
type Build struct {
	OutputPath  string  `json:"outputPath"`
	Verbosity   int     `json:"verbosity"`
	ClipEpsilon float32 `json:"clipEpsilon"`
}

// Default mirrors the original tool's compile-time defaults: tree.txt in
// the working directory, verbosity off, and the single-precision
// FLT_EPSILON classification tolerance.
func Default() Build {
	return Build{OutputPath: "tree.txt", Verbosity: 0, ClipEpsilon: 1.1920929e-7}
}

// Load reads a JSON config file, falling back to Default() when path is
// empty or the file can't be read or parsed — a config file is an
// optional override, never a required input.
func Load(path string) Build {
	cfg := Default()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to path as indented JSON, letting a CLI run snapshot
// the configuration that produced a given tree.txt.
func Save(path string, cfg Build) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
