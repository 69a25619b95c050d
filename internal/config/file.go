package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by [ApplyEnv]. A .env file in the working
// directory is loaded into the process environment before they are read.
const (
	EnvConfig  = "ASSETOPT_CONFIG"
	EnvLogFile = "ASSETOPT_LOG"
	EnvTimeout = "ASSETOPT_TIMEOUT"
	EnvNpx     = "ASSETOPT_NPX"
)

// LoadFile overlays the YAML document at path onto cfg. Keys absent from
// the file keep their current values; unknown keys are an error so typos
// do not silently fall back to defaults.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment settings onto cfg. getenv is normally
// os.Getenv; tests pass a map lookup.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.ToolTimeout = d
	}
	// Replace the package runner (npx) with e.g. a pinned pnpm/bunx path.
	if v := getenv(EnvNpx); v != "" {
		cfg.ImageTool = replaceProgram(cfg.ImageTool, "npx", v)
		cfg.ModelTool = replaceProgram(cfg.ModelTool, "npx", v)
	}
	return nil
}

func replaceProgram(cmd []string, from, to string) []string {
	if len(cmd) == 0 || cmd[0] != from {
		return cmd
	}
	return append([]string{to}, cmd[1:]...)
}
