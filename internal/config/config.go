// Package config provides tool configuration loading for workshopforge.
//
// Precedence, highest first: environment variables (FORGE_AI_BACKEND and
// friends), the YAML config file (~/.config/workshopforge/config.yaml by
// default), then hardcoded defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/workshopforge/workshopforge/internal/logging"
)

// envPrefix namespaces the tool's environment variables.
const envPrefix = "FORGE_"

// AIConfig selects the completion backend.
type AIConfig struct {
	// Backend is the backend identifier: echo, openai, or anthropic.
	Backend string `koanf:"backend"`

	// Model overrides the backend's default model when set.
	Model string `koanf:"model"`
}

// Config is the full tool configuration.
type Config struct {
	AI  AIConfig       `koanf:"ai"`
	Log logging.Config `koanf:"log"`

	// StateDirName is the per-workshop state directory name, created next
	// to the spec directory.
	StateDirName string `koanf:"state_dir_name"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "workshopforge", "config.yaml"), nil
}

// Load reads configuration from the YAML file at path (the default location
// when empty), then overrides with FORGE_* environment variables. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := k.Load(rawbytes.Provider(data), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	// FORGE_AI_BACKEND -> ai.backend, FORGE_LOG_LEVEL -> log.level,
	// FORGE_STATE_DIR_NAME -> state_dir_name.
	if err := k.Load(env.Provider(envPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Log.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// transformEnv maps FORGE_SECTION_FIELD_NAME to section.field_name. The
// first underscore separates section from field; later underscores belong
// to the field name, except the flat state_dir_name key.
func transformEnv(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if lower == "state_dir_name" {
		return lower
	}
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// applyDefaults fills unset fields.
func applyDefaults(cfg *Config) {
	if cfg.AI.Backend == "" {
		cfg.AI.Backend = "echo"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = logging.DefaultConfig().Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logging.DefaultConfig().Format
	}
	if cfg.StateDirName == "" {
		cfg.StateDirName = ".workshopforge"
	}
}
