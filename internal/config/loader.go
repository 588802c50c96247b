// Package config provides configuration loading for logbridge.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix is the prefix for all logbridge environment variables.
	EnvPrefix = "LOGBRIDGE_"
)

// Load populates out from YAML file and environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (LOGBRIDGE_TELEMETRY_ENDPOINT, ...)
//  2. YAML config file (~/.config/logbridge/config.yaml)
//  3. Whatever defaults out already carries
//
// The configPath parameter specifies the YAML file to load. If empty,
// the default path is used; a missing file is not an error. Environment
// variables split on the first underscore after the prefix, so compound
// field names survive:
//
//	LOGBRIDGE_TELEMETRY_ENDPOINT     -> telemetry.endpoint
//	LOGBRIDGE_TELEMETRY_SERVICE_NAME -> telemetry.service_name
//	LOGBRIDGE_LOGGING_FORMAT         -> logging.format
func Load(configPath string, out any) error {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "logbridge", "config.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		content, err := readConfigFile(configPath)
		if err != nil {
			return err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Environment variables override file values.
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		// Split on the first underscore only (section.field_name
		// pattern); underscores inside the field name are kept.
		lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Unmarshal("", out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// readConfigFile opens, validates, and reads a config file.
// Validation uses the open file descriptor to avoid TOCTOU races.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	if info.Mode().Perm()&0o022 != 0 {
		return nil, fmt.Errorf("config file %s is group/world-writable (mode %v)", path, info.Mode().Perm())
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
