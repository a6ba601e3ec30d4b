package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"assessor/internal/config"
)

// resolveConfigPath normalizes a config path or finds one from the working
// directory. An empty result means the defaults apply.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig resolves and loads the configuration.
func loadConfig(configPath string) (config.Config, string, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.LoadOrDefault(resolved)
	if err != nil {
		return config.Config{}, resolved, err
	}
	return cfg, resolved, nil
}
