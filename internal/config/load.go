package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, normalizes, and validates a config file. Relative
// paths inside the file resolve against its directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	baseDir := filepath.Dir(path)
	Normalize(&cfg, baseDir)
	if err := Validate(&cfg); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			validationErr.Source = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns the normalized defaults when path is empty.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		Normalize(&cfg, ".")
		return cfg, nil
	}
	return Load(path)
}

// Parse decodes a single YAML document on top of the defaults. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
