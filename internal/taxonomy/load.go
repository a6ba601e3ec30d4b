package taxonomy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the schema of a taxonomy extension file.
type File struct {
	Concepts []Concept `yaml:"concepts"`
}

// LoadFile reads taxonomy rows from a YAML file.
func LoadFile(path string) ([]Concept, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}
	return file.Concepts, nil
}

// Build returns the default taxonomy extended with the rows in path.
// An empty path yields the default taxonomy.
func Build(path string) (*Taxonomy, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return base.Extend(extra)
}
