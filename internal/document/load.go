package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// LoadFile reads a document from disk. The media type comes from the file
// extension when it is known and from the content signature otherwise.
func LoadFile(path string, role Role, note string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read document: %w", err)
	}
	mediaType, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mediaType = mimetype.Detect(data).String()
	}
	return Input{
		FileName:         filepath.Base(path),
		MediaType:        mediaType,
		Bytes:            data,
		Role:             role,
		RelationshipNote: strings.TrimSpace(note),
	}, nil
}

// ParseAuxiliaryArg splits a "path=note" command-line value.
func ParseAuxiliaryArg(value string) (string, string) {
	path, note, _ := strings.Cut(value, "=")
	return strings.TrimSpace(path), strings.TrimSpace(note)
}
