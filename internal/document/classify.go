package document

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var directAttachTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"image/webp":      {},
}

var textExtractTypes = map[string]struct{}{
	"text/plain":         {},
	"text/markdown":      {},
	"text/x-markdown":    {},
	"text/csv":           {},
	"text/html":          {},
	"text/xml":           {},
	"text/yaml":          {},
	"application/json":   {},
	"application/xml":    {},
	"application/yaml":   {},
	"application/x-yaml": {},
}

var extensionTypes = map[string]string{
	".pdf":      "application/pdf",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".webp":     "image/webp",
	".txt":      "text/plain",
	".log":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".csv":      "text/csv",
	".html":     "text/html",
	".htm":      "text/html",
	".xml":      "application/xml",
	".json":     "application/json",
	".yaml":     "application/yaml",
	".yml":      "application/yaml",
}

// Classify buckets a document using the declared media type, then the file
// extension, then the content signature. Only allow-listed types are
// accepted; everything else is unsupported.
func Classify(doc Input) (Class, string) {
	if mediaType := baseMediaType(doc.MediaType); mediaType != "" {
		if class, ok := classOf(mediaType); ok {
			return class, mediaType
		}
	}
	if mediaType, ok := extensionTypes[strings.ToLower(filepath.Ext(doc.FileName))]; ok {
		class, _ := classOf(mediaType)
		return class, mediaType
	}
	if len(doc.Bytes) > 0 {
		detected := baseMediaType(mimetype.Detect(doc.Bytes).String())
		if class, ok := classOf(detected); ok {
			return class, detected
		}
	}
	return ClassUnsupported, baseMediaType(doc.MediaType)
}

// SupportedFormats lists the accepted file extensions, for user-facing messages.
func SupportedFormats() []string {
	exts := make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func classOf(mediaType string) (Class, bool) {
	if _, ok := directAttachTypes[mediaType]; ok {
		return ClassDirectAttach, true
	}
	if _, ok := textExtractTypes[mediaType]; ok {
		return ClassTextExtract, true
	}
	return ClassUnsupported, false
}

func baseMediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(value)
	}
	return parsed
}
