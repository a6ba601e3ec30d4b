package response

import (
	"encoding/json"
	"regexp"
	"strings"
)

// excerptLimit bounds the raw text kept on a ParseFailure.
const excerptLimit = 500

// ParseFailure reports raw text that could not be read as the required
// structure. Excerpt is for diagnostics only.
type ParseFailure struct {
	Reason  string
	Excerpt string
}

// Error implements error.
func (f *ParseFailure) Error() string {
	if f == nil {
		return ""
	}
	return "parse response: " + f.Reason
}

var fencePattern = regexp.MustCompile("(?s)```[A-Za-z]*[ \\t]*\\r?\\n?(.*?)```")

// Parse extracts the structured payload from raw generator text. It tries
// fenced code blocks first, then the first balanced object in the text.
// Failures are returned as *ParseFailure.
func Parse(raw string) (Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return Payload{}, &ParseFailure{Reason: "response is empty"}
	}
	root, ok := decodeFenced(raw)
	if !ok {
		root, ok = decodeBalanced(raw)
	}
	if !ok {
		return Payload{}, &ParseFailure{Reason: "no JSON object found in response", Excerpt: excerpt(raw)}
	}
	if answers, found := root.Field("answers"); !found || answers.Kind != KindObject {
		return Payload{}, &ParseFailure{Reason: "response object has no answers object", Excerpt: excerpt(raw)}
	}
	return buildPayload(root), nil
}

func decodeFenced(raw string) (Value, bool) {
	for _, match := range fencePattern.FindAllStringSubmatch(raw, -1) {
		if root, ok := decodeObject(match[1]); ok {
			return root, true
		}
		if root, ok := decodeBalanced(match[1]); ok {
			return root, true
		}
	}
	return Value{}, false
}

// decodeBalanced tries every top-level '{' in order and decodes the span
// up to its matching '}'. Braces inside JSON strings are skipped.
func decodeBalanced(raw string) (Value, bool) {
	offset := 0
	for {
		next := strings.IndexByte(raw[offset:], '{')
		if next < 0 {
			return Value{}, false
		}
		start := offset + next
		if end := matchingBrace(raw, start); end >= 0 {
			if root, ok := decodeObject(raw[start : end+1]); ok {
				return root, true
			}
		}
		offset = start + 1
	}
}

func matchingBrace(raw string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func decodeObject(text string) (Value, bool) {
	var root Value
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &root); err != nil {
		return Value{}, false
	}
	return root, root.Kind == KindObject
}

func excerpt(raw string) string {
	raw = strings.TrimSpace(raw)
	runes := []rune(raw)
	if len(runes) <= excerptLimit {
		return raw
	}
	return string(runes[:excerptLimit]) + "..."
}
