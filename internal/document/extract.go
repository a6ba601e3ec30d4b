package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrMalformedEncoding indicates the bytes are not valid UTF-8 or UTF-16.
	ErrMalformedEncoding = errors.New("malformed text encoding")
	// ErrBinaryContent indicates the document holds binary data.
	ErrBinaryContent = errors.New("binary content in text document")
	// ErrNoText indicates the document decoded to no readable text.
	ErrNoText = errors.New("document contains no text")
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Extract decodes the text of a text-extractable document.
func Extract(doc Input, mediaType string) (string, error) {
	text, err := decodeText(doc.Bytes)
	if err != nil {
		return "", err
	}
	if mediaType == "text/html" {
		text, err = htmlText(text)
		if err != nil {
			return "", fmt.Errorf("parse html: %w", err)
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		data = data[len(utf8BOM):]
	case bytes.HasPrefix(data, utf16LEBOM), bytes.HasPrefix(data, utf16BEBOM):
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
		}
		data = decoded
	}
	if !utf8.Valid(data) {
		return "", ErrMalformedEncoding
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", ErrBinaryContent
	}
	return string(data), nil
}

func htmlText(source string) (string, error) {
	root, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if node.Type == html.TextNode {
			if text := strings.Join(strings.Fields(node.Data), " "); text != "" {
				if builder.Len() > 0 {
					builder.WriteByte('\n')
				}
				builder.WriteString(text)
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return builder.String(), nil
}
