package taxonomy

import (
	"strings"
	"unicode"
)

const minSignificantWordLen = 4

var stopWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "also": {}, "been": {}, "being": {},
	"company": {}, "describe": {}, "does": {}, "each": {}, "from": {}, "have": {},
	"into": {}, "more": {}, "organization": {}, "other": {}, "over": {}, "provide": {},
	"such": {}, "than": {}, "that": {}, "their": {}, "them": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "vendor": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "with": {}, "within": {},
	"would": {}, "your": {},
}

// SignificantWords returns the distinct lowercase words of text that are at
// least four letters long and not stop words, in order of appearance.
func SignificantWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var words []string
	seen := map[string]struct{}{}
	for _, field := range fields {
		if len([]rune(field)) < minSignificantWordLen {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		words = append(words, field)
	}
	return words
}
