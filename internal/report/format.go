package report

import (
	"fmt"
	"strconv"
	"strings"

	"assessor/internal/document"
	"assessor/internal/engine"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText collapses whitespace and truncates long questions.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 100
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatConfidence renders a confidence as a percentage.
func formatConfidence(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// formatCitation renders a citation on one line.
func formatCitation(citation engine.EvidenceCitation) string {
	line := citation.DocumentName
	if citation.PageOrSection != "" {
		line += " (" + citation.PageOrSection + ")"
	}
	if citation.SourceRole == document.RoleAuxiliary {
		line += " [fourth-party"
		if citation.RelationshipNote != "" {
			line += ": " + citation.RelationshipNote
		}
		line += "]"
	}
	return line + ": \"" + citation.Quote + "\""
}
