package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"assessor/internal/engine"
	"assessor/internal/question"
	"assessor/internal/risk"
)

// RenderText renders a result as a terminal summary.
func RenderText(questions []question.Question, result engine.Result, noColor bool) string {
	var b strings.Builder
	b.WriteString(renderHeader(result, noColor))
	b.WriteString("\n")
	if result.Failure != nil {
		b.WriteString(stylize("Analysis incomplete: "+result.Failure.Reason, noColor, lipgloss.Color("196")))
		b.WriteString("\n")
	}
	b.WriteString(stylize(result.Narrative, noColor, lipgloss.Color("244")))
	b.WriteString("\n\n")

	for i, q := range questions {
		b.WriteString(renderQuestion(i, q, result, noColor))
	}

	writeList(&b, "Risk factors", result.RiskFactors, noColor)
	writeList(&b, "Recommendations", result.Recommendations, noColor)
	return b.String()
}

// renderHeader renders the score line.
func renderHeader(result engine.Result, noColor bool) string {
	line := "Risk " + string(result.RiskLevel) + " | Score " + fmtInt(result.RiskScore) + "/100" +
		" | Documents: " + fmtInt(result.DocumentsAnalyzed)
	if result.RunID != "" {
		line += " | Run " + result.RunID
	}
	return stylize(line, noColor, levelColor(result.RiskLevel))
}

// renderQuestion renders one question with its answer and citations.
func renderQuestion(index int, q question.Question, result engine.Result, noColor bool) string {
	var b strings.Builder
	answer := result.Answers[q.ID]
	b.WriteString(stylize(formatIndex(index)+" "+formatQuestionText(q.Text), noColor, lipgloss.Color("33")))
	b.WriteString("\n")
	b.WriteString("    Answer: " + stylizeAnswer(q, answer, noColor))
	b.WriteString("  Confidence: " + formatConfidence(result.Confidences[q.ID]) + "\n")
	if reasoning := result.Reasoning[q.ID]; reasoning != "" {
		b.WriteString("    " + stylize(reasoning, noColor, lipgloss.Color("244")) + "\n")
	}
	for _, citation := range result.Evidence[q.ID] {
		b.WriteString("    - " + formatCitation(citation) + "\n")
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string, noColor bool) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + stylize(title, noColor, lipgloss.Color("33")) + "\n")
	for _, item := range items {
		b.WriteString("  * " + item + "\n")
	}
}

// stylizeAnswer colors favorable answers green and conservative ones red.
func stylizeAnswer(q question.Question, answer question.Answer, noColor bool) string {
	text := answer.String()
	if q.IsConservative(answer) {
		return stylize(text, noColor, lipgloss.Color("196"))
	}
	return stylize(text, noColor, lipgloss.Color("42"))
}

func levelColor(level risk.Level) lipgloss.Color {
	switch level {
	case risk.LevelLow:
		return lipgloss.Color("42")
	case risk.LevelMedium:
		return lipgloss.Color("220")
	case risk.LevelMediumHigh:
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("196")
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
