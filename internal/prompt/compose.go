package prompt

import (
	"fmt"
	"strings"

	"assessor/internal/document"
	"assessor/internal/generator"
	"assessor/internal/question"
)

// DefaultMaxDocumentChars bounds the inlined text of a single document.
const DefaultMaxDocumentChars = 200_000

// Options tunes prompt composition.
type Options struct {
	MaxDocumentChars int
}

// Compose builds the single generation request for an analysis run. Text
// documents are inlined, Primary before Auxiliary, and attachable documents
// are listed in a manifest and passed as attachments.
func Compose(docs []document.Prepared, questions []question.Question, label string, opts Options) generator.Request {
	limit := opts.MaxDocumentChars
	if limit <= 0 {
		limit = DefaultMaxDocumentChars
	}

	var builder strings.Builder
	writeInstructions(&builder, label)
	writeDocuments(&builder, docs, document.RolePrimary, limit)
	writeDocuments(&builder, docs, document.RoleAuxiliary, limit)
	attachments := writeManifest(&builder, docs)
	writeQuestions(&builder, questions)
	writeOutputShape(&builder, questions)

	return generator.Request{Prompt: builder.String(), Attachments: attachments}
}

func writeInstructions(builder *strings.Builder, label string) {
	builder.WriteString("You are a security and vendor risk analyst completing a risk assessment")
	if label = strings.TrimSpace(label); label != "" {
		fmt.Fprintf(builder, " for %q", label)
	}
	builder.WriteString(".\n")
	builder.WriteString("Answer every question using only the documents provided below and in the attachments.\n\n")
	builder.WriteString("Rules:\n")
	builder.WriteString("1. Respond with a single JSON object and nothing else. Do not wrap it in markdown fences and do not add prose before or after it.\n")
	builder.WriteString("2. Before concluding that evidence is absent, scan every provided document exhaustively for the concept each question asks about, including synonyms and related terminology.\n")
	builder.WriteString("3. Every evidence quote must be a literal excerpt copied from a document. Never paraphrase, summarize, or cite a document title as a quote.\n")
	builder.WriteString("4. Documents are PRIMARY (controlled by the assessed organization) or AUXILIARY (fourth-party sources outside the direct relationship). Prefer PRIMARY evidence.\n")
	builder.WriteString("5. Use AUXILIARY evidence only when no PRIMARY evidence exists, and label such citations with documentType \"Auxiliary\".\n")
	builder.WriteString("6. If no document supports an answer, give the most conservative answer, an empty evidence list, and say so in the reasoning.\n")
	builder.WriteString("7. Confidence is a number between 0 and 1 reflecting how directly the evidence supports the answer.\n\n")
}

func writeDocuments(builder *strings.Builder, docs []document.Prepared, role document.Role, limit int) {
	header := false
	for _, doc := range docs {
		if doc.Class != document.ClassTextExtract || !doc.Extracted || doc.Input.Role != role {
			continue
		}
		if !header {
			fmt.Fprintf(builder, "=== %s DOCUMENTS ===\n", strings.ToUpper(string(role)))
			header = true
		}
		fmt.Fprintf(builder, "--- BEGIN DOCUMENT: %s (%s, %s)", doc.Input.FileName, doc.MediaType, role)
		if doc.Input.RelationshipNote != "" {
			fmt.Fprintf(builder, " relationship: %s", doc.Input.RelationshipNote)
		}
		builder.WriteString(" ---\n")
		text, truncated := truncate(doc.Text, limit)
		builder.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			builder.WriteByte('\n')
		}
		if truncated {
			fmt.Fprintf(builder, "[document truncated after %d characters]\n", limit)
		}
		fmt.Fprintf(builder, "--- END DOCUMENT: %s ---\n\n", doc.Input.FileName)
	}
}

func writeManifest(builder *strings.Builder, docs []document.Prepared) []generator.Attachment {
	var attachments []generator.Attachment
	for _, doc := range docs {
		if doc.Class != document.ClassDirectAttach {
			continue
		}
		if len(attachments) == 0 {
			builder.WriteString("=== ATTACHED DOCUMENTS ===\n")
		}
		fmt.Fprintf(builder, "- %s (%s, %s)", doc.Input.FileName, doc.MediaType, doc.Input.Role)
		if doc.Input.RelationshipNote != "" {
			fmt.Fprintf(builder, " relationship: %s", doc.Input.RelationshipNote)
		}
		builder.WriteByte('\n')
		attachments = append(attachments, generator.Attachment{
			Name:      doc.Input.FileName,
			MediaType: doc.MediaType,
			Data:      doc.Input.Bytes,
		})
	}
	if len(attachments) > 0 {
		builder.WriteByte('\n')
	}
	return attachments
}

func writeQuestions(builder *strings.Builder, questions []question.Question) {
	builder.WriteString("=== QUESTIONS ===\n")
	for i, q := range questions {
		fmt.Fprintf(builder, "%d. [id: %s] [type: %s] %s\n", i+1, q.ID, q.Type, q.Text)
		switch q.Type {
		case question.TypeBoolean:
			builder.WriteString("   Answer with true or false.\n")
		case question.TypeChoice:
			builder.WriteString("   Answer with exactly one of these options, ordered from least to most favorable:\n")
			for _, option := range q.Options {
				fmt.Fprintf(builder, "   - %s\n", option)
			}
		case question.TypeFreeText:
			builder.WriteString("   Answer with a short free-text statement.\n")
		}
	}
	builder.WriteByte('\n')
}

func writeOutputShape(builder *strings.Builder, questions []question.Question) {
	example := "q1"
	if len(questions) > 0 {
		example = questions[0].ID
	}
	builder.WriteString("=== OUTPUT FORMAT ===\n")
	builder.WriteString("Return exactly one JSON object with these four keys, each keyed by question id:\n")
	builder.WriteString("{\n")
	fmt.Fprintf(builder, "  \"answers\": {\"%s\": <true|false|\"option\"|\"text\">},\n", example)
	fmt.Fprintf(builder, "  \"confidence\": {\"%s\": <number between 0 and 1>},\n", example)
	fmt.Fprintf(builder, "  \"reasoning\": {\"%s\": \"<one or two sentences>\"},\n", example)
	fmt.Fprintf(builder, "  \"evidence\": {\"%s\": [\n", example)
	builder.WriteString("    {\"fileName\": \"<document name>\", \"quote\": \"<literal excerpt>\", \"pageNumber\": <page number or section name>, \"relevance\": \"<why this quote supports the answer>\", \"documentType\": \"Primary|Auxiliary\", \"documentRelationship\": \"<relationship note for auxiliary documents>\"}\n")
	builder.WriteString("  ]}\n")
	builder.WriteString("}\n")
	builder.WriteString("Include every question id in all four objects. Use an empty list when there is no evidence.\n")
}

func truncate(text string, limit int) (string, bool) {
	if len(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]), true
}
