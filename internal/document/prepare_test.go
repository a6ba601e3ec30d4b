package document

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestPrepareKeepsInputOrder verifies parallel extraction merges by index.
func TestPrepareKeepsInputOrder(t *testing.T) {
	docs := make([]Input, 0, 40)
	for i := 0; i < 40; i++ {
		docs = append(docs, Input{FileName: fmt.Sprintf("doc-%02d.txt", i), Bytes: []byte(fmt.Sprintf("content %d", i))})
	}
	prepared := Prepare(docs, 4)
	if len(prepared) != len(docs) {
		t.Fatalf("expected %d results, got %d", len(docs), len(prepared))
	}
	for i, p := range prepared {
		if p.Input.FileName != docs[i].FileName {
			t.Fatalf("result %d: expected %s, got %s", i, docs[i].FileName, p.Input.FileName)
		}
		if p.Text != fmt.Sprintf("content %d", i) {
			t.Fatalf("result %d: unexpected text %q", i, p.Text)
		}
		if p.Input.Role != RolePrimary {
			t.Fatalf("result %d: expected default primary role, got %q", i, p.Input.Role)
		}
	}
}

// TestSummarizeCountsOutcomes verifies prepared documents are tallied per outcome.
func TestSummarizeCountsOutcomes(t *testing.T) {
	prepared := Prepare([]Input{
		{FileName: "soc2.pdf", Bytes: []byte("%PDF-1.7")},
		{FileName: "policy.md", Bytes: []byte("# Policy")},
		{FileName: "broken.txt", Bytes: []byte{0xC3, 0x28, 0xA0}},
		{FileName: "sheet.xlsx"},
	}, 2)
	summary := Summarize(prepared)
	if summary.Submitted != 4 || summary.Attached != 1 || summary.Extracted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Failed) != 1 || summary.Failed[0] != "broken.txt" {
		t.Fatalf("unexpected failed list: %+v", summary.Failed)
	}
	if len(summary.Unsupported) != 1 || summary.Unsupported[0] != "sheet.xlsx" {
		t.Fatalf("unexpected unsupported list: %+v", summary.Unsupported)
	}
	if summary.Usable() != 2 {
		t.Fatalf("expected 2 usable documents, got %d", summary.Usable())
	}
}

// TestLoadFile verifies documents load from disk with a media type.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.csv")
	if err := os.WriteFile(path, []byte("control,status\nmfa,enabled\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := LoadFile(path, RoleAuxiliary, " hosting provider ")
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.FileName != "controls.csv" || doc.MediaType != "text/csv" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Role != RoleAuxiliary || doc.RelationshipNote != "hosting provider" {
		t.Fatalf("unexpected role or note: %+v", doc)
	}
}
