package question

import (
	"encoding/json"
	"testing"
)

// TestConservativeDefaults verifies the conservative value per question type.
func TestConservativeDefaults(t *testing.T) {
	boolean := Question{ID: "b", Type: TypeBoolean}
	if got := boolean.Conservative(); got.Type != TypeBoolean || got.Bool {
		t.Fatalf("expected false, got %+v", got)
	}
	choice := Question{ID: "c", Type: TypeChoice, Options: []string{"None", "Partial", "Full"}}
	if got := choice.Conservative(); got.Text != "None" {
		t.Fatalf("expected first option, got %+v", got)
	}
	free := Question{ID: "f", Type: TypeFreeText}
	if got := free.Conservative(); got.Text != NotEvidencedMarker {
		t.Fatalf("expected marker, got %+v", got)
	}
	if !choice.IsConservative(TextAnswer(TypeChoice, "None")) {
		t.Fatalf("expected first option to be conservative")
	}
	if boolean.IsConservative(BoolAnswer(true)) {
		t.Fatalf("expected true not to be conservative")
	}
}

// TestAdmitText verifies textual claims are mapped to admissible answers.
func TestAdmitText(t *testing.T) {
	boolean := Question{Type: TypeBoolean}
	if got, ok := boolean.AdmitText(" Yes "); !ok || !got.Bool {
		t.Fatalf("expected yes to admit true, got %+v %v", got, ok)
	}
	if _, ok := boolean.AdmitText("probably"); ok {
		t.Fatalf("expected unknown boolean text to be rejected")
	}
	choice := Question{Type: TypeChoice, Options: []string{"None", "Annual"}}
	got, ok := choice.AdmitText("annual")
	if !ok || got.Text != "Annual" {
		t.Fatalf("expected canonical option, got %+v %v", got, ok)
	}
	if _, ok := choice.AdmitText("Quarterly"); ok {
		t.Fatalf("expected undeclared option to be rejected")
	}
	if _, ok := choice.AdmitBool(true); ok {
		t.Fatalf("expected boolean claim to be rejected for choice question")
	}
}

// TestAnswerJSON verifies answers encode as booleans or strings.
func TestAnswerJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]Answer{
		"a": BoolAnswer(true),
		"b": TextAnswer(TypeChoice, "Annual"),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"a":true,"b":"Annual"}` {
		t.Fatalf("unexpected json: %s", payload)
	}
}
