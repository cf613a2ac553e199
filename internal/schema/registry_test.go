package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAccepts(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		want     string
		expected bool
	}{
		{"exact match", "lambdalisten.error/v1", "lambdalisten.error/v1", true},
		{"minor version", "lambdalisten.error/v1.1", "lambdalisten.error/v1", true},
		{"patch version", "lambdalisten.error/v1.0.1", "lambdalisten.error/v1", true},
		{"major mismatch", "lambdalisten.error/v2", "lambdalisten.error/v1", false},
		{"missing version", "lambdalisten.error", "lambdalisten.error/v1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accepts(tt.got, tt.want); got != tt.expected {
				t.Errorf("Accepts(%q, %q) = %v, want %v", tt.got, tt.want, got, tt.expected)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		tag    string
		family string
		major  int
		ok     bool
	}{
		{"lambdalisten.error/v1", "lambdalisten.error", 1, true},
		{"lambdalisten.error/v1.2", "lambdalisten.error", 1, true},
		{"lambdalisten.manifest/v3", "lambdalisten.manifest", 3, true},
		{"lambdalisten.error", "", 0, false},
		{"lambdalisten.error/1", "", 0, false},
		{"lambdalisten.error/v", "", 0, false},
		{"lambdalisten.error/vx", "", 0, false},
		{"/v1", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseVersion(tt.tag)
			if ok != tt.ok {
				t.Fatalf("ParseVersion(%q) ok = %v, want %v", tt.tag, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Family != tt.family || got.Major != tt.major {
				t.Errorf("ParseVersion(%q) = %+v, want {%s %d}", tt.tag, got, tt.family, tt.major)
			}
		})
	}
}

func TestMarshalDeterministic(t *testing.T) {
	data := map[string]interface{}{
		"zebra":  "last",
		"alpha":  "first",
		"middle": "middle",
	}

	result, err := MarshalDeterministic(data)
	if err != nil {
		t.Fatalf("MarshalDeterministic failed: %v", err)
	}

	expected := `{"alpha":"first","middle":"middle","zebra":"last"}`
	if string(result) != expected {
		t.Errorf("got %s, want %s", string(result), expected)
	}
}

func TestMarshalDeterministicNested(t *testing.T) {
	data := map[string]interface{}{
		"outer2": map[string]interface{}{
			"inner2": 2,
			"inner1": 1,
		},
		"outer1": "value",
	}

	result, err := MarshalDeterministic(data)
	if err != nil {
		t.Fatalf("MarshalDeterministic failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}

	str := string(result)
	if !strings.Contains(str, `"outer1":"value"`) ||
		!strings.Contains(str, `"inner1":1`) ||
		!strings.Contains(str, `"inner2":2`) {
		t.Errorf("keys not in expected order: %s", str)
	}
}

func TestFormatJSON(t *testing.T) {
	data := []byte(`{"test":"value","number":42}`)

	SetCompactModeForTest(t, false)
	result, err := FormatJSON(data)
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	if !strings.Contains(string(result), "\n") {
		t.Error("expected pretty format with newlines")
	}

	SetCompactModeForTest(t, true)
	result, err = FormatJSON(data)
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	if strings.Contains(string(result), "\n") {
		t.Error("expected compact format without newlines")
	}
}

// SetCompactModeForTest sets CompactMode and restores the prior value
// when t completes, so later tests never see the mutation leak across
// table entries.
func SetCompactModeForTest(t *testing.T, enabled bool) {
	t.Helper()
	prev := CompactMode
	CompactMode = enabled
	t.Cleanup(func() { CompactMode = prev })
}

func TestMustValidate(t *testing.T) {
	data := map[string]interface{}{
		"schema":  "lambdalisten.error/v1",
		"message": "test error",
	}

	if err := MustValidate(ErrorV1, data); err != nil {
		t.Errorf("MustValidate failed for valid schema: %v", err)
	}

	data["schema"] = "lambdalisten.test/v1"
	if err := MustValidate(ErrorV1, data); err == nil {
		t.Error("MustValidate should have failed for mismatched schema")
	}

	delete(data, "schema")
	if err := MustValidate(ErrorV1, data); err != nil {
		t.Error("MustValidate should pass when schema field is missing (no-op)")
	}
}
