package ui

import (
	"strings"
	"testing"
)

func TestColorAppliesANSICodes(t *testing.T) {
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorWithEmptyString(t *testing.T) {
	got := Color("", FgCyan)
	want := FgCyan + "" + Reset
	if got != want {
		t.Fatalf("Color(\"\") = %q, want %q", got, want)
	}
}

func TestFormatStatusIncludesMessage(t *testing.T) {
	for _, status := range []string{"success", "error", "warning", "other"} {
		out := FormatStatus(status, "converted 3 files")
		if !strings.Contains(out, "converted 3 files") {
			t.Fatalf("FormatStatus(%q) = %q, missing message", status, out)
		}
	}
}

func TestFormatKeyValueContainsBothParts(t *testing.T) {
	out := FormatKeyValue("Output", "standard_database")
	if !strings.Contains(out, "Output") || !strings.Contains(out, "standard_database") {
		t.Fatalf("FormatKeyValue() = %q", out)
	}
}
