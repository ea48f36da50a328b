package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/semidata/plexconv-cli/internal/ui"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Fatalf("expected nil logger to be disabled")
	}
	l.Logf("x.xml", "must not panic")
}

func TestLogger_Logf_WritesPrefixFileAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: ui.FgGreen}
	l.Logf("  C2M0025120D.xml  ", "msg %d", 1)

	out := buf.String()
	if !strings.Contains(out, "X:") {
		t.Fatalf("expected prefix, got %q", out)
	}
	if !strings.Contains(out, "file=C2M0025120D.xml") {
		t.Fatalf("expected trimmed file name, got %q", out)
	}
	if !strings.Contains(out, "msg 1") {
		t.Fatalf("expected formatted message, got %q", out)
	}
}

func TestLogger_Logf_EmptyFile_UsesBatch(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:"}
	l.Logf("   ", "x")

	out := buf.String()
	if !strings.Contains(out, "file=(batch)") {
		t.Fatalf("expected batch placeholder, got %q", out)
	}
}

func TestLogger_Logf_DefaultPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf}
	l.Logf("a.xml", "x")

	out := buf.String()
	if !strings.Contains(out, "Log:") {
		t.Fatalf("expected default prefix, got %q", out)
	}
}

func TestLogger_Logf_OmitField(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", OmitFile: true}
	l.Logf("a.xml", "x")

	out := buf.String()
	if out != "X: x\n" {
		t.Fatalf("output = %q, want %q", out, "X: x\\n")
	}
}
