package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/semidata/plexconv-cli/internal/logging"
)

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("b/two.xml")
	mustWrite("a/one.XML") // extension match is case-insensitive
	mustWrite("a/skip.txt")
	mustWrite("three.xml")

	files, err := FindFiles(root, ".xml")
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	want := []string{
		filepath.Join(root, "a/one.XML"),
		filepath.Join(root, "b/two.xml"),
		filepath.Join(root, "three.xml"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("FindFiles = %v, want %v", files, want)
	}
}

func TestRun_OneFailureDoesNotStopBatch(t *testing.T) {
	files := []string{"a.xml", "b.xml", "c.xml", "d.xml"}

	var (
		mu        sync.Mutex
		processed []string
	)
	var buf bytes.Buffer
	log := &logging.Logger{Writer: &buf, PrefixText: "T:"}

	result := Run(context.Background(), files, 2, log, func(path string) error {
		mu.Lock()
		processed = append(processed, path)
		mu.Unlock()
		if path == "b.xml" {
			return errors.New("corrupt input")
		}
		return nil
	})

	if len(processed) != len(files) {
		t.Errorf("processed %d files, want %d", len(processed), len(files))
	}
	if result.Converted != 3 {
		t.Errorf("converted = %d, want 3", result.Converted)
	}
	if result.Errors != 1 {
		t.Errorf("errors = %d, want 1", result.Errors)
	}
	if len(result.Failures) != 1 || result.Failures[0].File != "b.xml" {
		t.Errorf("failures = %+v", result.Failures)
	}
	if !strings.Contains(buf.String(), "corrupt input") {
		t.Errorf("failure not logged: %q", buf.String())
	}
}

func TestRun_NilLoggerIsSafe(t *testing.T) {
	result := Run(context.Background(), []string{"a", "b"}, 1, nil, func(string) error {
		return nil
	})
	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
}

func TestRun_WorkerFloorIsOne(t *testing.T) {
	result := Run(context.Background(), []string{"a"}, 0, nil, func(string) error {
		return nil
	})
	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taken.json")
	if Exists(path) {
		t.Error("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Error("existing file reported as missing")
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "device", ".json")
	if first != filepath.Join(dir, "device.json") {
		t.Errorf("first = %q", first)
	}

	if err := os.WriteFile(first, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	second := UniquePath(dir, "device", ".json")
	if second != filepath.Join(dir, "device_1.json") {
		t.Errorf("second = %q", second)
	}

	if err := os.WriteFile(second, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	third := UniquePath(dir, "device", ".json")
	if third != filepath.Join(dir, "device_2.json") {
		t.Errorf("third = %q", third)
	}
}
