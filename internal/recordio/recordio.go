// Package recordio reads and writes Standard and V2 Records as JSON files.
package recordio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/semidata/plexconv-cli/internal/record"
)

// ReadRecord reads a Standard Record from a JSON file.
func ReadRecord(path string) (*record.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec := new(record.Record)
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// WriteRecord writes a Standard Record as indented UTF-8 JSON, creating
// parent directories as needed. Struct field order plus sorted map keys
// give the stable key order downstream diff tooling expects.
func WriteRecord(rec *record.Record, path string) error {
	return writeJSON(rec, path)
}

// ReadV2 reads a V2 Record from a JSON file.
func ReadV2(path string) (*record.V2Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec := new(record.V2Record)
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode v2 record %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// WriteV2 writes a V2 Record as indented UTF-8 JSON.
func WriteV2(rec *record.V2Record, path string) error {
	return writeJSON(rec, path)
}

func writeJSON(v any, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
