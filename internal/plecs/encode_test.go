package plecs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/semidata/plexconv-cli/internal/record"
)

// Encoding then decoding must reproduce the same values; byte layout is
// free to differ.
func TestEncode_DecodeRoundTripIsValueIdempotent(t *testing.T) {
	orig := decodeSample(t)

	out, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(bytes.NewReader(out), DecodeOptions{
		Author: orig.Metadata.Author,
		Now:    time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Decode after Encode: %v", err)
	}

	if !reflect.DeepEqual(back.Library, orig.Library) {
		t.Errorf("library = %+v, want %+v", back.Library, orig.Library)
	}
	if !reflect.DeepEqual(back.Package.Variables, orig.Package.Variables) {
		t.Errorf("variables differ:\n got %+v\nwant %+v", back.Package.Variables, orig.Package.Variables)
	}
	if !reflect.DeepEqual(back.Package.SemiconductorData, orig.Package.SemiconductorData) {
		t.Errorf("semiconductor data differs:\n got %+v\nwant %+v",
			back.Package.SemiconductorData, orig.Package.SemiconductorData)
	}
	if !reflect.DeepEqual(back.Package.ThermalModel, orig.Package.ThermalModel) {
		t.Errorf("thermal model differs:\n got %+v\nwant %+v",
			back.Package.ThermalModel, orig.Package.ThermalModel)
	}
	if !reflect.DeepEqual(back.Package.Comment, orig.Package.Comment) {
		t.Errorf("comment differs:\n got %v\nwant %v", back.Package.Comment, orig.Package.Comment)
	}
}

func TestEncode_PreservesScaleAttributeAndRawValues(t *testing.T) {
	rec := decodeSample(t)

	out, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, `scale="0.001"`) {
		t.Error("energy scale attribute not preserved")
	}
	// Values are written pre-scale; 0.1 must not become 0.0001.
	if !strings.Contains(doc, "0.1 0.4 0.9") {
		t.Error("energy values were rescaled on write")
	}
}

func TestEncode_DefaultsRootAttributes(t *testing.T) {
	rec := decodeSample(t)
	rec.Library.XMLNS = ""
	rec.Library.Version = ""

	out, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, DefaultXMLNS) {
		t.Error("missing default xmlns")
	}
	if !strings.Contains(doc, `version="1.4"`) {
		t.Error("missing default version")
	}
}

func TestEncode_RCElementOrderPreserved(t *testing.T) {
	rec := decodeSample(t)

	out, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc := string(out)
	first := strings.Index(doc, `R="0.015"`)
	second := strings.Index(doc, `R="0.03"`)
	if first < 0 || second < 0 {
		t.Fatalf("RC elements missing from output:\n%s", doc)
	}
	if first > second {
		t.Error("RC element order changed")
	}
}

// An empty-but-present sequence must survive the persisted JSON form, not
// just an in-memory round trip.
func TestEncode_EmptySequencesSurviveJSONHop(t *testing.T) {
	doc := `<SemiconductorLibrary version="1.4">
  <Package class="MOSFET" vendor="Wolfspeed" partnumber="X">
    <Variables></Variables>
    <Comment></Comment>
  </Package>
</SemiconductorLibrary>`

	rec, err := Decode(strings.NewReader(doc), DecodeOptions{Now: time.Now()})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rec.Package.Comment == nil || rec.Package.Variables == nil {
		t.Fatal("empty elements should decode as present-but-empty sequences")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"comment":[]`) {
		t.Fatalf("comment dropped by JSON form: %s", data)
	}
	if !strings.Contains(string(data), `"variables":[]`) {
		t.Fatalf("variables dropped by JSON form: %s", data)
	}

	var back record.Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := Encode(&back)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(out), "<Comment></Comment>") {
		t.Errorf("empty Comment element lost:\n%s", out)
	}
	if !strings.Contains(string(out), "<Variables></Variables>") {
		t.Errorf("empty Variables element lost:\n%s", out)
	}
}

func TestEncodeFile_CreatesParentDirectories(t *testing.T) {
	rec := decodeSample(t)
	path := filepath.Join(t.TempDir(), "nested", "out", "device.xml")

	if err := EncodeFile(rec, path); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Errorf("output missing xml header: %q", data[:20])
	}
}
