package recordio

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/semidata/plexconv-cli/internal/record"
)

func TestWriteRecord_ReadRecordRoundTrip(t *testing.T) {
	rec := &record.Record{
		Metadata: record.Metadata{
			Manufacturer: "Wolfspeed",
			PartNumber:   "C2M0025120D",
			Material:     "SiC",
		},
		Library: record.Library{Version: "1.4"},
		Package: &record.Package{
			PartNumber: "C2M0025120D",
			SemiconductorData: &record.SemiconductorData{
				Type: "MOSFET with Diode",
				ConductionLoss: record.NewConductionLosses([]record.ConductionLoss{{
					Gate:        "on",
					CurrentAxis: []float64{0, 25},
				}}),
			},
		},
	}

	path := filepath.Join(t.TempDir(), "sub", "rec.json")
	if err := WriteRecord(rec, path); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	back, err := ReadRecord(path)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Errorf("round trip:\n got %+v\nwant %+v", back, rec)
	}
}

func TestWriteRecord_OutputIsIndentedWithoutHTMLEscapes(t *testing.T) {
	rec := &record.Record{
		Metadata: record.Metadata{Manufacturer: "A <&> B"},
	}
	path := filepath.Join(t.TempDir(), "rec.json")
	if err := WriteRecord(rec, path); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  \"metadata\"") {
		t.Error("output not indented")
	}
	if !strings.Contains(text, "A <&> B") {
		t.Error("HTML escaping should be disabled")
	}
}

func TestWriteV2_ReadV2RoundTrip(t *testing.T) {
	v2 := &record.V2Record{
		DeviceID: "wolfspeed_c2m0025120d",
		Identity: record.Identity{Manufacturer: "Wolfspeed", PartNumber: "C2M0025120D", Aliases: []string{}},
		Ratings:  record.Ratings{TjMax: record.ValueUnit{Value: 175, Unit: "C"}},
		Variables: map[string]record.V2Variable{
			"rg_on": {Description: "gate resistance", Unit: "ohm"},
		},
		Revision: record.Revision{Version: "2.0", Serial: "s", Date: "2024-03-01"},
	}

	path := filepath.Join(t.TempDir(), "v2.json")
	if err := WriteV2(v2, path); err != nil {
		t.Fatalf("WriteV2: %v", err)
	}
	back, err := ReadV2(path)
	if err != nil {
		t.Fatalf("ReadV2: %v", err)
	}
	if !reflect.DeepEqual(back, v2) {
		t.Errorf("round trip:\n got %+v\nwant %+v", back, v2)
	}
}

func TestReadRecord_MalformedJSONNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadRecord(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("error should name the file, got %v", err)
	}
}
