package render

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/semidata/plexconv-cli/internal/record"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []Format
		wantErr bool
	}{
		{name: "single", in: []string{"xml"}, want: []Format{FormatXML}},
		{name: "comma separated", in: []string{"xml,pdf"}, want: []Format{FormatXML, FormatPDF}},
		{name: "repeated with case and spaces", in: []string{" MAT ", "plot"}, want: []Format{FormatMAT, FormatPlot}},
		{name: "empty entries skipped", in: []string{"", "html,"}, want: []Format{FormatHTML}},
		{name: "unknown", in: []string{"docx"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormats(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeStem(t *testing.T) {
	tests := []struct {
		name string
		rec  record.Record
		want string
	}{
		{
			name: "part number with separators",
			rec:  record.Record{Metadata: record.Metadata{PartNumber: "SiHA070N60E-GE3 A"}},
			want: "SiHA070N60E_GE3_A",
		},
		{
			name: "fallback to source file",
			rec:  record.Record{Metadata: record.Metadata{SourceFile: "device-1.xml"}},
			want: "device_1",
		},
		{
			name: "empty record",
			rec:  record.Record{},
			want: "device",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeStem(&tt.rec); got != tt.want {
				t.Errorf("SafeStem = %q, want %q", got, tt.want)
			}
		})
	}
}

func renderTestRecord() *record.Record {
	r := 0.015
	return &record.Record{
		Metadata: record.Metadata{
			Manufacturer: "Wolfspeed",
			PartNumber:   "C2M0025120D",
			Material:     "SiC",
			PackageType:  "discrete",
			SourceFile:   "C2M0025120D.xml",
		},
		Library: record.Library{Version: "1.4"},
		Package: &record.Package{
			Class:      "MOSFET with Diode",
			Vendor:     "Wolfspeed",
			PartNumber: "C2M0025120D",
			SemiconductorData: &record.SemiconductorData{
				Type: "MOSFET with Diode",
				TurnOnLoss: &record.SwitchLoss{
					CurrentAxis:     []float64{0, 25, 50},
					VoltageAxis:     []float64{0, 800},
					TemperatureAxis: []float64{25, 150},
					Energy: &record.Energy{
						Scale: 0.001,
						Data: [][][]float64{
							{{0, 0, 0}, {0.1, 0.4, 0.9}},
							{{0, 0, 0}, {0.2, 0.5, 1.1}},
						},
					},
				},
				ConductionLoss: record.NewConductionLosses([]record.ConductionLoss{{
					CurrentAxis:     []float64{0, 25, 50},
					TemperatureAxis: []float64{25, 150},
					VoltageDrop: &record.VoltageDrop{
						Scale: 1,
						Data:  [][]float64{{0, 0.7, 1.4}, {0, 0.9, 1.8}},
					},
				}}),
			},
			ThermalModel: &record.ThermalModel{
				Type:       "Cauer",
				RCElements: []record.RCElement{{R: &r}},
			},
			Comment: []string{"Datasheet Rev.4, 2023-06-01"},
		},
	}
}

func TestWriteMAT_HeaderAndVariableName(t *testing.T) {
	rec := renderTestRecord()
	path := filepath.Join(t.TempDir(), "out.mat")
	if err := WriteMAT(rec, path); err != nil {
		t.Fatalf("WriteMAT: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 136 {
		t.Fatalf("file too short: %d bytes", len(data))
	}
	if got := string(data[:6]); got != "MATLAB" {
		t.Errorf("description prefix = %q", got)
	}
	if v := binary.LittleEndian.Uint16(data[124:126]); v != 0x0100 {
		t.Errorf("version field = %#x", v)
	}
	if string(data[126:128]) != "IM" {
		t.Errorf("endian indicator = %q", data[126:128])
	}
	// First element is the miMATRIX holding the device struct.
	if typ := binary.LittleEndian.Uint32(data[128:132]); typ != miMATRIX {
		t.Errorf("first element type = %d, want %d", typ, miMATRIX)
	}
}

func TestWriteHTML_ContainsDeviceSections(t *testing.T) {
	rec := renderTestRecord()
	path := filepath.Join(t.TempDir(), "out.html")
	if err := WriteHTML(rec, path); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{"C2M0025120D", "Turn-on loss", "Conduction loss", "Thermal model"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	rec := renderTestRecord()
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := WritePDF(rec, path); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Errorf("output is not a PDF document")
	}
}

func TestWriteSummary_OneRowPerDevice(t *testing.T) {
	recs := []*record.Record{renderTestRecord(), renderTestRecord()}
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	if err := WriteSummary(recs, path); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("summary workbook is empty")
	}
}

func TestWritePlots_WritesPNGPerLossTable(t *testing.T) {
	rec := renderTestRecord()
	prefix := filepath.Join(t.TempDir(), "C2M0025120D")
	if err := WritePlots(rec, prefix); err != nil {
		t.Fatalf("WritePlots: %v", err)
	}
	for _, suffix := range []string{"_eon.png", "_vf.png"} {
		if _, err := os.Stat(prefix + suffix); err != nil {
			t.Errorf("missing plot %s: %v", suffix, err)
		}
	}
	// No turn-off table, so no eoff plot.
	if _, err := os.Stat(prefix + "_eoff.png"); err == nil {
		t.Error("unexpected eoff plot for absent table")
	}
}
