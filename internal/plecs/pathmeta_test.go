package plecs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/semidata/plexconv-cli/internal/record"
)

func TestInferPathMetadata(t *testing.T) {
	tests := []struct {
		name string
		path string
		want PathMetadata
	}{
		{
			name: "material vendor and discrete",
			path: "data/SiC/Wolfspeed/MOSFETs/C2M0025120D.xml",
			want: PathMetadata{Material: "SiC", Manufacturer: "Wolfspeed", PackageType: record.PackageDiscrete},
		},
		{
			name: "modules folder",
			path: "data/SiC/Wolfspeed/Modules/CAB450M12XM3.xml",
			want: PathMetadata{Material: "SiC", Manufacturer: "Wolfspeed", PackageType: record.PackageModule},
		},
		{
			name: "underscored vendor maps to spaced name",
			path: "lib/Si/ON_Semiconductor/diodes/x.xml",
			want: PathMetadata{Material: "Si", Manufacturer: "ON Semiconductor", PackageType: record.PackageDiscrete},
		},
		{
			name: "gan folder",
			path: "GaN/GaN_Systems/parts/y.xml",
			want: PathMetadata{Material: "GaN", Manufacturer: "GaN Systems", PackageType: record.PackageDiscrete},
		},
		{
			name: "nothing recognized",
			path: "incoming/misc/z.xml",
			want: PathMetadata{Material: record.MaterialUnknown, Manufacturer: "Unknown", PackageType: record.PackageDiscrete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferPathMetadata(tt.path, nil)
			if got != tt.want {
				t.Errorf("InferPathMetadata(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestInferPathMetadata_ManifestOverridesVendorList(t *testing.T) {
	manifest := &Manifest{Manufacturers: []string{"Acme_Power"}}

	got := InferPathMetadata("SiC/Acme_Power/devices/a.xml", manifest)
	if got.Manufacturer != "Acme Power" {
		t.Errorf("manufacturer = %q, want manifest vendor", got.Manufacturer)
	}

	// The built-in list is replaced, not extended.
	got = InferPathMetadata("SiC/Wolfspeed/devices/a.xml", manifest)
	if got.Manufacturer != "Unknown" {
		t.Errorf("manufacturer = %q, want Unknown with manifest active", got.Manufacturer)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := "manufacturers:\n  - Acme_Power\n  - Wolfspeed\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Manufacturers) != 2 || m.Manufacturers[0] != "Acme_Power" {
		t.Errorf("manufacturers = %v", m.Manufacturers)
	}
}

func TestLoadManifest_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte("manufacturers: [unclosed"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDecodeFile_PathMetadataAndProvenance(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "SiC", "Wolfspeed", "Modules")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "device.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := DecodeFile(path, DecodeOptions{
		Author: "tester",
		Now:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Root:   root,
	})
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if rec.Metadata.Material != "SiC" {
		t.Errorf("material = %q", rec.Metadata.Material)
	}
	if rec.Metadata.PackageType != record.PackageModule {
		t.Errorf("package type = %q", rec.Metadata.PackageType)
	}
	// The XML vendor attribute wins over the path-derived manufacturer.
	if rec.Metadata.Manufacturer != "Wolfspeed" {
		t.Errorf("manufacturer = %q", rec.Metadata.Manufacturer)
	}
	if rec.Metadata.SourceFile != "device.xml" {
		t.Errorf("source file = %q", rec.Metadata.SourceFile)
	}
	if rec.Metadata.SourcePath != "SiC/Wolfspeed/Modules/device.xml" {
		t.Errorf("source path = %q", rec.Metadata.SourcePath)
	}
}
