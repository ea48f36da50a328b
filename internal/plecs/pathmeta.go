package plecs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/semidata/plexconv-cli/internal/record"
)

// PathMetadata is the metadata guessed from a source file's location.
// Directory-name matching is inherently fragile, so it lives behind this
// narrow type: the mapper only sees the result, never the heuristics.
type PathMetadata struct {
	Material     string
	Manufacturer string
	PackageType  string
}

// defaultManufacturers are the vendor folder names found in the input tree.
// Underscores map to spaces in the reported name.
var defaultManufacturers = []string{
	"Wolfspeed",
	"Infineon",
	"STMicroelectronics",
	"ON_Semiconductor",
	"Vishay",
	"Littelfuse",
	"Microchip",
	"ROHM",
	"Mitsubishi_Electric",
	"GaN_Systems",
	"Navitas",
	"Power_Integrations",
	"Transphorm",
	"EPC",
}

// Manifest overrides the built-in vendor folder list. Loaded from YAML so
// the heuristic can be retargeted without a rebuild.
type Manifest struct {
	Manufacturers []string `yaml:"manufacturers"`
}

// LoadManifest reads a manufacturer manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// InferPathMetadata scans the path components for material, manufacturer
// and package-type hints. A nil manifest uses the built-in vendor list.
func InferPathMetadata(path string, manifest *Manifest) PathMetadata {
	parts := strings.Split(filepath.ToSlash(path), "/")

	meta := PathMetadata{
		Material:     record.MaterialUnknown,
		Manufacturer: "Unknown",
		PackageType:  record.PackageDiscrete,
	}

	for _, part := range parts {
		switch part {
		case record.MaterialSi, record.MaterialSiC, record.MaterialGaN:
			meta.Material = part
		}
	}

	manufacturers := defaultManufacturers
	if manifest != nil && len(manifest.Manufacturers) > 0 {
		manufacturers = manifest.Manufacturers
	}
	for _, part := range parts {
		for _, m := range manufacturers {
			if part == m {
				meta.Manufacturer = strings.ReplaceAll(m, "_", " ")
			}
		}
	}

	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "module"):
		// covers both "module" and "modules"
		meta.PackageType = record.PackageModule
	case strings.Contains(lower, "mosfets"), strings.Contains(lower, "diode"):
		meta.PackageType = record.PackageDiscrete
	}

	return meta
}
