// Package render produces the output artifacts consumed from a Standard
// Record: regenerated XML, MAT, PDF, HTML, plot images and an XLSX batch
// summary. Renderers are thin presentational glue over the canonical
// record; a failure in one format disables only that artifact and is
// reported by the batch driver as a warning, never as a fatal error.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/semidata/plexconv-cli/internal/plecs"
	"github.com/semidata/plexconv-cli/internal/record"
)

// Format names accepted by the export command.
type Format string

const (
	FormatXML  Format = "xml"
	FormatMAT  Format = "mat"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatPlot Format = "plot"
	FormatXLSX Format = "xlsx"
)

// ParseFormats validates a comma-or-slice flag value. An unknown name is an
// error; the caller surfaces it as user input, not a batch failure.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			f := Format(name)
			switch f {
			case FormatXML, FormatMAT, FormatPDF, FormatHTML, FormatPlot, FormatXLSX:
				out = append(out, f)
			default:
				return nil, fmt.Errorf("unknown output format %q (expected xml|mat|pdf|html|plot|xlsx)", name)
			}
		}
	}
	return out, nil
}

// SafeStem derives the output file stem from the record's part number,
// falling back to the source file name.
func SafeStem(rec *record.Record) string {
	stem := rec.Metadata.PartNumber
	if stem == "" {
		stem = strings.TrimSuffix(rec.Metadata.SourceFile, filepath.Ext(rec.Metadata.SourceFile))
	}
	if stem == "" {
		stem = "device"
	}
	stem = strings.ReplaceAll(stem, "-", "_")
	return strings.ReplaceAll(stem, " ", "_")
}

// File renders one per-file artifact and returns the written path. The
// XLSX summary is batch-level and handled separately by the caller.
func File(rec *record.Record, f Format, path string) error {
	switch f {
	case FormatXML:
		return plecs.EncodeFile(rec, path)
	case FormatMAT:
		return WriteMAT(rec, path)
	case FormatPDF:
		return WritePDF(rec, path)
	case FormatHTML:
		return WriteHTML(rec, path)
	case FormatPlot:
		return WritePlots(rec, path)
	default:
		return fmt.Errorf("format %q has no per-file renderer", f)
	}
}

// Ext reports the output extension for a per-file format. Plot output is a
// directory of images keyed by the stem.
func Ext(f Format) string {
	switch f {
	case FormatXML:
		return ".xml"
	case FormatMAT:
		return ".mat"
	case FormatPDF:
		return ".pdf"
	case FormatHTML:
		return ".html"
	case FormatPlot:
		return ""
	default:
		return ""
	}
}
