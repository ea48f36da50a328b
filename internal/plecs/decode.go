package plecs

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/semidata/plexconv-cli/internal/record"
)

// DecodeOptions carries the ambient inputs of a conversion as explicit
// parameters: provenance author, clock, the root directory used for
// relative source paths, and an optional manufacturer manifest.
type DecodeOptions struct {
	Author   string
	Now      time.Time
	Root     string
	Manifest *Manifest
}

// DecodeFile converts one vendor XML file into a Standard Record. Malformed
// XML or a non-numeric axis token fails the whole file; the caller is
// responsible for logging and continuing its batch.
func DecodeFile(path string, opts DecodeOptions) (*record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	meta := InferPathMetadata(path, opts.Manifest)
	applyPathMetadata(rec, meta)
	rec.Metadata.SourceFile = filepath.Base(path)
	rec.Metadata.SourcePath = relativeSourcePath(path, opts.Root)

	// The XML vendor attribute wins over the path-derived manufacturer.
	if rec.Package != nil && rec.Package.Vendor != "" {
		rec.Metadata.Manufacturer = rec.Package.Vendor
	}
	return rec, nil
}

// Decode converts a vendor XML document into a Standard Record. Path-based
// metadata is left at its defaults; DecodeFile fills it in.
func Decode(r io.Reader, opts DecodeOptions) (*record.Record, error) {
	var doc libraryXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	rec := &record.Record{
		Metadata: record.Metadata{
			Manufacturer: "Unknown",
			Type:         "Unknown",
			Material:     record.MaterialUnknown,
			PackageType:  record.PackageDiscrete,
			Author:       opts.Author,
			Date:         opts.Now.Format("2006-01-02 15:04:05"),
		},
		Library: record.Library{
			XMLNS:   doc.XMLNS,
			Version: doc.Version,
		},
	}

	if doc.Package == nil {
		return rec, nil
	}
	p := doc.Package

	if p.Class != "" {
		rec.Metadata.Type = p.Class
	}
	if p.Vendor != "" {
		rec.Metadata.Manufacturer = p.Vendor
	}
	rec.Metadata.PartNumber = p.PartNumber

	pkg := &record.Package{
		Class:      p.Class,
		Vendor:     p.Vendor,
		PartNumber: p.PartNumber,
	}

	if p.Variables != nil {
		pkg.Variables = decodeVariables(p.Variables)
	}
	if p.SemiconductorData != nil {
		sd, err := decodeSemiData(p.SemiconductorData)
		if err != nil {
			return nil, err
		}
		pkg.SemiconductorData = sd
	}
	if p.ThermalModel != nil {
		tm, err := decodeThermal(p.ThermalModel)
		if err != nil {
			return nil, err
		}
		pkg.ThermalModel = tm
	}
	if p.Comment != nil {
		lines := make([]string, 0, len(p.Comment.Lines))
		for _, l := range p.Comment.Lines {
			lines = append(lines, l.Text)
		}
		pkg.Comment = lines
	}

	rec.Package = pkg
	return rec, nil
}

func applyPathMetadata(rec *record.Record, meta PathMetadata) {
	rec.Metadata.Material = meta.Material
	rec.Metadata.Manufacturer = meta.Manufacturer
	rec.Metadata.PackageType = meta.PackageType
}

// relativeSourcePath reports path relative to root, or "" when the file is
// not under root.
func relativeSourcePath(path, root string) string {
	if root == "" {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

func decodeVariables(vars *variablesXML) []record.Variable {
	out := make([]record.Variable, 0, len(vars.Variables))
	for _, v := range vars.Variables {
		out = append(out, record.Variable{
			Name:        strings.TrimSpace(v.Name),
			Description: strings.TrimSpace(v.Description),
			Default:     parseOptionalValue(v.DefaultValue),
			Min:         parseOptionalValue(v.MinValue),
			Max:         parseOptionalValue(v.MaxValue),
		})
	}
	return out
}

// parseOptionalValue keeps the trimmed literal when the float parse fails.
// This is a deliberate permissive fallback, not an error path.
func parseOptionalValue(s *string) *record.Value {
	if s == nil {
		return nil
	}
	return record.ParseValue(*s)
}

func decodeSemiData(sd *semiDataXML) (*record.SemiconductorData, error) {
	out := &record.SemiconductorData{Type: sd.Type}

	if sd.TurnOnLoss != nil {
		loss, err := decodeSwitchLoss(sd.TurnOnLoss)
		if err != nil {
			return nil, fmt.Errorf("TurnOnLoss: %w", err)
		}
		out.TurnOnLoss = loss
	}
	if sd.TurnOffLoss != nil {
		loss, err := decodeSwitchLoss(sd.TurnOffLoss)
		if err != nil {
			return nil, fmt.Errorf("TurnOffLoss: %w", err)
		}
		out.TurnOffLoss = loss
	}

	blocks := make([]record.ConductionLoss, 0, len(sd.ConductionLoss))
	for i, c := range sd.ConductionLoss {
		block, err := decodeConductionLoss(&c)
		if err != nil {
			return nil, fmt.Errorf("ConductionLoss[%d]: %w", i, err)
		}
		blocks = append(blocks, *block)
	}
	out.ConductionLoss = record.NewConductionLosses(blocks)

	return out, nil
}

func decodeSwitchLoss(l *lossXML) (*record.SwitchLoss, error) {
	out := &record.SwitchLoss{
		ComputationMethod: textOf(l.ComputationMethod),
		Formula:           textOf(l.Formula),
	}

	var err error
	if out.CurrentAxis, err = parseOptionalAxis(l.CurrentAxis); err != nil {
		return nil, err
	}
	if out.VoltageAxis, err = parseOptionalAxis(l.VoltageAxis); err != nil {
		return nil, err
	}
	if out.TemperatureAxis, err = parseOptionalAxis(l.TemperatureAxis); err != nil {
		return nil, err
	}

	if l.Energy != nil {
		scale, err := parseScale(l.Energy.Scale)
		if err != nil {
			return nil, err
		}
		data, err := ParseEnergyTable(l.Energy.Temperatures)
		if err != nil {
			return nil, err
		}
		out.Energy = &record.Energy{Scale: scale, Data: data}
	}
	return out, nil
}

func decodeConductionLoss(l *lossXML) (*record.ConductionLoss, error) {
	out := &record.ConductionLoss{
		Gate:              l.Gate,
		ComputationMethod: textOf(l.ComputationMethod),
		Formula:           textOf(l.Formula),
	}

	var err error
	if out.CurrentAxis, err = parseOptionalAxis(l.CurrentAxis); err != nil {
		return nil, err
	}
	if out.TemperatureAxis, err = parseOptionalAxis(l.TemperatureAxis); err != nil {
		return nil, err
	}

	if l.VoltageDrop != nil {
		scale, err := parseScale(l.VoltageDrop.Scale)
		if err != nil {
			return nil, err
		}
		data, err := ParseVoltageDropTable(l.VoltageDrop.Temperatures)
		if err != nil {
			return nil, err
		}
		out.VoltageDrop = &record.VoltageDrop{Scale: scale, Data: data}
	}
	return out, nil
}

func decodeThermal(t *thermalXML) (*record.ThermalModel, error) {
	if t.Branch == nil {
		return &record.ThermalModel{}, nil
	}
	out := &record.ThermalModel{
		Type:       t.Branch.Type,
		RCElements: make([]record.RCElement, 0, len(t.Branch.RCElements)),
	}
	for i, rc := range t.Branch.RCElements {
		elem := record.RCElement{}
		var err error
		if elem.R, err = parseOptionalFloat(rc.R); err != nil {
			return nil, fmt.Errorf("RCElement[%d] R: %w", i, err)
		}
		if elem.C, err = parseOptionalFloat(rc.C); err != nil {
			return nil, fmt.Errorf("RCElement[%d] C: %w", i, err)
		}
		out.RCElements = append(out.RCElements, elem)
	}
	return out, nil
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func parseOptionalAxis(s *string) ([]float64, error) {
	if s == nil {
		return nil, nil
	}
	return ParseAxis(*s)
}

func parseScale(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1.0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("scale attribute %q: %w", s, err)
	}
	return v, nil
}

func parseOptionalFloat(s *string) (*float64, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
