package plecs

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/semidata/plexconv-cli/internal/record"
)

// Default root attributes used when a record carries none. Matches the
// vendor library the input files come from.
const (
	DefaultXMLNS   = "http://www.plexim.com/xml/semiconductors/"
	DefaultVersion = "1.4"
)

// EncodeFile writes a Standard Record back to vendor XML, creating parent
// directories as needed.
func EncodeFile(rec *record.Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := Encode(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Encode renders a Standard Record as an indented vendor XML document.
// Absent record fields omit the corresponding node or attribute entirely;
// sequences that are present but empty still emit an empty parent element.
// Textual formatting is cosmetic: round-trip correctness is value-level,
// not byte-level.
func Encode(rec *record.Record) ([]byte, error) {
	doc := buildDocument(rec)
	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func buildDocument(rec *record.Record) *libraryXML {
	doc := &libraryXML{
		XMLNS:   rec.Library.XMLNS,
		Version: rec.Library.Version,
	}
	if doc.XMLNS == "" {
		doc.XMLNS = DefaultXMLNS
	}
	if doc.Version == "" {
		doc.Version = DefaultVersion
	}
	if rec.Package == nil {
		return doc
	}
	p := rec.Package

	pkg := &packageXML{
		Class:      p.Class,
		Vendor:     fallback(p.Vendor, rec.Metadata.Manufacturer),
		PartNumber: fallback(p.PartNumber, rec.Metadata.PartNumber),
	}

	if p.Variables != nil {
		vars := &variablesXML{}
		for _, v := range p.Variables {
			vars.Variables = append(vars.Variables, variableXML{
				Name:         v.Name,
				Description:  v.Description,
				DefaultValue: optionalText(v.Default),
				MinValue:     optionalText(v.Min),
				MaxValue:     optionalText(v.Max),
			})
		}
		pkg.Variables = vars
	}

	if sd := p.SemiconductorData; sd != nil {
		out := &semiDataXML{Type: sd.Type}
		if sd.TurnOnLoss != nil {
			out.TurnOnLoss = encodeSwitchLoss(sd.TurnOnLoss)
		}
		if sd.TurnOffLoss != nil {
			out.TurnOffLoss = encodeSwitchLoss(sd.TurnOffLoss)
		}
		for _, c := range sd.ConductionLoss.All() {
			out.ConductionLoss = append(out.ConductionLoss, *encodeConductionLoss(&c))
		}
		pkg.SemiconductorData = out
	}

	if tm := p.ThermalModel; tm != nil {
		branch := &branchXML{Type: tm.Type}
		for _, rc := range tm.RCElements {
			branch.RCElements = append(branch.RCElements, rcElementXML{
				R: optionalFloatText(rc.R),
				C: optionalFloatText(rc.C),
			})
		}
		pkg.ThermalModel = &thermalXML{Branch: branch}
	}

	if p.Comment != nil {
		comment := &commentXML{Lines: make([]lineXML, 0, len(p.Comment))}
		for _, line := range p.Comment {
			comment.Lines = append(comment.Lines, lineXML{Text: line})
		}
		pkg.Comment = comment
	}

	doc.Package = pkg
	return doc
}

// encodeSwitchLoss writes raw pre-scale data with the scale attribute
// preserved verbatim, so decode(encode(rec)) reproduces the same values.
func encodeSwitchLoss(l *record.SwitchLoss) *lossXML {
	out := &lossXML{
		ComputationMethod: optionalString(l.ComputationMethod),
		Formula:           optionalString(l.Formula),
		CurrentAxis:       optionalAxis(l.CurrentAxis),
		VoltageAxis:       optionalAxis(l.VoltageAxis),
		TemperatureAxis:   optionalAxis(l.TemperatureAxis),
	}
	if l.Energy != nil {
		out.Energy = &tableXML{
			Scale:        strconv.FormatFloat(l.Energy.Scale, 'g', -1, 64),
			Temperatures: FormatEnergyTable(l.Energy.Data, 1.0),
		}
	}
	return out
}

func encodeConductionLoss(l *record.ConductionLoss) *lossXML {
	out := &lossXML{
		Gate:              l.Gate,
		ComputationMethod: optionalString(l.ComputationMethod),
		Formula:           optionalString(l.Formula),
		CurrentAxis:       optionalAxis(l.CurrentAxis),
		TemperatureAxis:   optionalAxis(l.TemperatureAxis),
	}
	if l.VoltageDrop != nil {
		out.VoltageDrop = &tableXML{
			Scale:        strconv.FormatFloat(l.VoltageDrop.Scale, 'g', -1, 64),
			Temperatures: FormatVoltageDropTable(l.VoltageDrop.Data, 1.0),
		}
	}
	return out
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalAxis(values []float64) *string {
	if values == nil {
		return nil
	}
	s := FormatAxis(values)
	return &s
}

func optionalText(v *record.Value) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func optionalFloatText(f *float64) *string {
	if f == nil {
		return nil
	}
	s := strconv.FormatFloat(*f, 'g', -1, 64)
	return &s
}
