// Package record defines the canonical device data model: the Standard
// Record produced from vendor XML, and the field-grouped V2 Record derived
// from it.
//
// Standard Records are created once per source file and persisted as JSON;
// the restructurer and the renderers treat them as read-only inputs.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is the Standard Record, the canonical intermediate form.
type Record struct {
	Metadata Metadata `json:"metadata"`
	Library  Library  `json:"library"`
	Package  *Package `json:"package,omitempty"`
}

// Metadata carries device identity plus provenance for the source file.
type Metadata struct {
	Manufacturer string `json:"manufacturer"`
	Type         string `json:"type"`
	Material     string `json:"material"`
	PackageType  string `json:"package_type"`
	PartNumber   string `json:"part_number"`
	Author       string `json:"author"`
	Date         string `json:"date"`
	SourceFile   string `json:"source_file"`
	SourcePath   string `json:"source_path"`
}

// Materials recognized in source paths. Anything else maps to
// MaterialUnknown.
const (
	MaterialSi      = "Si"
	MaterialSiC     = "SiC"
	MaterialGaN     = "GaN"
	MaterialUnknown = "Unknown"
)

// Package types.
const (
	PackageDiscrete = "discrete"
	PackageModule   = "power module"
)

// Library preserves the root attributes of the source document so the XML
// can be regenerated.
type Library struct {
	XMLNS   string `json:"xmlns"`
	Version string `json:"version"`
}

// Package mirrors the Package element of the vendor XML. Class, vendor and
// partnumber are redundant with Metadata but independently settable; the
// XML attributes take precedence when both exist. Variables and Comment
// must not use omitempty: a present-but-empty sequence re-emits an empty
// parent element, so the nil/empty distinction has to survive the JSON
// form too.
type Package struct {
	Class             string             `json:"class"`
	Vendor            string             `json:"vendor"`
	PartNumber        string             `json:"partnumber"`
	Variables         []Variable         `json:"variables"`
	SemiconductorData *SemiconductorData `json:"semiconductor_data,omitempty"`
	ThermalModel      *ThermalModel      `json:"thermal_model,omitempty"`
	Comment           []string           `json:"comment"`
}

// Variable is one entry of the Variables section. Default/Min/Max keep the
// literal text when it does not parse as a float.
type Variable struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Default     *Value `json:"default_value,omitempty"`
	Min         *Value `json:"min_value,omitempty"`
	Max         *Value `json:"max_value,omitempty"`
}

// Value is a numeric-or-literal union. Variable bounds in the XML are
// usually numbers but occasionally expressions or symbols; a failed float
// parse keeps the trimmed literal rather than erroring.
type Value struct {
	Num   float64
	Text  string
	IsNum bool
}

// ParseValue attempts a float parse of s and falls back to the trimmed
// literal.
func ParseValue(s string) *Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return &Value{Num: f, IsNum: true}
	}
	return &Value{Text: s}
}

// String renders the value the way the XML writer expects it.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	if v.IsNum {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNum {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Value{Num: f, IsNum: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("value is neither number nor string: %w", err)
	}
	*v = Value{Text: s}
	return nil
}

// SemiconductorData groups the loss tables of one device.
type SemiconductorData struct {
	Type           string            `json:"type"`
	TurnOnLoss     *SwitchLoss       `json:"turn_on_loss,omitempty"`
	TurnOffLoss    *SwitchLoss       `json:"turn_off_loss,omitempty"`
	ConductionLoss *ConductionLosses `json:"conduction_loss,omitempty"`
}

// SwitchLoss is a turn-on or turn-off loss block: switching energy indexed
// by current, voltage and temperature axes.
type SwitchLoss struct {
	ComputationMethod string    `json:"computation_method,omitempty"`
	Formula           string    `json:"formula,omitempty"`
	CurrentAxis       []float64 `json:"current_axis,omitempty"`
	VoltageAxis       []float64 `json:"voltage_axis,omitempty"`
	TemperatureAxis   []float64 `json:"temperature_axis,omitempty"`
	Energy            *Energy   `json:"energy,omitempty"`
}

// Energy is a rank-3 table indexed [temperature][voltage][current]. Values
// are stored pre-scale; Scale must be applied before presenting physical
// units.
type Energy struct {
	Scale float64       `json:"scale"`
	Data  [][][]float64 `json:"data"`
}

// ConductionLoss is one conduction-loss block, optionally tagged with its
// gate state.
type ConductionLoss struct {
	Gate              string       `json:"gate,omitempty"`
	ComputationMethod string       `json:"computation_method,omitempty"`
	Formula           string       `json:"formula,omitempty"`
	CurrentAxis       []float64    `json:"current_axis,omitempty"`
	TemperatureAxis   []float64    `json:"temperature_axis,omitempty"`
	VoltageDrop       *VoltageDrop `json:"voltage_drop,omitempty"`
}

// VoltageDrop is a rank-2 table indexed [temperature][current], pre-scale.
type VoltageDrop struct {
	Scale float64     `json:"scale"`
	Data  [][]float64 `json:"data"`
}

// ConductionLosses is a tagged variant: a single block marshals as a JSON
// object, two or more marshal as an array. Downstream code branches on the
// resulting shape, so the distinction must survive a round trip.
type ConductionLosses struct {
	Single   *ConductionLoss
	Multiple []ConductionLoss
}

// NewConductionLosses collapses a parsed sequence into the variant: one
// block becomes Single, two or more stay Multiple. Empty input yields nil.
func NewConductionLosses(blocks []ConductionLoss) *ConductionLosses {
	switch len(blocks) {
	case 0:
		return nil
	case 1:
		b := blocks[0]
		return &ConductionLosses{Single: &b}
	default:
		return &ConductionLosses{Multiple: blocks}
	}
}

// All yields a uniform sequence view regardless of the variant case.
func (c *ConductionLosses) All() []ConductionLoss {
	if c == nil {
		return nil
	}
	if c.Single != nil {
		return []ConductionLoss{*c.Single}
	}
	return c.Multiple
}

func (c ConductionLosses) MarshalJSON() ([]byte, error) {
	if c.Single != nil {
		return json.Marshal(c.Single)
	}
	return json.Marshal(c.Multiple)
}

func (c *ConductionLosses) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var blocks []ConductionLoss
		if err := json.Unmarshal(data, &blocks); err != nil {
			return err
		}
		*c = ConductionLosses{Multiple: blocks}
		return nil
	}
	var single ConductionLoss
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*c = ConductionLosses{Single: &single}
	return nil
}

// ThermalModel is a lumped RC network. RC element order is electrically
// significant (junction-to-case) and must be preserved exactly.
type ThermalModel struct {
	Type       string      `json:"type"`
	RCElements []RCElement `json:"rc_elements"`
}

// RCElement is one resistor-capacitor pair. R is in K/W, C in J/K. Either
// attribute may be absent in the source.
type RCElement struct {
	R *float64 `json:"R,omitempty"`
	C *float64 `json:"C,omitempty"`
}
