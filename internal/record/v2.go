package record

// V2Record is the field-grouped schema derived from a Standard Record. It
// is a one-way transform: V2 Records are never converted back to XML, and
// are regenerated wholesale rather than updated incrementally. Fields that
// could not be extracted stay nil; absence is not an error.
type V2Record struct {
	DeviceID       string                `json:"device_id"`
	Identity       Identity              `json:"identity"`
	Classification Classification       `json:"classification"`
	Ratings        Ratings               `json:"ratings"`
	Static         Static                `json:"static"`
	Switching      Switching             `json:"switching"`
	LossCurves     LossCurves            `json:"loss_curves"`
	Thermal        *Thermal              `json:"thermal"`
	Variables      map[string]V2Variable `json:"variables"`
	Models         Models                `json:"models"`
	Sources        Sources               `json:"sources"`
	Revision       Revision              `json:"revision"`
}

// ValueUnit is a scalar with its physical unit.
type ValueUnit struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Identity groups naming fields. Family is derived from the part number;
// empty when the pattern does not match.
type Identity struct {
	Manufacturer string   `json:"manufacturer"`
	PartNumber   string   `json:"part_number"`
	Family       string   `json:"family"`
	Aliases      []string `json:"aliases"`
	DatasheetURL *string  `json:"datasheet_url"`
	Lifecycle    string   `json:"lifecycle"`
}

type Classification struct {
	Technology       string `json:"technology"`
	DeviceType       string `json:"device_type"`
	Polarity         string `json:"polarity"`
	PackageType      string `json:"package_type"`
	IntegrationLevel string `json:"integration_level"`
}

type Ratings struct {
	VdsMax *ValueUnit `json:"vds_max"`
	IdMax  *ValueUnit `json:"id_max"`
	TjMax  ValueUnit  `json:"tj_max"`
	PdMax  *ValueUnit `json:"pd_max"`
}

// RatedValue is a datasheet figure with its test conditions.
type RatedValue struct {
	Value      float64            `json:"value"`
	Unit       string             `json:"unit"`
	Conditions map[string]float64 `json:"conditions"`
	TypMax     string             `json:"typ_max"`
}

type Static struct {
	RdsOn       []RatedValue `json:"rds_on"`
	VfBodyDiode []RatedValue `json:"vf_body_diode"`
	VgsTh       *ValueUnit   `json:"vgs_th"`
}

type Switching struct {
	QgTotal *ValueUnit `json:"qg_total"`
	Ciss    *ValueUnit `json:"ciss"`
	Coss    *ValueUnit `json:"coss"`
	Crss    *ValueUnit `json:"crss"`
}

// LossCurves regroups the loss tables by physical test condition instead of
// raw axis position.
type LossCurves struct {
	Eon  *SwitchCurveSet   `json:"eon,omitempty"`
	Eoff *SwitchCurveSet   `json:"eoff,omitempty"`
	Vf   []ConductionCurve `json:"vf,omitempty"`
}

type SwitchCurveSet struct {
	ComputationMethod string            `json:"computation_method"`
	Formula           string            `json:"formula,omitempty"`
	Data              []SwitchCondition `json:"data"`
}

// SwitchCondition is one {vdc, vgs} group with energy rows keyed by the
// temperature's own text value.
type SwitchCondition struct {
	Conditions      Conditions `json:"conditions"`
	CurrentAxis     Axis       `json:"current_axis"`
	TemperatureAxis Axis       `json:"temperature_axis"`
	Energy          EnergyMap  `json:"energy"`
	Quality         string     `json:"quality"`
	SourceRef       string     `json:"source_ref"`
}

type Conditions struct {
	Vdc float64 `json:"vdc"`
	Vgs float64 `json:"vgs"`
}

type Axis struct {
	Values []float64 `json:"values"`
	Unit   string    `json:"unit"`
}

type EnergyMap struct {
	Unit              string               `json:"unit"`
	DataByTemperature map[string][]float64 `json:"data_by_temperature"`
}

type ConductionCurve struct {
	Gate              string         `json:"gate"`
	ComputationMethod string         `json:"computation_method"`
	Formula           string         `json:"formula,omitempty"`
	CurrentAxis       Axis           `json:"current_axis"`
	TemperatureAxis   Axis           `json:"temperature_axis"`
	VoltageDrop       VoltageDropMap `json:"voltage_drop"`
	Quality           string         `json:"quality"`
	SourceRef         string         `json:"source_ref"`
}

type VoltageDropMap struct {
	Unit              string               `json:"unit"`
	Scale             float64              `json:"scale"`
	DataByTemperature map[string][]float64 `json:"data_by_temperature"`
}

// Thermal carries the RC chain with fixed units plus the series total.
type Thermal struct {
	ModelType  string        `json:"model_type"`
	RCElements []V2RCElement `json:"rc_elements"`
	RthJcTotal ValueUnit     `json:"rth_jc_total"`
}

type V2RCElement struct {
	R     float64 `json:"R"`
	C     float64 `json:"C"`
	RUnit string  `json:"R_unit"`
	CUnit string  `json:"C_unit"`
}

// V2Variable is a Standard Record variable re-keyed by lower-cased name.
type V2Variable struct {
	Description string `json:"description"`
	Default     *Value `json:"default"`
	Min         *Value `json:"min"`
	Max         *Value `json:"max"`
	Unit        string `json:"unit"`
}

type Models struct {
	Plecs   ModelAvailability `json:"plecs"`
	LTSpice ModelAvailability `json:"ltspice"`
	Spice   ModelAvailability `json:"spice"`
}

type ModelAvailability struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Source    string `json:"source,omitempty"`
}

type Sources struct {
	PlecsModel ModelSource     `json:"plecs_model"`
	Datasheet  DatasheetSource `json:"datasheet"`
}

type ModelSource struct {
	File    string `json:"file"`
	Path    string `json:"path"`
	Version string `json:"version"`
}

type DatasheetSource struct {
	Revision *string `json:"revision"`
	Date     *string `json:"date"`
	URL      *string `json:"url"`
}

// Revision describes the restructured artifact itself, not the device.
type Revision struct {
	Version string `json:"version"`
	Serial  string `json:"serial"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
}
