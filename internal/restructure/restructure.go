package restructure

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/semidata/plexconv-cli/internal/record"
)

// Temperature axis values at or above this are convergence aids inserted by
// the upstream simulator, not physical operating points. They are filtered
// wherever physical values are needed.
const temperatureSentinel = 500.0

// Gate-drive voltage assumed for switching-loss test conditions. The source
// tables do not carry one.
const assumedVgs = 15.0

// Options carries the ambient inputs of the transform explicitly.
type Options struct {
	Now time.Time

	// Serial overrides the generated revision serial; used by tests.
	Serial string
}

// Restructure derives a V2 Record from a Standard Record. It is a pure
// function of its inputs: every derived field has an explicit extraction
// rule and stays nil when the rule does not match.
func Restructure(rec *record.Record, opts Options) *record.V2Record {
	meta := rec.Metadata

	var (
		pkg       record.Package
		semi      *record.SemiconductorData
		thermal   *record.ThermalModel
		variables []record.Variable
		comment   []string
	)
	if rec.Package != nil {
		pkg = *rec.Package
		semi = pkg.SemiconductorData
		thermal = pkg.ThermalModel
		variables = pkg.Variables
		comment = pkg.Comment
	}

	ds := MineComments(comment)

	serial := opts.Serial
	if serial == "" {
		serial = uuid.New().String()
	}

	deviceType := meta.Type
	if deviceType == "" {
		deviceType = "MOSFET with Diode"
	}
	integration := "discrete"
	if meta.PackageType == record.PackageModule {
		integration = "module"
	}

	out := &record.V2Record{
		DeviceID: DeviceID(meta.Manufacturer, meta.PartNumber),
		Identity: record.Identity{
			Manufacturer: meta.Manufacturer,
			PartNumber:   meta.PartNumber,
			Family:       ExtractFamily(meta.PartNumber),
			Aliases:      []string{},
			Lifecycle:    "active",
		},
		Classification: record.Classification{
			Technology:       "SiC_MOSFET",
			DeviceType:       deviceType,
			Polarity:         "N",
			PackageType:      MapPackageType(meta.PackageType, meta.PartNumber),
			IntegrationLevel: integration,
		},
		Ratings: record.Ratings{
			TjMax: record.ValueUnit{Value: 175, Unit: "C"},
		},
		Variables: map[string]record.V2Variable{},
		Models: record.Models{
			Plecs: record.ModelAvailability{
				Available: true,
				Version:   fallback(rec.Library.Version, "1.4"),
				Source:    "Wolfspeed official",
			},
		},
		Sources: record.Sources{
			PlecsModel: record.ModelSource{
				File:    meta.SourceFile,
				Path:    meta.SourcePath,
				Version: rec.Library.Version,
			},
			Datasheet: record.DatasheetSource{
				Revision: optionalString(ds.Revision),
				Date:     optionalString(ds.Date),
			},
		},
		Revision: record.Revision{
			Version: "2.0",
			Serial:  serial,
			Author:  meta.Author,
			Date:    opts.Now.Format("2006-01-02"),
			Notes:   "Restructured from PLECS XML model",
		},
	}

	if rating, ok := ExtractVoltageRating(meta.PartNumber); ok {
		out.Ratings.VdsMax = &record.ValueUnit{Value: float64(rating), Unit: "V"}
	}

	if ds.Ron != nil {
		out.Static.RdsOn = []record.RatedValue{{
			Value:      *ds.Ron * 1000,
			Unit:       "mohm",
			Conditions: map[string]float64{"tj": 25, "vgs": assumedVgs},
			TypMax:     "typ",
		}}
	}
	if ds.Vf != nil {
		out.Static.VfBodyDiode = []record.RatedValue{{
			Value:      *ds.Vf,
			Unit:       "V",
			Conditions: map[string]float64{"tj": 25},
			TypMax:     "typ",
		}}
	}

	if semi != nil {
		if semi.TurnOnLoss != nil {
			out.LossCurves.Eon = regroupSwitchLoss(semi.TurnOnLoss)
		}
		if semi.TurnOffLoss != nil {
			out.LossCurves.Eoff = regroupSwitchLoss(semi.TurnOffLoss)
		}
		if semi.ConductionLoss != nil {
			out.LossCurves.Vf = regroupConductionLoss(semi.ConductionLoss)
		}
	}

	if thermal != nil {
		out.Thermal = convertThermal(thermal)
	}

	for _, v := range variables {
		// Duplicate lower-cased names collide; the later one wins.
		out.Variables[strings.ToLower(v.Name)] = record.V2Variable{
			Description: v.Description,
			Default:     v.Default,
			Min:         v.Min,
			Max:         v.Max,
			Unit:        "ohm",
		}
	}

	return out
}

// filterTemperatures drops convergence sentinels (>= 500) from an axis.
func filterTemperatures(axis []float64) []float64 {
	valid := make([]float64, 0, len(axis))
	for _, t := range axis {
		if t < temperatureSentinel {
			valid = append(valid, t)
		}
	}
	return valid
}

// energyUnit resolves the display unit from the table's scale value. The
// two known scale constants get a fixed label with no further multiply;
// anything else is labelled Joules and applied as a multiplier. This lookup
// intentionally mirrors the historical behavior, asymmetry included.
func energyUnit(scale float64) (unit string, factor float64) {
	switch scale {
	case 0.001:
		return "mJ", 1.0
	case 1e-06:
		return "uJ", 1.0
	default:
		return "J", scale
	}
}

// regroupSwitchLoss emits one condition group per positive voltage-axis
// entry, with energy rows keyed by the temperature's own text value.
// Zero and negative voltages are degenerate bias conditions and are
// dropped.
func regroupSwitchLoss(loss *record.SwitchLoss) *record.SwitchCurveSet {
	set := &record.SwitchCurveSet{
		ComputationMethod: fallback(loss.ComputationMethod, "Table only"),
		Formula:           loss.Formula,
		Data:              []record.SwitchCondition{},
	}
	if loss.Energy == nil {
		return set
	}

	unit, factor := energyUnit(loss.Energy.Scale)
	validTemps := filterTemperatures(loss.TemperatureAxis)
	raw := loss.Energy.Data

	for vIdx, vdc := range loss.VoltageAxis {
		if vdc <= 0 {
			continue
		}

		cond := record.SwitchCondition{
			Conditions:      record.Conditions{Vdc: vdc, Vgs: assumedVgs},
			CurrentAxis:     record.Axis{Values: loss.CurrentAxis, Unit: "A"},
			TemperatureAxis: record.Axis{Values: validTemps, Unit: "C"},
			Energy: record.EnergyMap{
				Unit:              unit,
				DataByTemperature: map[string][]float64{},
			},
			Quality:   "original",
			SourceRef: "plecs_model",
		}

		// Row extraction indexes the unfiltered axis so surviving
		// temperatures keep their original positions.
		for tIdx, temp := range loss.TemperatureAxis {
			if temp >= temperatureSentinel {
				continue
			}
			if tIdx >= len(raw) || vIdx >= len(raw[tIdx]) {
				continue
			}
			values := raw[tIdx][vIdx]
			if factor != 1.0 {
				scaled := make([]float64, len(values))
				for i, v := range values {
					scaled[i] = v * factor
				}
				values = scaled
			}
			cond.Energy.DataByTemperature[temperatureKey(temp)] = values
		}

		set.Data = append(set.Data, cond)
	}
	return set
}

// regroupConductionLoss normalizes the scalar-or-sequence variant to a
// uniform sequence and builds a voltage-drop-by-temperature map per entry.
func regroupConductionLoss(losses *record.ConductionLosses) []record.ConductionCurve {
	blocks := losses.All()
	out := make([]record.ConductionCurve, 0, len(blocks))

	for _, cond := range blocks {
		scale := 1.0
		var raw [][]float64
		if cond.VoltageDrop != nil {
			scale = cond.VoltageDrop.Scale
			raw = cond.VoltageDrop.Data
		}

		item := record.ConductionCurve{
			Gate:              fallback(cond.Gate, "on"),
			ComputationMethod: fallback(cond.ComputationMethod, "Table only"),
			Formula:           cond.Formula,
			CurrentAxis:       record.Axis{Values: cond.CurrentAxis, Unit: "A"},
			TemperatureAxis:   record.Axis{Values: filterTemperatures(cond.TemperatureAxis), Unit: "C"},
			VoltageDrop: record.VoltageDropMap{
				Unit:              "V",
				Scale:             scale,
				DataByTemperature: map[string][]float64{},
			},
			Quality:   "original",
			SourceRef: "plecs_model",
		}

		for tIdx, temp := range cond.TemperatureAxis {
			if temp >= temperatureSentinel {
				continue
			}
			if tIdx < len(raw) {
				item.VoltageDrop.DataByTemperature[temperatureKey(temp)] = raw[tIdx]
			}
		}

		out = append(out, item)
	}
	return out
}

// convertThermal carries the RC chain through with fixed units and sums the
// series resistance. This is a plain series total, not a network solve.
func convertThermal(tm *record.ThermalModel) *record.Thermal {
	out := &record.Thermal{
		ModelType:  fallback(tm.Type, "Cauer"),
		RCElements: make([]record.V2RCElement, 0, len(tm.RCElements)),
	}
	total := 0.0
	for _, rc := range tm.RCElements {
		elem := record.V2RCElement{RUnit: "K/W", CUnit: "J/K"}
		if rc.R != nil {
			elem.R = *rc.R
			total += *rc.R
		}
		if rc.C != nil {
			elem.C = *rc.C
		}
		out.RCElements = append(out.RCElements, elem)
	}
	out.RthJcTotal = record.ValueUnit{Value: round4(total), Unit: "K/W"}
	return out
}

// temperatureKey renders a temperature as the map key of the loss tables.
// Integral values keep one decimal place ("25.0"); consumers of the
// restructured records compare keys textually, so the exact text is part
// of the contract.
func temperatureKey(t float64) string {
	if t == math.Trunc(t) {
		return strconv.FormatFloat(t, 'f', 1, 64)
	}
	return strconv.FormatFloat(t, 'g', -1, 64)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
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
