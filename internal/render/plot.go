package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/semidata/plexconv-cli/internal/record"
)

// WritePlots renders one PNG per loss table using prefix as the output
// path stem, e.g. prefix_eon.png, prefix_eoff.png, prefix_vf.png. Tables
// that are absent are skipped silently.
func WritePlots(rec *record.Record, prefix string) error {
	if rec.Package == nil || rec.Package.SemiconductorData == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(prefix), 0o755); err != nil {
		return err
	}
	sd := rec.Package.SemiconductorData

	if err := plotSwitchLoss(sd.TurnOnLoss, rec.Metadata.PartNumber+" turn-on energy", prefix+"_eon.png"); err != nil {
		return err
	}
	if err := plotSwitchLoss(sd.TurnOffLoss, rec.Metadata.PartNumber+" turn-off energy", prefix+"_eoff.png"); err != nil {
		return err
	}
	for i, cl := range sd.ConductionLoss.All() {
		name := prefix + "_vf.png"
		if i > 0 {
			name = fmt.Sprintf("%s_vf_%d.png", prefix, i+1)
		}
		if err := plotConductionLoss(&cl, rec.Metadata.PartNumber+" on-state voltage", name); err != nil {
			return err
		}
	}
	return nil
}

// plotSwitchLoss draws energy over current at the highest blocking voltage,
// one line per junction temperature.
func plotSwitchLoss(sl *record.SwitchLoss, title, path string) error {
	if sl == nil || sl.Energy == nil || len(sl.CurrentAxis) == 0 {
		return nil
	}
	vi := len(sl.VoltageAxis) - 1
	if vi < 0 {
		vi = 0
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Current (A)"
	p.Y.Label.Text = "Energy (scaled)"
	p.Add(plotter.NewGrid())

	var series []any
	for ti, plane := range sl.Energy.Data {
		if vi >= len(plane) {
			continue
		}
		row := plane[vi]
		pts := make(plotter.XYs, 0, len(row))
		for ci, e := range row {
			if ci >= len(sl.CurrentAxis) {
				break
			}
			pts = append(pts, plotter.XY{X: sl.CurrentAxis[ci], Y: e})
		}
		series = append(series, tempLabel(sl.TemperatureAxis, ti), pts)
	}
	if len(series) == 0 {
		return nil
	}
	if err := plotutil.AddLinePoints(p, series...); err != nil {
		return fmt.Errorf("plot %s: %w", filepath.Base(path), err)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// plotConductionLoss draws on-state voltage drop over current, one line per
// junction temperature.
func plotConductionLoss(cl *record.ConductionLoss, title, path string) error {
	if cl == nil || cl.VoltageDrop == nil || len(cl.CurrentAxis) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Current (A)"
	p.Y.Label.Text = "Voltage drop (scaled)"
	p.Add(plotter.NewGrid())

	var series []any
	for ti, row := range cl.VoltageDrop.Data {
		pts := make(plotter.XYs, 0, len(row))
		for ci, v := range row {
			if ci >= len(cl.CurrentAxis) {
				break
			}
			pts = append(pts, plotter.XY{X: cl.CurrentAxis[ci], Y: v})
		}
		series = append(series, tempLabel(cl.TemperatureAxis, ti), pts)
	}
	if len(series) == 0 {
		return nil
	}
	if err := plotutil.AddLinePoints(p, series...); err != nil {
		return fmt.Errorf("plot %s: %w", filepath.Base(path), err)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func tempLabel(axis []float64, i int) string {
	if i < len(axis) {
		return strconv.FormatFloat(axis[i], 'g', -1, 64) + " C"
	}
	return "T" + strconv.Itoa(i+1)
}
