package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/semidata/plexconv-cli/internal/record"
)

const summarySheet = "Devices"

// WriteSummary writes a one-row-per-device XLSX workbook covering a whole
// batch. Row order follows the input order.
func WriteSummary(recs []*record.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	header := []any{
		"Part number", "Manufacturer", "Type", "Material", "Package",
		"Turn-on points", "Turn-off points", "Conduction blocks",
		"RC elements", "Source file",
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range recs {
		row := summaryRow(rec)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func summaryRow(rec *record.Record) []any {
	var eon, eoff, cond, rc int
	if pkg := rec.Package; pkg != nil {
		if sd := pkg.SemiconductorData; sd != nil {
			eon = energyPoints(sd.TurnOnLoss)
			eoff = energyPoints(sd.TurnOffLoss)
			cond = len(sd.ConductionLoss.All())
		}
		if pkg.ThermalModel != nil {
			rc = len(pkg.ThermalModel.RCElements)
		}
	}
	return []any{
		rec.Metadata.PartNumber,
		rec.Metadata.Manufacturer,
		rec.Metadata.Type,
		rec.Metadata.Material,
		rec.Metadata.PackageType,
		eon,
		eoff,
		cond,
		rc,
		rec.Metadata.SourceFile,
	}
}

func energyPoints(sl *record.SwitchLoss) int {
	if sl == nil || sl.Energy == nil {
		return 0
	}
	n := 0
	for _, plane := range sl.Energy.Data {
		for _, row := range plane {
			n += len(row)
		}
	}
	return n
}
