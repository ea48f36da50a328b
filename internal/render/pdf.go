package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"codeberg.org/go-pdf/fpdf"

	"github.com/semidata/plexconv-cli/internal/record"
)

// WritePDF renders a compact one-or-two page datasheet summary.
func WritePDF(rec *record.Record, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(rec.Metadata.PartNumber+" device summary", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, rec.Metadata.PartNumber, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdfKV(pdf, "Manufacturer", rec.Metadata.Manufacturer)
	pdfKV(pdf, "Type", rec.Metadata.Type)
	pdfKV(pdf, "Material", rec.Metadata.Material)
	pdfKV(pdf, "Package", rec.Metadata.PackageType)
	pdfKV(pdf, "Source file", rec.Metadata.SourceFile)
	pdfKV(pdf, "Date", rec.Metadata.Date)

	if pkg := rec.Package; pkg != nil {
		if sd := pkg.SemiconductorData; sd != nil {
			pdfSwitchLoss(pdf, "Turn-on loss", sd.TurnOnLoss)
			pdfSwitchLoss(pdf, "Turn-off loss", sd.TurnOffLoss)
			for _, cl := range sd.ConductionLoss.All() {
				title := "Conduction loss"
				if cl.Gate != "" {
					title += " (gate " + cl.Gate + ")"
				}
				pdfSection(pdf, title)
				pdfKV(pdf, "Current axis (A)", axisText(cl.CurrentAxis))
				pdfKV(pdf, "Temperature axis (C)", axisText(cl.TemperatureAxis))
				if cl.VoltageDrop != nil {
					pdfKV(pdf, "Voltage drop scale", strconv.FormatFloat(cl.VoltageDrop.Scale, 'g', -1, 64))
				}
			}
		}
		if tm := pkg.ThermalModel; tm != nil {
			pdfSection(pdf, "Thermal model ("+tm.Type+")")
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(15, 6, "#", "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, "R (K/W)", "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, "C (J/K)", "1", 1, "C", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			for i, el := range tm.RCElements {
				pdf.CellFormat(15, 6, strconv.Itoa(i), "1", 0, "C", false, 0, "")
				pdf.CellFormat(40, 6, optText(el.R), "1", 0, "R", false, 0, "")
				pdf.CellFormat(40, 6, optText(el.C), "1", 1, "R", false, 0, "")
			}
		}
		if len(pkg.Comment) > 0 {
			pdfSection(pdf, "Comments")
			pdf.SetFont("Helvetica", "", 9)
			for _, line := range pkg.Comment {
				pdf.MultiCell(0, 5, line, "", "L", false)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

func pdfSection(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func pdfKV(pdf *fpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func pdfSwitchLoss(pdf *fpdf.Fpdf, title string, sl *record.SwitchLoss) {
	if sl == nil {
		return
	}
	pdfSection(pdf, title)
	pdfKV(pdf, "Current axis (A)", axisText(sl.CurrentAxis))
	pdfKV(pdf, "Voltage axis (V)", axisText(sl.VoltageAxis))
	pdfKV(pdf, "Temperature axis (C)", axisText(sl.TemperatureAxis))
	if sl.Energy != nil {
		pdfKV(pdf, "Energy scale", strconv.FormatFloat(sl.Energy.Scale, 'g', -1, 64))
	}
}

func axisText(axis []float64) string {
	if len(axis) == 0 {
		return "-"
	}
	out := ""
	for i, v := range axis {
		if i > 0 {
			out += " "
		}
		out += strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

func optText(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
