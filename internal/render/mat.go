package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"

	"github.com/semidata/plexconv-cli/internal/record"
)

// MAT-File Level 5 constants. The file is a flat sequence of tagged data
// elements; every element payload is padded to an 8 byte boundary.
const (
	miINT8   = 1
	miUINT16 = 4
	miINT32  = 5
	miUINT32 = 6
	miDOUBLE = 9
	miMATRIX = 14

	mxCharClass   = 4
	mxDoubleClass = 6
	mxStructClass = 2

	// Field names in a struct array occupy fixed 32 byte slots, so a name
	// is limited to 31 characters plus the terminator.
	matFieldNameLen = 32
)

// matStruct is an insertion-ordered set of named values. Supported value
// types are string, float64, []float64, [][]float64 and *matStruct; nil
// pointers render as an empty double matrix.
type matStruct struct {
	names  []string
	values []any
}

func (s *matStruct) add(name string, v any) {
	if len(name) >= matFieldNameLen {
		name = name[:matFieldNameLen-1]
	}
	s.names = append(s.names, name)
	s.values = append(s.values, v)
}

// WriteMAT writes the record as a MATLAB workspace file with a single
// struct variable named after the device.
func WriteMAT(rec *record.Record, path string) error {
	root := matRoot(rec)

	var body bytes.Buffer
	if err := writeMatrix(&body, SafeStem(rec), root); err != nil {
		return fmt.Errorf("mat: %w", err)
	}

	var out bytes.Buffer
	writeMatHeader(&out)
	out.Write(body.Bytes())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, out.Bytes(), 0o644)
}

func matRoot(rec *record.Record) *matStruct {
	root := &matStruct{}
	root.add("partnumber", rec.Metadata.PartNumber)
	root.add("manufacturer", rec.Metadata.Manufacturer)
	root.add("type", rec.Metadata.Type)
	root.add("material", rec.Metadata.Material)
	root.add("package_type", rec.Metadata.PackageType)
	root.add("author", rec.Metadata.Author)
	root.add("date", rec.Metadata.Date)
	root.add("source_file", rec.Metadata.SourceFile)

	if pkg := rec.Package; pkg != nil {
		p := &matStruct{}
		p.add("class", pkg.Class)
		p.add("vendor", pkg.Vendor)
		p.add("partnumber", pkg.PartNumber)

		if sd := pkg.SemiconductorData; sd != nil {
			d := &matStruct{}
			d.add("type", sd.Type)
			d.add("turn_on_loss", matSwitchLoss(sd.TurnOnLoss))
			d.add("turn_off_loss", matSwitchLoss(sd.TurnOffLoss))
			d.add("conduction_loss", matConductionLosses(sd.ConductionLoss))
			p.add("semiconductor_data", d)
		}
		if pkg.ThermalModel != nil {
			p.add("thermal_model", matThermal(pkg.ThermalModel))
		}
		root.add("package", p)
	}
	return root
}

func matSwitchLoss(sl *record.SwitchLoss) any {
	if sl == nil {
		return nil
	}
	s := &matStruct{}
	s.add("computation_method", sl.ComputationMethod)
	s.add("current_axis", sl.CurrentAxis)
	s.add("voltage_axis", sl.VoltageAxis)
	s.add("temperature_axis", sl.TemperatureAxis)
	if sl.Energy != nil {
		e := &matStruct{}
		e.add("scale", sl.Energy.Scale)
		// Flatten the temperature-major cube into per-temperature planes.
		for ti, plane := range sl.Energy.Data {
			e.add(fmt.Sprintf("t%d", ti+1), plane)
		}
		s.add("energy", e)
	}
	return s
}

func matConductionLosses(cl *record.ConductionLosses) any {
	if cl == nil {
		return nil
	}
	losses := cl.All()
	s := &matStruct{}
	for i := range losses {
		s.add(fmt.Sprintf("gate_%d", i+1), matConductionLoss(&losses[i]))
	}
	return s
}

func matConductionLoss(cl *record.ConductionLoss) *matStruct {
	s := &matStruct{}
	s.add("gate", cl.Gate)
	s.add("current_axis", cl.CurrentAxis)
	s.add("temperature_axis", cl.TemperatureAxis)
	if cl.VoltageDrop != nil {
		v := &matStruct{}
		v.add("scale", cl.VoltageDrop.Scale)
		v.add("data", cl.VoltageDrop.Data)
		s.add("voltage_drop", v)
	}
	return s
}

func matThermal(tm *record.ThermalModel) *matStruct {
	s := &matStruct{}
	s.add("type", tm.Type)
	var rs, cs []float64
	for _, el := range tm.RCElements {
		if el.R != nil {
			rs = append(rs, *el.R)
		}
		if el.C != nil {
			cs = append(cs, *el.C)
		}
	}
	s.add("r", rs)
	s.add("c", cs)
	return s
}

func writeMatHeader(w *bytes.Buffer) {
	desc := "MATLAB 5.0 MAT-file, created by plexconv"
	head := make([]byte, 124)
	for i := range head {
		head[i] = ' '
	}
	copy(head, desc)
	w.Write(head)
	binary.Write(w, binary.LittleEndian, uint16(0x0100))
	w.WriteString("IM")
}

// writeElement emits one tagged data element with 8 byte payload padding.
func writeElement(w *bytes.Buffer, typ uint32, payload []byte) {
	binary.Write(w, binary.LittleEndian, typ)
	binary.Write(w, binary.LittleEndian, uint32(len(payload)))
	w.Write(payload)
	if pad := (8 - len(payload)%8) % 8; pad > 0 {
		w.Write(make([]byte, pad))
	}
}

func writeMatrix(w *bytes.Buffer, name string, v any) error {
	var body bytes.Buffer
	switch val := v.(type) {
	case nil:
		emptyDouble(&body, name)
	case *matStruct:
		if val == nil {
			emptyDouble(&body, name)
		} else if err := structMatrix(&body, name, val); err != nil {
			return err
		}
	case string:
		charMatrix(&body, name, val)
	case float64:
		doubleMatrix(&body, name, 1, 1, []float64{val})
	case []float64:
		if len(val) == 0 {
			emptyDouble(&body, name)
		} else {
			doubleMatrix(&body, name, 1, len(val), val)
		}
	case [][]float64:
		rows := len(val)
		if rows == 0 {
			emptyDouble(&body, name)
			break
		}
		cols := len(val[0])
		// Column-major element order.
		flat := make([]float64, 0, rows*cols)
		for c := 0; c < cols; c++ {
			for r := 0; r < rows; r++ {
				if c < len(val[r]) {
					flat = append(flat, val[r][c])
				} else {
					flat = append(flat, 0)
				}
			}
		}
		doubleMatrix(&body, name, rows, cols, flat)
	default:
		return fmt.Errorf("unsupported value type %T for %q", v, name)
	}
	writeElement(w, miMATRIX, body.Bytes())
	return nil
}

func arrayFlags(w *bytes.Buffer, class uint32) {
	var p bytes.Buffer
	binary.Write(&p, binary.LittleEndian, class)
	binary.Write(&p, binary.LittleEndian, uint32(0))
	writeElement(w, miUINT32, p.Bytes())
}

func dimensions(w *bytes.Buffer, dims ...int32) {
	var p bytes.Buffer
	for _, d := range dims {
		binary.Write(&p, binary.LittleEndian, d)
	}
	writeElement(w, miINT32, p.Bytes())
}

func arrayName(w *bytes.Buffer, name string) {
	writeElement(w, miINT8, []byte(name))
}

func emptyDouble(w *bytes.Buffer, name string) {
	arrayFlags(w, mxDoubleClass)
	dimensions(w, 0, 0)
	arrayName(w, name)
	writeElement(w, miDOUBLE, nil)
}

func doubleMatrix(w *bytes.Buffer, name string, rows, cols int, flat []float64) {
	arrayFlags(w, mxDoubleClass)
	dimensions(w, int32(rows), int32(cols))
	arrayName(w, name)
	var p bytes.Buffer
	for _, f := range flat {
		binary.Write(&p, binary.LittleEndian, f)
	}
	writeElement(w, miDOUBLE, p.Bytes())
}

func charMatrix(w *bytes.Buffer, name, s string) {
	units := utf16.Encode([]rune(s))
	arrayFlags(w, mxCharClass)
	dimensions(w, 1, int32(len(units)))
	arrayName(w, name)
	var p bytes.Buffer
	for _, u := range units {
		binary.Write(&p, binary.LittleEndian, u)
	}
	writeElement(w, miUINT16, p.Bytes())
}

func structMatrix(w *bytes.Buffer, name string, s *matStruct) error {
	arrayFlags(w, mxStructClass)
	dimensions(w, 1, 1)
	arrayName(w, name)

	// Field name length subelement, then the fixed-width name table.
	var fl bytes.Buffer
	binary.Write(&fl, binary.LittleEndian, int32(matFieldNameLen))
	writeElement(w, miINT32, fl.Bytes())

	names := make([]byte, matFieldNameLen*len(s.names))
	for i, n := range s.names {
		copy(names[i*matFieldNameLen:], n)
	}
	writeElement(w, miINT8, names)

	// Field values follow in order as unnamed matrices.
	for i, v := range s.values {
		if err := writeMatrix(w, "", v); err != nil {
			return fmt.Errorf("field %q: %w", s.names[i], err)
		}
	}
	return nil
}
