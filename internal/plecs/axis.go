// Package plecs converts between the vendor XML device-model format and
// the Standard Record: axis/table codec, element schema, decoder, encoder,
// and path-based metadata inference.
package plecs

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAxis splits text on arbitrary whitespace and parses each token as a
// float. Empty or whitespace-only input yields an empty slice; a
// non-numeric token fails the whole parse.
func ParseAxis(text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	values := make([]float64, 0, len(fields))
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("axis token %q: %w", tok, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// FormatAxis renders values space-separated. It is the left inverse of
// ParseAxis up to floating-point representation.
func FormatAxis(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// parseTemperatureNode resolves the rank ambiguity of a Temperature node
// structurally: nested Voltage children give one row per child (rank-3
// overall), direct text gives a single row (rank-2 overall). Both Energy
// and VoltageDrop reuse the same Temperature wrapper tag, so this sniffing
// is shared rather than driven by a format marker.
func parseTemperatureNode(n temperatureXML) ([][]float64, bool, error) {
	if len(n.Voltages) > 0 {
		rows := make([][]float64, 0, len(n.Voltages))
		for _, v := range n.Voltages {
			row, err := ParseAxis(v.Text)
			if err != nil {
				return nil, true, err
			}
			if row == nil {
				row = []float64{}
			}
			rows = append(rows, row)
		}
		return rows, true, nil
	}
	row, err := ParseAxis(n.Text)
	if err != nil {
		return nil, false, err
	}
	if row == nil {
		row = []float64{}
	}
	return [][]float64{row}, false, nil
}

// ParseEnergyTable reads the Temperature children of an Energy element into
// a rank-3 array indexed [temperature][voltage][current]. A text-only
// Temperature node contributes its row as a one-row sub-table.
func ParseEnergyTable(nodes []temperatureXML) ([][][]float64, error) {
	data := make([][][]float64, 0, len(nodes))
	for _, n := range nodes {
		rows, _, err := parseTemperatureNode(n)
		if err != nil {
			return nil, err
		}
		data = append(data, rows)
	}
	return data, nil
}

// ParseVoltageDropTable reads the Temperature children of a VoltageDrop
// element into a rank-2 array indexed [temperature][current]. A nested
// node contributes its rows in order.
func ParseVoltageDropTable(nodes []temperatureXML) ([][]float64, error) {
	data := make([][]float64, 0, len(nodes))
	for _, n := range nodes {
		rows, _, err := parseTemperatureNode(n)
		if err != nil {
			return nil, err
		}
		data = append(data, rows...)
	}
	return data, nil
}

// FormatEnergyTable builds the Temperature/Voltage element tree for a
// rank-3 array, applying value*scale per element. Indentation of the
// emitted markup is cosmetic and not load-bearing for round trips.
func FormatEnergyTable(data [][][]float64, scale float64) []temperatureXML {
	nodes := make([]temperatureXML, 0, len(data))
	for _, rows := range data {
		var n temperatureXML
		for _, row := range rows {
			n.Voltages = append(n.Voltages, voltageXML{Text: FormatAxis(scaleRow(row, scale))})
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// FormatVoltageDropTable builds text-only Temperature nodes for a rank-2
// array, applying value*scale per element.
func FormatVoltageDropTable(data [][]float64, scale float64) []temperatureXML {
	nodes := make([]temperatureXML, 0, len(data))
	for _, row := range data {
		nodes = append(nodes, temperatureXML{Text: FormatAxis(scaleRow(row, scale))})
	}
	return nodes
}

func scaleRow(row []float64, scale float64) []float64 {
	if scale == 1.0 {
		return row
	}
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = v * scale
	}
	return out
}
