package plecs

import (
	"reflect"
	"testing"
)

func TestParseAxis(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []float64
		wantErr bool
	}{
		{name: "space separated", text: "0 10 20.5", want: []float64{0, 10, 20.5}},
		{name: "mixed whitespace", text: " 1\t2\n3  4 ", want: []float64{1, 2, 3, 4}},
		{name: "scientific notation", text: "1e-3 2.5E2", want: []float64{0.001, 250}},
		{name: "negative values", text: "-40 25 150", want: []float64{-40, 25, 150}},
		{name: "empty", text: "", want: nil},
		{name: "whitespace only", text: "   \n\t ", want: nil},
		{name: "bad token", text: "1 two 3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAxis(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAxis(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAxis(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFormatAxis_RoundTrip(t *testing.T) {
	axes := [][]float64{
		{0, 10, 20, 40},
		{-40, 25, 150.5},
		{0.001, 1e-06, 123456.789},
	}
	for _, axis := range axes {
		text := FormatAxis(axis)
		back, err := ParseAxis(text)
		if err != nil {
			t.Fatalf("ParseAxis(FormatAxis(%v)): %v", axis, err)
		}
		if !reflect.DeepEqual(back, axis) {
			t.Errorf("round trip of %v gave %v (text %q)", axis, back, text)
		}
	}
}

func TestParseEnergyTable_NestedVoltages(t *testing.T) {
	nodes := []temperatureXML{
		{Voltages: []voltageXML{{Text: "0 1 2"}, {Text: "3 4 5"}}},
		{Voltages: []voltageXML{{Text: "6 7 8"}, {Text: "9 10 11"}}},
	}
	got, err := ParseEnergyTable(nodes)
	if err != nil {
		t.Fatalf("ParseEnergyTable: %v", err)
	}
	want := [][][]float64{
		{{0, 1, 2}, {3, 4, 5}},
		{{6, 7, 8}, {9, 10, 11}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseEnergyTable = %v, want %v", got, want)
	}
}

func TestParseEnergyTable_TextOnlyNode(t *testing.T) {
	// A flat Temperature node still yields a one-row sub-table.
	nodes := []temperatureXML{{Text: "1 2 3"}}
	got, err := ParseEnergyTable(nodes)
	if err != nil {
		t.Fatalf("ParseEnergyTable: %v", err)
	}
	want := [][][]float64{{{1, 2, 3}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseEnergyTable = %v, want %v", got, want)
	}
}

func TestParseVoltageDropTable_FlattensNestedRows(t *testing.T) {
	nodes := []temperatureXML{
		{Text: "0.8 1.1 1.5"},
		{Voltages: []voltageXML{{Text: "0.9 1.2 1.6"}, {Text: "1.0 1.3 1.7"}}},
	}
	got, err := ParseVoltageDropTable(nodes)
	if err != nil {
		t.Fatalf("ParseVoltageDropTable: %v", err)
	}
	want := [][]float64{
		{0.8, 1.1, 1.5},
		{0.9, 1.2, 1.6},
		{1.0, 1.3, 1.7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseVoltageDropTable = %v, want %v", got, want)
	}
}

func TestFormatEnergyTable_ScaleApplied(t *testing.T) {
	data := [][][]float64{{{1, 2}, {3, 4}}}

	nodes := FormatEnergyTable(data, 0.5)
	if len(nodes) != 1 || len(nodes[0].Voltages) != 2 {
		t.Fatalf("unexpected shape: %+v", nodes)
	}
	if nodes[0].Voltages[0].Text != "0.5 1" {
		t.Errorf("scaled row = %q, want %q", nodes[0].Voltages[0].Text, "0.5 1")
	}

	// Identity scale keeps the values verbatim.
	nodes = FormatEnergyTable(data, 1.0)
	if nodes[0].Voltages[1].Text != "3 4" {
		t.Errorf("unscaled row = %q, want %q", nodes[0].Voltages[1].Text, "3 4")
	}
}
