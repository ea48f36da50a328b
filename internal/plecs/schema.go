package plecs

import "encoding/xml"

// Element schema for the vendor SemiconductorLibrary document. Tags match
// local names only, so a namespaced document decodes the same as a bare
// one; the namespace value itself is preserved in libraryXML.XMLNS.

type libraryXML struct {
	XMLName xml.Name    `xml:"SemiconductorLibrary"`
	XMLNS   string      `xml:"xmlns,attr,omitempty"`
	Version string      `xml:"version,attr,omitempty"`
	Package *packageXML `xml:"Package"`
}

type packageXML struct {
	Class             string        `xml:"class,attr,omitempty"`
	Vendor            string        `xml:"vendor,attr,omitempty"`
	PartNumber        string        `xml:"partnumber,attr,omitempty"`
	Variables         *variablesXML `xml:"Variables"`
	SemiconductorData *semiDataXML  `xml:"SemiconductorData"`
	ThermalModel      *thermalXML   `xml:"ThermalModel"`
	Comment           *commentXML   `xml:"Comment"`
}

type variablesXML struct {
	Variables []variableXML `xml:"Variable"`
}

type variableXML struct {
	Name         string  `xml:"Name"`
	Description  string  `xml:"Description"`
	DefaultValue *string `xml:"DefaultValue"`
	MinValue     *string `xml:"MinValue"`
	MaxValue     *string `xml:"MaxValue"`
}

type semiDataXML struct {
	Type           string    `xml:"type,attr,omitempty"`
	TurnOnLoss     *lossXML  `xml:"TurnOnLoss"`
	TurnOffLoss    *lossXML  `xml:"TurnOffLoss"`
	ConductionLoss []lossXML `xml:"ConductionLoss"`
}

// lossXML covers TurnOnLoss, TurnOffLoss and ConductionLoss: the sections
// share every child except Energy vs VoltageDrop and the gate attribute.
type lossXML struct {
	Gate              string    `xml:"gate,attr,omitempty"`
	ComputationMethod *string   `xml:"ComputationMethod"`
	Formula           *string   `xml:"Formula"`
	CurrentAxis       *string   `xml:"CurrentAxis"`
	VoltageAxis       *string   `xml:"VoltageAxis"`
	TemperatureAxis   *string   `xml:"TemperatureAxis"`
	Energy            *tableXML `xml:"Energy"`
	VoltageDrop       *tableXML `xml:"VoltageDrop"`
}

type tableXML struct {
	Scale        string           `xml:"scale,attr,omitempty"`
	Temperatures []temperatureXML `xml:"Temperature"`
}

// temperatureXML holds either nested Voltage rows or direct text. When
// Voltage children are present the chardata collects only inter-element
// whitespace and is ignored.
type temperatureXML struct {
	Voltages []voltageXML `xml:"Voltage"`
	Text     string       `xml:",chardata"`
}

type voltageXML struct {
	Text string `xml:",chardata"`
}

type thermalXML struct {
	Branch *branchXML `xml:"Branch"`
}

type branchXML struct {
	Type       string         `xml:"type,attr,omitempty"`
	RCElements []rcElementXML `xml:"RCElement"`
}

type rcElementXML struct {
	R *string `xml:"R,attr,omitempty"`
	C *string `xml:"C,attr,omitempty"`
}

type commentXML struct {
	Lines []lineXML `xml:"Line"`
}

type lineXML struct {
	Text string `xml:",chardata"`
}
