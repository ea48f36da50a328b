package render

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strconv"

	"github.com/semidata/plexconv-cli/internal/record"
)

var datasheetTmpl = template.Must(template.New("datasheet").Funcs(template.FuncMap{
	"num": func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Metadata.PartNumber}} device summary</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 0.2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: left; }
th { background: #eee; }
.axis { font-family: monospace; }
</style>
</head>
<body>
<h1>{{.Metadata.PartNumber}}</h1>
<table>
<tr><th>Manufacturer</th><td>{{.Metadata.Manufacturer}}</td></tr>
<tr><th>Type</th><td>{{.Metadata.Type}}</td></tr>
<tr><th>Material</th><td>{{.Metadata.Material}}</td></tr>
<tr><th>Package</th><td>{{.Metadata.PackageType}}</td></tr>
<tr><th>Source</th><td>{{.Metadata.SourceFile}}</td></tr>
<tr><th>Date</th><td>{{.Metadata.Date}}</td></tr>
</table>
{{with .Package}}
{{with .SemiconductorData}}
{{with .TurnOnLoss}}
<h2>Turn-on loss</h2>
<table>
<tr><th>Current axis (A)</th><td class="axis">{{range .CurrentAxis}}{{num .}} {{end}}</td></tr>
<tr><th>Voltage axis (V)</th><td class="axis">{{range .VoltageAxis}}{{num .}} {{end}}</td></tr>
<tr><th>Temperature axis (&deg;C)</th><td class="axis">{{range .TemperatureAxis}}{{num .}} {{end}}</td></tr>
{{with .Energy}}<tr><th>Energy scale</th><td>{{num .Scale}}</td></tr>{{end}}
</table>
{{end}}
{{with .TurnOffLoss}}
<h2>Turn-off loss</h2>
<table>
<tr><th>Current axis (A)</th><td class="axis">{{range .CurrentAxis}}{{num .}} {{end}}</td></tr>
<tr><th>Voltage axis (V)</th><td class="axis">{{range .VoltageAxis}}{{num .}} {{end}}</td></tr>
<tr><th>Temperature axis (&deg;C)</th><td class="axis">{{range .TemperatureAxis}}{{num .}} {{end}}</td></tr>
{{with .Energy}}<tr><th>Energy scale</th><td>{{num .Scale}}</td></tr>{{end}}
</table>
{{end}}
{{range .ConductionLoss.All}}
<h2>Conduction loss{{if .Gate}} (gate {{.Gate}}){{end}}</h2>
<table>
<tr><th>Current axis (A)</th><td class="axis">{{range .CurrentAxis}}{{num .}} {{end}}</td></tr>
<tr><th>Temperature axis (&deg;C)</th><td class="axis">{{range .TemperatureAxis}}{{num .}} {{end}}</td></tr>
{{with .VoltageDrop}}<tr><th>Voltage drop scale</th><td>{{num .Scale}}</td></tr>{{end}}
</table>
{{end}}
{{end}}
{{with .ThermalModel}}
<h2>Thermal model ({{.Type}})</h2>
<table>
<tr><th>#</th><th>R (K/W)</th><th>C (J/K)</th></tr>
{{range $i, $el := .RCElements}}
<tr><td>{{$i}}</td><td>{{with $el.R}}{{num .}}{{end}}</td><td>{{with $el.C}}{{num .}}{{end}}</td></tr>
{{end}}
</table>
{{end}}
{{if .Comment}}
<h2>Comments</h2>
<ul>{{range .Comment}}<li>{{.}}</li>{{end}}</ul>
{{end}}
{{end}}
</body>
</html>
`))

// WriteHTML renders a single-page device summary.
func WriteHTML(rec *record.Record, path string) error {
	var buf bytes.Buffer
	if err := datasheetTmpl.Execute(&buf, rec); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
