// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"bytes"
	"fmt"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

// A Renderer renders a named template with data.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Templates is the default Renderer. It knows two templates:
// "report.html", which renders a *Doc, and "index.html", which
// renders a sorted list of report file names.
var Templates Renderer = templateRenderer{htmlTemplates}

type templateRenderer struct {
	t *template.Template
}

func (r templateRenderer) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

var htmlFuncs = template.FuncMap{
	"url": safehtml.URLSanitized,
}

var htmlTemplates = template.Must(template.New("").Funcs(htmlFuncs).Parse(`
{{- define "style"}}
<style>
body { font-family: sans-serif; margin: 2em; }
table.benchreport { border-collapse: collapse; margin-bottom: 1em; }
table.benchreport th, table.benchreport td { padding: 0.2em 0.8em; }
table.benchreport td.num { text-align: right; font-family: monospace; }
table.benchreport tr.geomean td { border-top: 1px solid #888; font-style: italic; }
.description { color: #444; }
</style>
{{- end}}

{{- define "report.html" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{template "style"}}
</head>
<body>
<h1>{{.Title}}</h1>
{{- with .Info}}
<dl class="machine">
{{- range .}}
<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{- end}}
</dl>
{{- end}}
{{- range .Groups}}
<section>
<h2>{{.Name}}</h2>
<div class="description">{{.Description}}</div>
<table class="benchreport">
<tr><th>Benchmark</th><th>Min</th><th>Relative</th></tr>
{{- range .Benchmarks}}
<tr><td>{{if .Link}}<a href="{{url .Link}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td><td class="num">{{.Min}}</td><td class="num">{{.Scaled}}</td></tr>
{{- end}}
{{- with .Geomean}}
<tr class="geomean"><td>geomean</td><td></td><td class="num">{{.}}</td></tr>
{{- end}}
</table>
{{- if .Chart.String}}
<div class="chart">{{.Chart}}</div>
{{- end}}
</section>
{{- end}}
</body>
</html>
{{end}}

{{- define "index.html" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Benchmark reports</title>
{{template "style"}}
</head>
<body>
<h1>Benchmark reports</h1>
<ul>
{{- range .}}
<li><a href="{{url .}}">{{.}}</a></li>
{{- end}}
</ul>
</body>
</html>
{{end}}
`))
