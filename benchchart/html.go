// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"io"

	"github.com/google/safehtml/template"
)

// An IndexEntry describes one saved chart in an HTML index.
type IndexEntry struct {
	Title    string
	File     string // image path, relative to the index
	Families []string
}

var htmlTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Entries -}}
<div class="chart">
<h2>{{if .Title}}{{.Title}}{{else}}{{.File}}{{end}}</h2>
<a href="{{.File}}"><img src="{{.File}}" alt="{{.Title}}"></a>
<div class="families">{{range $i, $f := .Families}}{{if $i}}, {{end}}{{$f}}{{end}}</div>
</div>
{{end -}}
</body>
</html>
`))

// FormatHTML writes an HTML page titled title that shows every chart
// of entries.
func FormatHTML(w io.Writer, title string, entries []IndexEntry) error {
	return htmlTemplate.Execute(w, struct {
		Title   string
		Entries []IndexEntry
	}{title, entries})
}
