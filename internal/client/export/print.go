package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 20px; }
      h1 { text-align: center; color: #333; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; }
      th { background-color: #f5f5f5; padding: 12px; text-align: left; border: 1px solid #ddd; font-weight: bold; }
      td { padding: 10px; border: 1px solid #ddd; }
      tr:nth-child(even) { background-color: #f9f9f9; }
      @media print { body { margin: 0; } }
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
    <table>
      <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
    </table>
    <p style="text-align: center; color: #999; margin-top: 30px; font-size: 12px;">
      Exported on {{.ExportedAt}}
    </p>
  </body>
</html>
`))

const noData = "<p>No data to display</p>"

// PrintHTML renders rows as a standalone printable page. Values are
// escaped by html/template.
func PrintHTML(rows []models.Record, title string, cols []Column, now time.Time) (string, error) {
	if len(rows) == 0 {
		return noData, nil
	}
	if len(cols) == 0 {
		cols = DefaultColumns(rows)
	}
	if title == "" {
		title = "Export"
	}

	data := struct {
		Title      string
		Headers    []string
		Rows       [][]string
		ExportedAt string
	}{
		Title:      title,
		ExportedAt: now.Format("2006-01-02 15:04:05"),
	}
	for _, c := range cols {
		data.Headers = append(data.Headers, c.header())
	}
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := row[c.Key]; ok && v != nil {
				cells[i] = CellText(v)
			}
		}
		data.Rows = append(data.Rows, cells)
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render print page: %w", err)
	}
	return buf.String(), nil
}
