package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dmitrijs2005/myadmin/internal/client/export"
	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

// maxCell is the widest cell a table prints before eliding.
const maxCell = 40

// renderTable prints rows as aligned columns. Nested values are shown as
// compact JSON.
func renderTable(w io.Writer, rows []models.Record, cols []export.Column) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data to display")
		return
	}
	if len(cols) == 0 {
		cols = export.DefaultColumns(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = strings.ToUpper(columnLabel(c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := row[c.Key]; ok && v != nil {
				cells[i] = elide(export.CellText(v), maxCell)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

// renderRecord prints one record as "key: value" lines, id first.
func renderRecord(w io.Writer, rec models.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, c := range export.DefaultColumns([]models.Record{rec}) {
		v := ""
		if rec[c.Key] != nil {
			v = export.CellText(rec[c.Key])
		}
		fmt.Fprintf(tw, "%s:\t%s\n", c.Key, v)
	}
	_ = tw.Flush()
}

func columnLabel(c export.Column) string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

func elide(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
