// Package export turns record lists into CSV, JSON or a printable HTML
// table and writes them to the export directory.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

var (
	ErrNoData        = errors.New("no data to export")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Formats accepted by Write and WriteFile.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatPrint = "print"
)

// Column selects a record key and names its header. An empty Label uses
// the key.
type Column struct {
	Key   string
	Label string
}

func (c Column) header() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Columns builds label-less columns from keys.
func Columns(keys ...string) []Column {
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{Key: k})
	}
	return cols
}

// DefaultColumns takes the keys of the first row: id first, then the rest
// sorted.
func DefaultColumns(rows []models.Record) []Column {
	if len(rows) == 0 {
		return nil
	}
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := rows[0]["id"]; ok {
		keys = append([]string{"id"}, keys...)
	}
	return Columns(keys...)
}

// ToCSV quotes every header and value, doubling embedded quotes. Missing
// and null values are written as empty, unquoted cells. Rows are joined
// with "\n". Empty input yields "".
func ToCSV(rows []models.Record, cols []Column) string {
	if len(rows) == 0 {
		return ""
	}
	if len(cols) == 0 {
		cols = DefaultColumns(rows)
	}

	lines := make([]string, 0, len(rows)+1)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = quote(c.header())
	}
	lines = append(lines, strings.Join(header, ","))

	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			v, ok := row[c.Key]
			if !ok || v == nil {
				continue
			}
			cells[i] = quote(CellText(v))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ToJSON encodes rows, indented by two spaces when pretty.
func ToJSON(rows []models.Record, pretty bool) (string, error) {
	if rows == nil {
		rows = []models.Record{}
	}
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(rows, "", "  ")
	} else {
		b, err = json.Marshal(rows)
	}
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

// CellText renders a cell value: scalars as typed, objects and arrays as
// compact JSON.
func CellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
