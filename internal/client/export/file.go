package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/filex"
)

// Render produces the document for format and its file extension.
func Render(format string, rows []models.Record, title string, cols []Column, now time.Time) (string, string, error) {
	if len(rows) == 0 {
		return "", "", ErrNoData
	}
	switch strings.ToLower(format) {
	case FormatCSV:
		return ToCSV(rows, cols), ".csv", nil
	case FormatJSON:
		doc, err := ToJSON(rows, true)
		return doc, ".json", err
	case FormatPrint:
		doc, err := PrintHTML(rows, title, cols, now)
		return doc, ".html", err
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile renders rows and writes them to dir/name.<ext>, creating dir
// when needed. It returns the absolute path written.
func WriteFile(dir, name, format string, rows []models.Record, cols []Column) (string, error) {
	doc, ext, err := Render(format, rows, name, cols, time.Now())
	if err != nil {
		return "", err
	}

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = "export"
	}
	path := filepath.Join(abs, filepath.Base(name)+ext)

	if err := os.WriteFile(path, []byte(doc), 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
