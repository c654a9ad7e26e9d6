package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/export"
	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

// Export writes the loaded collection of an entity to the export directory
// as CSV, JSON or a printable HTML page. The collection is fetched first
// when the store has nothing loaded.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: export <entity> <csv|json|print> [file name]", errUsage)
	}
	format := strings.ToLower(args[1])
	switch format {
	case export.FormatCSV, export.FormatJSON, export.FormatPrint:
	default:
		return fmt.Errorf("%w: %q", export.ErrUnknownFormat, args[1])
	}

	store, err := a.entity(ctx, args[0])
	if err != nil {
		return err
	}

	rows := store.Items()
	if len(rows) == 0 {
		if rows, err = store.FetchAll(ctx, models.ListQuery{}); err != nil {
			return err
		}
	}

	name := store.Resource().Name + "-" + a.nowFn().Format("20060102-150405")
	if len(args) == 3 {
		name = args[2]
	}

	path, err := export.WriteFile(a.cfg.ExportDir, name, format, rows, nil)
	if err != nil {
		return fmt.Errorf("export %s: %w", store.Resource().Name, err)
	}
	a.printf("Exported %d %s to %s\n", len(rows), store.Resource().Name, path)
	return nil
}
