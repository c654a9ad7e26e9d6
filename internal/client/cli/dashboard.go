package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/myadmin/internal/client/dashboard"
	"github.com/dmitrijs2005/myadmin/internal/client/export"
	"github.com/dmitrijs2005/myadmin/internal/client/router"
)

const defaultActivityLimit = 10

// Dashboard loads every collection and prints the summary widgets. Failed
// collections count as empty and are reported after the widgets.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	if _, err := a.navigate(ctx, router.ByName(router.Dashboard).Path); err != nil {
		return err
	}

	fetchErr := a.dash.Fetch(ctx)

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, card := range a.dash.StatCards() {
		fmt.Fprintf(tw, "%s\t%s\t+%.1f%%\n", card.Label, humanize.Comma(int64(card.Value)), card.Change)
	}
	_ = tw.Flush()

	a.printf("\nRecords per entity\n")
	bars := a.dash.BarChart()
	widest := 1
	for _, b := range bars {
		widest = max(widest, b.Height)
	}
	tw = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, b := range bars {
		fmt.Fprintf(tw, "%s\t%s %d\n", b.Label, strings.Repeat("█", b.Height*30/widest), b.Height)
	}
	_ = tw.Flush()

	a.printf("\nGoals\n")
	tw = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range a.dash.Progress() {
		fmt.Fprintf(tw, "%s\t[%-20s] %d%%\n", p.Label, strings.Repeat("#", p.Value/5), p.Value)
	}
	_ = tw.Flush()

	summary := a.dash.Summary()
	a.printf("\nData accuracy %s, total records %s\n", summary.DataAccuracy, summary.TotalRecords)

	if recent := a.dash.RecentUsers(a.cfg.RecentUsersLimit); len(recent) > 0 {
		a.printf("\nRecent users\n")
		renderTable(a.out, recent, []export.Column{
			{Key: "id", Label: "id"},
			{Key: "name", Label: "name"},
			{Key: "email", Label: "email"},
			{Key: "created_at", Label: "joined"},
		})
	}

	a.printf("\nQuick actions:")
	for _, qa := range dashboard.QuickActions() {
		a.printf(" [create %s] %s;", qa.Resource, qa.Label)
	}
	a.printf("\n")

	if fetchErr != nil {
		return fmt.Errorf("some collections failed to load: %w", fetchErr)
	}
	return nil
}

// Activity prints the newest writes made from this client.
func (a *App) Activity(ctx context.Context, args []string) error {
	if _, err := a.navigate(ctx, router.ByName(router.Analytics).Path); err != nil {
		return err
	}

	limit := defaultActivityLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("%w: activity [limit]", errUsage)
		}
		limit = n
	}

	items, err := a.activity.Fetch(ctx, limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("No recent activity\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%s\t%s\n", it.Method, it.Badge, it.Title, it.Meta, it.Time)
	}
	_ = tw.Flush()
	return nil
}
