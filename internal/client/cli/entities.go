package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/services"
)

var errUsage = errors.New("usage")

// entity resolves a plural or singular entity name to its store and
// navigates to the entity's page.
func (a *App) entity(ctx context.Context, name string) (*services.EntityStore, error) {
	res, ok := services.ResourceByName(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("unknown entity %q (one of %s)", name, entityNames())
	}
	if _, err := a.navigate(ctx, "/"+res.Singular); err != nil {
		return nil, err
	}
	return a.stores[res.Name], nil
}

// parseListQuery reads "page=2", "search=x", "name=x", "email=x",
// "per_page=N", "sort=field" and the bare word "force".
func parseListQuery(args []string) (models.ListQuery, error) {
	var q models.ListQuery
	for _, arg := range args {
		if arg == "force" {
			q.Force = true
			continue
		}
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return q, fmt.Errorf("%w: list filter %q must be name=value", errUsage, arg)
		}
		switch key {
		case "page", "per_page":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return q, fmt.Errorf("%w: %s must be a positive number", errUsage, key)
			}
			if key == "page" {
				q.Page = n
			} else {
				q.PerPage = n
			}
		case "search":
			q.Search = value
		case "name":
			q.Name = value
		case "email":
			q.Email = value
		case "sort":
			q.SortBy = value
		default:
			return q, fmt.Errorf("%w: unknown list filter %q", errUsage, key)
		}
	}
	return q, nil
}

// List fetches and prints an entity collection.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: list <entity> [filters]", errUsage)
	}
	q, err := parseListQuery(args[1:])
	if err != nil {
		return err
	}
	store, err := a.entity(ctx, args[0])
	if err != nil {
		return err
	}

	rows, err := store.FetchAll(ctx, q)
	if err != nil {
		return err
	}
	renderTable(a.out, rows, nil)

	if store.Resource().Paginated {
		p := store.Pagination()
		a.printf("Page %d of %d, %s total\n", p.CurrentPage, p.LastPage, humanize.Comma(int64(p.Total)))
		return nil
	}
	// Unpaginated lists are whole collections; keep dashboard counts current.
	a.dash.Set(store.Resource().Name, rows)
	return nil
}

// Show prints one record.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: show <entity> <id>", errUsage)
	}
	store, err := a.entity(ctx, args[0])
	if err != nil {
		return err
	}
	rec, err := store.FetchByID(ctx, args[1])
	if err != nil {
		return err
	}
	renderRecord(a.out, rec)
	return nil
}

// Create adds a record from name=value pairs given inline or, when none
// are given, typed one per line.
func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: create <entity> [name=value ...]", errUsage)
	}
	store, err := a.entity(ctx, args[0])
	if err != nil {
		return err
	}
	p, err := a.payload(args[1:])
	if err != nil {
		return err
	}

	if err := a.checkForm(store, p, false); err != nil {
		return err
	}
	rec, err := store.Create(ctx, p)
	if err != nil {
		return err
	}
	a.printf("Created %s #%s\n", store.Resource().Singular, createdID(rec))
	return nil
}

// createdID reads the id of a write response, bare or wrapped in "data".
func createdID(rec models.Record) string {
	if id := rec.ID(); id != "" {
		return id
	}
	if data, ok := rec["data"].(map[string]any); ok {
		return models.Record(data).ID()
	}
	return "?"
}

// Update changes the given fields of a record.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: update <entity> <id> [name=value ...]", errUsage)
	}
	store, err := a.entity(ctx, args[0])
	if err != nil {
		return err
	}
	p, err := a.payload(args[2:])
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return fmt.Errorf("%w: nothing to update", errUsage)
	}

	if err := a.checkForm(store, p, true); err != nil {
		return err
	}
	if _, err := store.Update(ctx, args[1], p); err != nil {
		return err
	}
	a.printf("Updated %s #%s\n", store.Resource().Singular, args[1])
	return nil
}

// Delete removes a record after confirmation. A trailing "-y" skips the
// question.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 || (len(args) == 3 && args[2] != "-y") {
		return fmt.Errorf("%w: delete <entity> <id> [-y]", errUsage)
	}
	store, err := a.entity(ctx, args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		ok, err := getConfirm(a.reader, fmt.Sprintf("Delete %s #%s?", store.Resource().Singular, args[1]), a.out)
		if err != nil {
			return err
		}
		if !ok {
			a.printf("Cancelled\n")
			return nil
		}
	}

	if _, err := store.Delete(ctx, args[1]); err != nil {
		return err
	}
	a.printf("Deleted %s #%s\n", store.Resource().Singular, args[1])
	return nil
}

func (a *App) payload(pairs []string) (models.Payload, error) {
	if len(pairs) == 0 {
		var err error
		if pairs, err = getPairs(a.reader, a.out); err != nil {
			return nil, err
		}
	}
	p, err := models.PayloadFromPairs(pairs)
	if err != nil {
		return nil, err
	}
	for name, v := range p {
		if f, ok := v.(models.File); ok {
			a.printf("Attaching %s as %s (%s)\n", f.Name, name, humanize.Bytes(uint64(len(f.Content))))
		}
	}
	return p, nil
}

func (a *App) checkForm(store *services.EntityStore, p models.Payload, partial bool) error {
	form, err := entityForm(store.Resource().Name, p, partial)
	if err != nil {
		return err
	}
	if !form.Validate() {
		return formError(form)
	}
	return nil
}
