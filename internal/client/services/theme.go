package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/myadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/myadmin/internal/common"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeService keeps the dark/light flag, persisted under common.ThemeKey.
type ThemeService struct {
	store localstore.Repository

	mu   sync.RWMutex
	dark bool
}

// NewThemeService starts from the saved theme, light when none is saved.
func NewThemeService(ctx context.Context, store localstore.Repository) (*ThemeService, error) {
	t := &ThemeService{store: store}
	saved, ok, err := t.saved(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		t.dark = saved == ThemeDark
	}
	return t, nil
}

func (t *ThemeService) IsDark() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

func (t *ThemeService) Name() string {
	if t.IsDark() {
		return ThemeDark
	}
	return ThemeLight
}

func (t *ThemeService) Set(ctx context.Context, dark bool) error {
	value := ThemeLight
	if dark {
		value = ThemeDark
	}
	if err := t.store.Set(ctx, common.ThemeKey, value); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	t.mu.Lock()
	t.dark = dark
	t.mu.Unlock()
	return nil
}

func (t *ThemeService) Toggle(ctx context.Context) error {
	return t.Set(ctx, !t.IsDark())
}

// Init applies the saved theme, or prefersDark when nothing is saved.
func (t *ThemeService) Init(ctx context.Context, prefersDark bool) error {
	saved, ok, err := t.saved(ctx)
	if err != nil {
		return err
	}
	if ok {
		return t.Set(ctx, saved == ThemeDark)
	}
	return t.Set(ctx, prefersDark)
}

func (t *ThemeService) saved(ctx context.Context) (string, bool, error) {
	v, err := t.store.Get(ctx, common.ThemeKey)
	if errors.Is(err, common.ErrorNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load theme: %w", err)
	}
	return v, v != "", nil
}
