package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/myadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_InitUsesPreferenceWhenNothingSaved(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewSQLiteRepository(setupDB(t))

	th, err := NewThemeService(ctx, store)
	require.NoError(t, err)
	assert.False(t, th.IsDark())

	require.NoError(t, th.Init(ctx, true))
	assert.True(t, th.IsDark())

	v, err := store.Get(ctx, common.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, v)
}

func TestTheme_SavedValueWinsOverPreference(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewSQLiteRepository(setupDB(t))
	require.NoError(t, store.Set(ctx, common.ThemeKey, ThemeLight))

	th, err := NewThemeService(ctx, store)
	require.NoError(t, err)
	require.NoError(t, th.Init(ctx, true))
	assert.False(t, th.IsDark())
	assert.Equal(t, ThemeLight, th.Name())
}

func TestTheme_Toggle(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewSQLiteRepository(setupDB(t))
	require.NoError(t, store.Set(ctx, common.ThemeKey, ThemeDark))

	th, err := NewThemeService(ctx, store)
	require.NoError(t, err)
	assert.True(t, th.IsDark())

	require.NoError(t, th.Toggle(ctx))
	assert.False(t, th.IsDark())
	v, err := store.Get(ctx, common.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, v)
}
