package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/repositories/activities"
	"github.com/dmitrijs2005/myadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_RecordAndFetch(t *testing.T) {
	ctx := context.Background()
	svc := NewActivityService(activities.NewSQLiteRepository(setupDB(t)), logging.Nop())

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc.nowFn = func() time.Time { return now.Add(-time.Hour) }
	require.NoError(t, svc.Record(ctx, models.ActivityDelete, "degrees", "Degree deleted", "#3"))
	svc.nowFn = func() time.Time { return now.Add(-2 * time.Minute) }
	require.NoError(t, svc.Record(ctx, models.ActivityCreate, "skills", "New skill added", "Go"))

	svc.nowFn = func() time.Time { return now }
	got, err := svc.Fetch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "New skill added", got[0].Title)
	assert.Equal(t, "green", got[0].Badge)
	assert.Equal(t, "2 mins ago", got[0].Time)
	assert.Equal(t, "red", got[1].Badge)
	assert.Equal(t, "1 hour ago", got[1].Time)

	assert.Len(t, svc.Items(), 2)
	assert.False(t, svc.Loading())
	assert.NoError(t, svc.Err())
}

type brokenActivities struct{}

func (brokenActivities) Insert(context.Context, models.Activity) (int64, error) {
	return 0, errors.New("ro")
}

func (brokenActivities) Recent(context.Context, int) ([]models.Activity, error) {
	return nil, errors.New("locked")
}

func (brokenActivities) Prune(context.Context, int) error { return nil }

func TestActivity_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewActivityService(brokenActivities{}, logging.Nop())

	require.ErrorContains(t, svc.Record(ctx, "POST", "skills", "x", ""), "record activity: ro")

	_, err := svc.Fetch(ctx, 5)
	require.ErrorContains(t, err, "failed to load activities: locked")
	assert.Equal(t, err, svc.Err())
	assert.False(t, svc.Loading())
}
