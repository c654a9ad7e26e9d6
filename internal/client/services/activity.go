package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/repositories/activities"
	"github.com/dmitrijs2005/myadmin/internal/logging"
	"github.com/dmitrijs2005/myadmin/internal/timex"
)

// maxActivities is how many log entries survive a write.
const maxActivities = 500

// ActivityView is an activity ready for the feed.
type ActivityView struct {
	models.Activity
	Badge string
	Time  string
}

// ActivityService is the recent-activity feed backed by the local log.
type ActivityService struct {
	repo  activities.Repository
	log   logging.Logger
	nowFn func() time.Time

	mu      sync.RWMutex
	items   []ActivityView
	loading bool
	err     error
}

func NewActivityService(repo activities.Repository, log logging.Logger) *ActivityService {
	return &ActivityService{
		repo:  repo,
		log:   log.With("store", "activity"),
		nowFn: time.Now,
		items: []ActivityView{},
	}
}

// Record implements ActivityRecorder.
func (a *ActivityService) Record(ctx context.Context, method, resource, title, meta string) error {
	_, err := a.repo.Insert(ctx, models.Activity{
		Method:    method,
		Resource:  resource,
		Title:     title,
		Meta:      meta,
		CreatedAt: a.nowFn(),
	})
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	if err := a.repo.Prune(ctx, maxActivities); err != nil {
		a.log.Warn(ctx, "failed to prune activities", "error", err)
	}
	return nil
}

func (a *ActivityService) Fetch(ctx context.Context, limit int) ([]ActivityView, error) {
	a.mu.Lock()
	a.loading = true
	a.err = nil
	a.mu.Unlock()

	rows, err := a.repo.Recent(ctx, limit)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.err = fmt.Errorf("failed to load activities: %w", err)
		a.log.Error(ctx, "failed to fetch activities", "error", err)
		return nil, a.err
	}

	now := a.nowFn()
	views := make([]ActivityView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ActivityView{
			Activity: row,
			Badge:    badge(row.Method),
			Time:     timex.Ago(row.CreatedAt, now),
		})
	}
	a.items = views

	out := make([]ActivityView, len(views))
	copy(out, views)
	return out, nil
}

func (a *ActivityService) Items() []ActivityView {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]ActivityView, len(a.items))
	copy(out, a.items)
	return out
}

func (a *ActivityService) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

func (a *ActivityService) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}

func badge(method string) string {
	switch method {
	case models.ActivityCreate:
		return "green"
	case models.ActivityUpdate:
		return "blue"
	case models.ActivityDelete:
		return "red"
	default:
		return "gray"
	}
}
