// Package dashboard aggregates the reference collections into the widgets
// shown on the dashboard home: bar chart, goal progress, summary, stat
// cards and the newest users.
//
// Store only holds the fetched collections. Every widget is derived from
// them on each call.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/myadmin/internal/client/client"
	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Collections fetched by Fetch, in request order.
const (
	Skills     = "skills"
	Subjects   = "subjects"
	Schools    = "schools"
	Degrees    = "degrees"
	Categories = "categories"
	Users      = "users"
)

var collections = []string{Skills, Subjects, Schools, Degrees, Categories, Users}

// DefaultConcurrency fetches every collection at once.
const DefaultConcurrency = 6

type Store struct {
	client      client.Client
	concurrency int
	log         logging.Logger

	mu      sync.RWMutex
	lists   map[string][]models.Record
	loading bool
	err     error
}

type Option func(*Store)

func WithConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(c client.Client, opts ...Option) *Store {
	s := &Store{
		client:      c,
		concurrency: DefaultConcurrency,
		log:         logging.Nop(),
		lists:       map[string][]models.Record{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("store", "dashboard")
	return s
}

// Fetch loads every collection concurrently. Each fetch settles on its own:
// a failed collection is left empty and the others are still applied. The
// returned error joins every failure and is also kept in Err.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	results := make([][]models.Record, len(collections))
	failures := make([]error, len(collections))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, name := range collections {
		g.Go(func() error {
			records, err := s.fetchOne(ctx, name)
			if err != nil {
				failures[i] = fmt.Errorf("%s: %w", name, err)
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(failures...)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, name := range collections {
		if results[i] == nil {
			results[i] = []models.Record{}
		}
		s.lists[name] = results[i]
	}
	s.loading = false
	s.err = err

	if err != nil {
		s.log.Error(ctx, "failed to fetch dashboard data", "error", err)
	}
	return err
}

func (s *Store) fetchOne(ctx context.Context, name string) ([]models.Record, error) {
	resp, err := s.client.Do(ctx, client.Get("/api/"+name, nil))
	if err != nil {
		return nil, err
	}
	return client.DecodeList(resp.Body)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Collection returns a copy of the named collection.
func (s *Store) Collection(name string) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Record(nil), s.lists[name]...)
}

// Set replaces a collection, e.g. after an entity store refreshed it.
func (s *Store) Set(name string, records []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[name] = append([]models.Record(nil), records...)
}

func (s *Store) counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Skills:     len(s.lists[Skills]),
		Schools:    len(s.lists[Schools]),
		Degrees:    len(s.lists[Degrees]),
		Subjects:   len(s.lists[Subjects]),
		Categories: len(s.lists[Categories]),
		Users:      len(s.lists[Users]),
	}
}

func (s *Store) BarChart() []Bar { return BarChart(s.counts()) }

func (s *Store) Progress() []ProgressItem { return Progress(s.counts()) }

func (s *Store) Summary() Summary { return SummaryOf(s.counts()) }

func (s *Store) StatCards() []StatCard { return StatCards(s.counts()) }

// RecentUsers returns the n newest users by created_at.
func (s *Store) RecentUsers(n int) []models.Record {
	return NewestFirst(s.Collection(Users), "created_at", n)
}
