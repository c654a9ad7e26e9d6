package router

import (
	"context"
	"sync"
)

// Router runs the guard for every navigation, records the landing route in
// the history and keeps the window title.
type Router struct {
	history *History
	guard   *Guard

	mu    sync.RWMutex
	title string
}

func New(h *History, g *Guard) *Router {
	return &Router{history: h, guard: g, title: Match(h.Location()).WindowTitle()}
}

// Push navigates to path and returns the route actually shown.
func (r *Router) Push(ctx context.Context, path string) Route {
	landed := r.guard.Resolve(ctx, Match(path))

	r.mu.Lock()
	r.title = landed.WindowTitle()
	r.mu.Unlock()

	r.history.Push(landed.Path)
	return landed
}

// PushName navigates to a named route.
func (r *Router) PushName(ctx context.Context, name string) Route {
	return r.Push(ctx, ByName(name).Path)
}

// Current is the route at the history's location, which redirects outside
// the router may have changed.
func (r *Router) Current() Route {
	return Match(r.history.Location())
}

func (r *Router) Title() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.title
}
