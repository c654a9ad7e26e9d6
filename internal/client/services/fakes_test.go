package services

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/dmitrijs2005/myadmin/internal/client/client"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for unit tests. Routes are keyed by
// "METHOD /path".
type fakeClient struct {
	mu       sync.Mutex
	routes   map[string]func(req client.Request) (*client.Response, error)
	requests []client.Request
}

func newFakeClient() *fakeClient {
	return &fakeClient{routes: map[string]func(client.Request) (*client.Response, error){}}
}

func (f *fakeClient) on(method, path string, h func(req client.Request) (*client.Response, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeClient) reply(method, path string, status int, body string) {
	f.on(method, path, func(client.Request) (*client.Response, error) {
		return respond(status, body)
	})
}

func (f *fakeClient) Do(_ context.Context, req client.Request) (*client.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	h, ok := f.routes[req.Method+" "+req.Path]
	f.mu.Unlock()
	if !ok {
		return respond(http.StatusNotFound, `{"message":"no route"}`)
	}
	return h(req)
}

func (f *fakeClient) calls(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeClient) last() client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// respond mimics HTTPClient: statuses >= 400 become *client.APIError.
func respond(status int, body string) (*client.Response, error) {
	if status >= http.StatusBadRequest {
		return nil, &client.APIError{
			Status:  status,
			Message: client.NormalizeMessage([]byte(body), status),
			Body:    []byte(body),
		}
	}
	return &client.Response{Status: status, Body: []byte(body)}, nil
}

func encodeBody(t *testing.T, b client.Body) (string, string) {
	t.Helper()
	r, ct, err := b.Encode()
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data), ct
}

type fakeNav struct {
	location  string
	redirects []string
}

func (f *fakeNav) Location() string { return f.location }

func (f *fakeNav) Redirect(path string) {
	f.location = path
	f.redirects = append(f.redirects, path)
}

type recordedActivity struct {
	method, resource, title, meta string
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []recordedActivity
}

func (f *fakeRecorder) Record(_ context.Context, method, resource, title, meta string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, recordedActivity{method, resource, title, meta})
	return nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
