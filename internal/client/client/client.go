package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// Client is the transport contract the stores depend on.
type Client interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// TokenSource yields the bearer token to attach, or "" for none.
type TokenSource interface {
	Token() string
}

// Navigator owns the current location of the front-end.
type Navigator interface {
	Location() string
	Redirect(path string)
}

// SessionClearer drops the authenticated session.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   Body
}

func Get(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

func Post(path string, body Body) Request {
	return Request{Method: http.MethodPost, Path: path, Body: body}
}

func Put(path string, body Body) Request {
	return Request{Method: http.MethodPut, Path: path, Body: body}
}

func Delete(path string) Request {
	return Request{Method: http.MethodDelete, Path: path}
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON parses the body lazily.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}
