package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrIncorrectPair = errors.New("payload item must be name=value")

// Payload is the body of a create/update call. A File value marks a file
// field and switches multipart-capable resources to multipart encoding.
type Payload map[string]any

// File is an in-memory file attached to a Payload.
type File struct {
	Name    string
	Content []byte
}

// FileFromPath reads path into a File named after its base name.
func FileFromPath(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Content: b}, nil
}

// HasFile reports whether any of the given fields holds a File.
func (p Payload) HasFile(fields ...string) bool {
	for _, f := range fields {
		if _, ok := p[f].(File); ok {
			return true
		}
	}
	return false
}

// Scalars returns the payload without File values and without nils.
func (p Payload) Scalars() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		if _, isFile := v.(File); isFile {
			continue
		}
		out[k] = v
	}
	return out
}

// PayloadFromPairs parses "name=value" items as typed on the command line.
// A value starting with '@' is a path to a file to attach.
func PayloadFromPairs(items []string) (Payload, error) {
	p := make(Payload, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectPair, item)
		}
		if strings.HasPrefix(value, "@") {
			f, err := FileFromPath(value[1:])
			if err != nil {
				return nil, err
			}
			p[name] = f
			continue
		}
		p[name] = value
	}
	return p, nil
}
