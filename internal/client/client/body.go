package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

// Body encodes a request payload and reports its content type.
type Body interface {
	Encode() (io.Reader, string, error)
}

type jsonBody struct{ v any }

// JSON encodes v as application/json.
func JSON(v any) Body { return jsonBody{v: v} }

func (b jsonBody) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

type formBody struct{ values url.Values }

// Form encodes values as application/x-www-form-urlencoded.
func Form(values url.Values) Body { return formBody{values: values} }

func (b formBody) Encode() (io.Reader, string, error) {
	return strings.NewReader(b.values.Encode()), "application/x-www-form-urlencoded", nil
}

type multipartBody struct {
	payload    models.Payload
	fileFields []string
}

// Multipart encodes p as multipart/form-data. The named file fields are
// written first when they hold a models.File, followed by every other
// non-nil field in name order.
func Multipart(p models.Payload, fileFields ...string) Body {
	return multipartBody{payload: p, fileFields: fileFields}
}

func (b multipartBody) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	isFileField := make(map[string]bool, len(b.fileFields))
	for _, name := range b.fileFields {
		isFileField[name] = true
		f, ok := b.payload[name].(models.File)
		if !ok {
			continue
		}
		part, err := w.CreateFormFile(name, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", name, err)
		}
	}

	scalars := b.payload.Scalars()
	keys := make([]string, 0, len(scalars))
	for k := range scalars {
		if !isFileField[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range formValues(scalars[k]) {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func formValues(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{t}
	default:
		return []string{fmt.Sprint(t)}
	}
}
