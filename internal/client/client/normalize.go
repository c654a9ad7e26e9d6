package client

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/tidwall/gjson"
)

// NormalizeMessage collapses the error shapes the API produces into a single
// message. Recognized shapes, in priority order: {message}, {error} as a
// string or {error: {message}}, {errors: {field: [msg, ...]}}, a bare JSON
// string and plain text. Anything else falls back to the status text.
func NormalizeMessage(body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return statusMessage(status)
	}
	if !gjson.ValidBytes(trimmed) {
		return string(trimmed)
	}

	r := gjson.ParseBytes(trimmed)
	if r.Type == gjson.String {
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
		return statusMessage(status)
	}
	if !r.IsObject() {
		return statusMessage(status)
	}

	if m := r.Get("message"); m.Type == gjson.String && strings.TrimSpace(m.String()) != "" {
		return m.String()
	}

	e := r.Get("error")
	if e.Type == gjson.String && strings.TrimSpace(e.String()) != "" {
		return e.String()
	}
	if m := e.Get("message"); e.IsObject() && m.Type == gjson.String && m.String() != "" {
		return m.String()
	}

	if msg := joinFieldErrors(r.Get("errors")); msg != "" {
		return msg
	}

	return statusMessage(status)
}

func joinFieldErrors(errs gjson.Result) string {
	var parts []string
	switch {
	case errs.IsObject():
		fields := make([]string, 0)
		errs.ForEach(func(k, _ gjson.Result) bool {
			fields = append(fields, k.String())
			return true
		})
		sort.Strings(fields)
		for _, f := range fields {
			parts = append(parts, messages(errs.Get(gjson.Escape(f)))...)
		}
	case errs.IsArray():
		parts = messages(errs)
	case errs.Type == gjson.String:
		parts = []string{errs.String()}
	}
	return strings.Join(parts, "; ")
}

func messages(v gjson.Result) []string {
	var out []string
	add := func(r gjson.Result) {
		switch {
		case r.Type == gjson.String && r.String() != "":
			out = append(out, r.String())
		case r.IsObject() && r.Get("message").String() != "":
			out = append(out, r.Get("message").String())
		}
	}
	if v.IsArray() {
		for _, item := range v.Array() {
			add(item)
		}
		return out
	}
	add(v)
	return out
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}

// ExtractList returns the raw JSON of the record list in body, looking at
// data.items, then data, then the root. Missing lists yield "[]".
func ExtractList(body []byte) string {
	r := gjson.ParseBytes(body)
	for _, path := range []string{"data.items", "data"} {
		if v := r.Get(path); v.IsArray() {
			return v.Raw
		}
	}
	if r.IsArray() {
		return r.Raw
	}
	return "[]"
}

// ExtractObject returns the raw JSON of the record under data, or the root
// object when there is no envelope.
func ExtractObject(body []byte) string {
	r := gjson.ParseBytes(body)
	if v := r.Get("data"); v.IsObject() {
		return v.Raw
	}
	if r.IsObject() {
		return r.Raw
	}
	return "{}"
}

// ExtractPagination reads page info from the root, data or meta. Absent or
// zero values fall back to the defaults.
func ExtractPagination(body []byte) models.Pagination {
	p := models.DefaultPagination()
	r := gjson.ParseBytes(body)

	var src gjson.Result
	for _, candidate := range []gjson.Result{r, r.Get("meta"), r.Get("data")} {
		if candidate.IsObject() && candidate.Get("current_page").Exists() {
			src = candidate
			break
		}
	}
	if !src.Exists() {
		return p
	}

	if v := src.Get("current_page").Int(); v > 0 {
		p.CurrentPage = int(v)
	}
	if v := src.Get("last_page").Int(); v > 0 {
		p.LastPage = int(v)
	}
	if v := src.Get("total").Int(); v > 0 {
		p.Total = int(v)
	}
	if v := src.Get("per_page").Int(); v > 0 {
		p.PerPage = int(v)
	}
	return p
}

// DecodeList is ExtractList followed by models.DecodeRecords.
func DecodeList(body []byte) ([]models.Record, error) {
	return models.DecodeRecords([]byte(ExtractList(body)))
}

// DecodeObject is ExtractObject followed by models.DecodeRecord.
func DecodeObject(body []byte) (models.Record, error) {
	return models.DecodeRecord([]byte(ExtractObject(body)))
}
