// Package models defines the client-side data shapes of the admin API:
// loosely typed entity records, write payloads, the profile user,
// pagination and the local activity log entry.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one entity as the server sent it. Its shape is server-defined;
// only "id" is relied upon. Numbers are kept as json.Number.
type Record map[string]any

// ID returns the record id rendered as a string, or "" when absent.
func (r Record) ID() string {
	return r.String("id")
}

// String renders the value under key without float formatting noise.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Int returns the value under key as an int64 when it is numeric.
func (r Record) Int(key string) (int64, bool) {
	switch t := r[key].(type) {
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses the value under key as a timestamp in any layout the API uses.
func (r Record) Time(key string) (time.Time, bool) {
	s := strings.TrimSpace(r.String(key))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DecodeRecord decodes a JSON object into a Record.
func DecodeRecord(raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeRecords decodes a JSON array of objects.
func DecodeRecords(raw []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rs []Record
	if err := dec.Decode(&rs); err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []Record{}
	}
	return rs, nil
}
