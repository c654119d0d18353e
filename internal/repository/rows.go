package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// decodeRows unmarshals a PostgREST response body into generic rows.
func decodeRows(data []byte) ([]map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return rows, nil
}

// Helper functions for type conversion
func getString(data map[string]interface{}, key string) string {
	if val, ok := data[key]; ok && val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getStringPointer(data map[string]interface{}, key string) *string {
	if s := getString(data, key); s != "" {
		return &s
	}
	return nil
}

func getBool(data map[string]interface{}, key string) bool {
	if val, ok := data[key]; ok && val != nil {
		switch v := val.(type) {
		case bool:
			return v
		case string:
			return v == "true" || v == "1"
		case float64:
			return v != 0
		}
	}
	return false
}

func getFloat64Pointer(data map[string]interface{}, key string) *float64 {
	if val, ok := data[key]; ok && val != nil {
		switch v := val.(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		}
	}
	return nil
}

// timestampLayouts covers what PostgREST returns for timestamptz plus the
// offset-less form of timestamp columns. Postgres may omit the minutes of the
// offset ("+00" instead of "+00:00"), which RFC3339 rejects. Values without an
// offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// getTime parses a timestamp column. ok is false when the column is null or
// empty. A value that is present but unparsable is an error, never a zero time.
func getTime(data map[string]interface{}, key string) (time.Time, bool, error) {
	raw := getString(data, key)
	if raw == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid timestamp in column %s: %q", key, raw)
}

func getTimePointer(data map[string]interface{}, key string) (*time.Time, error) {
	t, ok, err := getTime(data, key)
	if err != nil || !ok {
		return nil, err
	}
	return &t, nil
}

// formatTimestamp renders an instant for PostgREST filters. UTC keeps '+'
// out of the query string.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

var nulReplacer = strings.NewReplacer("\x00", "", "\\u0000", "")

// sanitizeText removes characters that PostgreSQL rejects in text fields (notably NUL bytes).
func sanitizeText(s string) string {
	if s == "" {
		return s
	}
	return nulReplacer.Replace(s)
}
