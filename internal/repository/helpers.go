package repository

import (
	"strings"
	"time"
)

// stamp formats t as the RFC3339 UTC text stored in created_at columns.
func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// chunk splits keys so each query stays under SQLite's variable limit.
func chunk(keys []string, size int) [][]string {
	var out [][]string
	for len(keys) > size {
		out = append(out, keys[:size])
		keys = keys[size:]
	}
	if len(keys) > 0 {
		out = append(out, keys)
	}
	return out
}
