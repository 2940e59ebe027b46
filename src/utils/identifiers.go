package utils

import "strings"

// ParseIdentifiers splits a comma-separated query value. Entries are trimmed
// and blanks dropped; duplicates are kept in order. An empty result falls back
// to a copy of defaults.
func ParseIdentifiers(raw string, defaults []string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return append([]string(nil), defaults...)
	}
	return ids
}
