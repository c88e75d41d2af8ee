package normalize

import "strings"

// Category trims and lowercases a raw category cell. Idempotent; absent
// values come back as "".
func Category(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
