package normalize

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts is tried in order, so the earlier form wins for ambiguous
// inputs: "02/03/2024" binds to the month-first layout. The non-padded
// layout digits accept both "01/02/2024" and "1/2/2024".
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"1-2-2006",
	"2-1-2006",
	"2006/1/2",
	"2.1.2006",
	"1.2.2006",
	"2006.1.2",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// fallbackLayouts catches datetime-ish values the fixed ladder misses.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-1-2 15:04:05",
	"2006-1-2T15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04",
	"1/2/2006 15:04",
	"2 Jan 2006 15:04",
}

// Date parses a raw date cell. The boolean is false when the value is absent
// or no supported form matches; bad dates are absorbed, never errors.
func Date(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}

	// All-digit strings of epoch width are unix seconds.
	if len(trimmed) >= 9 && len(trimmed) <= 11 {
		if secs, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC(), true
		}
	}

	return time.Time{}, false
}
