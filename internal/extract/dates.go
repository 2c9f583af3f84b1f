package extract

import (
	"strings"
	"time"
)

// Date layouts accepted anywhere a contract date appears.
var dateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
}

// ParseDate parses a contract date string in one of the two accepted
// formats. A value matching neither format is reported as absent via
// ok=false, never as an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
