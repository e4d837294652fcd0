package source

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseTime parses RFC3339 first and any other common layout after,
// zero time means the value could not be parsed
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t
	}
	return time.Time{}
}
