package recruiting

import (
	"strings"
	"time"
)

// ParseGameScore splits a scout-entered game score like "W 35-14" into a
// result ("W" or "L") and the remaining score text. Strings without the
// leading result letter come back whole with an empty result.
func ParseGameScore(s string) (result, score string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if len(s) >= 2 && (s[0] == 'W' || s[0] == 'L') && s[1] == ' ' {
		return string(s[0]), strings.TrimSpace(s[1:])
	}
	return "", s
}

// ReformatDate converts a scout-entered MM/DD/YYYY date to YYYY-MM-DD.
// Anything that does not parse passes through unchanged.
func ReformatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}
