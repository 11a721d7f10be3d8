package parse

import "strings"

// Status normalizes a free-text status cell: uppercase and trim, keep the
// value if it is one of the allowed labels, otherwise fall back to def.
func Status(raw string, allowed []string, def string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}
