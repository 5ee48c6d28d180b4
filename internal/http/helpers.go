package http

import (
	"fmt"
	"net/url"
	"strings"
)

func normalizeOrigin(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	u, err := url.Parse(in)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(u.Scheme), strings.ToLower(u.Host))
}

// normalizeOrigins drops malformed entries and duplicates. An empty result
// falls back to the local dev server.
func normalizeOrigins(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, o := range in {
		n := normalizeOrigin(o)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		out = append(out, "http://localhost:3000")
	}
	return out
}
