package assets

import (
	"fmt"
	"strings"
)

// Normalize upper-cases and trims symbols, drops duplicates and keeps the
// first occurrence's position. A missing display name falls back to the symbol.
func Normalize(in []Descriptor) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(in))
	seen := map[string]struct{}{}

	for i, d := range in {
		sym := strings.ToUpper(strings.TrimSpace(d.Symbol))
		if sym == "" {
			return nil, fmt.Errorf("asset %d has an empty symbol", i)
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}

		name := strings.TrimSpace(d.DisplayName)
		if name == "" {
			name = sym
		}
		out = append(out, Descriptor{Symbol: sym, DisplayName: name})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no assets configured")
	}
	return out, nil
}

// Symbols returns the symbols of ds in order.
func Symbols(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Symbol
	}
	return out
}
