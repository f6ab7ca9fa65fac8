// Package sanitizer normalizes free-text input before validation and
// storage. Client names and venue names keep their display casing; labels
// are lowercased for comparison.
package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// SanitizeDisplayName trims and collapses whitespace but preserves casing;
// client and venue names render back to the user as entered.
func SanitizeDisplayName(input string) string {
	p := Pipeline{TrimAndNormalize}
	return p.Apply(input)
}

// SanitizeLabel produces a lowercase comparison key for catalog labels and
// event types.
func SanitizeLabel(input string) string {
	p := Pipeline{
		TrimAndNormalize,
		strings.ToLower,
	}
	return p.Apply(input)
}

// SanitizeSlice applies a strategy to every element, dropping empties and
// duplicates while keeping first-seen order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// ClampTaxPercent bounds a tax percentage to [0, 100].
func ClampTaxPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
