// Package suggest produces locality name suggestions for partial or
// misspelled user input.
//
// Matching runs in two phases. Names that start with the query (case
// insensitive) are returned first, alphabetically. The remaining names are
// scored by normalized Levenshtein similarity and kept when they reach the
// threshold, ordered by descending score with ties broken alphabetically.
// A name never appears twice.
package suggest

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/internal/options"
)

const (
	// DefaultThreshold is the minimum similarity score a fuzzy match needs.
	DefaultThreshold = 0.7
	// DefaultLimit caps the number of suggestions returned.
	DefaultLimit = 10
)

type config struct {
	threshold float64
	limit     int
}

// Option represents a functional option for configuring a suggestion query.
type Option = options.Option[*config]

// WithThreshold sets the minimum similarity score for fuzzy matches.
// The threshold must be finite and not negative; scores never exceed 1, so
// a threshold above 1 disables the fuzzy phase.
func WithThreshold(threshold float64) Option {
	return options.New(func(c *config) error {
		if threshold < 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return fmt.Errorf("%w: %v", errs.ErrInvalidThreshold, threshold)
		}
		c.threshold = threshold

		return nil
	})
}

// WithLimit caps the number of suggestions. Zero or negative means no cap.
func WithLimit(limit int) Option {
	return options.NoError(func(c *config) {
		c.limit = limit
	})
}

// Localities suggests locality names from src for the given query.
//
// An empty or all-whitespace query returns an empty result. An invalid
// threshold option returns errs.ErrInvalidThreshold.
func Localities(src database.Source, query string, opts ...Option) ([]string, error) {
	cfg := &config{threshold: DefaultThreshold, limit: DefaultLimit}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	needle := normalize(query)
	if needle == "" {
		return []string{}, nil
	}

	var prefixed []string
	type fuzzyMatch struct {
		name  string
		score float64
	}
	var fuzzy []fuzzyMatch

	for i := range src.LocalityCount() {
		name := src.LocalityAt(i)
		candidate := normalize(name)

		if strings.HasPrefix(candidate, needle) {
			prefixed = append(prefixed, name)
			continue
		}

		if score := similarity(needle, candidate); score >= cfg.threshold {
			fuzzy = append(fuzzy, fuzzyMatch{name: name, score: score})
		}
	}

	slices.Sort(prefixed)
	slices.SortFunc(fuzzy, func(a, b fuzzyMatch) int {
		if a.score != b.score {
			if a.score > b.score {
				return -1
			}

			return 1
		}

		return strings.Compare(a.name, b.name)
	})

	results := make([]string, 0, len(prefixed)+len(fuzzy))
	results = append(results, prefixed...)
	for _, m := range fuzzy {
		results = append(results, m.name)
	}

	if cfg.limit > 0 && len(results) > cfg.limit {
		results = results[:cfg.limit]
	}

	return results, nil
}

// normalize prepares user input and candidates for case-insensitive
// comparison.
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// similarity is the normalized Levenshtein score: 1 for equal strings,
// falling towards 0 as the edit distance approaches the length of the
// longer string. Lengths are counted in runes so diacritics weigh the
// same as ASCII.
func similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)

	return 1.0 - float64(distance)/float64(maxLen)
}
