package ingest

// DefaultMaxSkipRatio is the skip ratio above which a build should be treated
// as suspect. The pipeline never fails on skipped records by itself; callers
// compare Stats.SkipRatio against this bound and decide whether to warn or
// abort.
const DefaultMaxSkipRatio = 0.10

// Stats counts what a build accepted, filtered and skipped.
//
// Filtered records are expected churn in the source data: objects with an end
// of validity or without an issued name. Skipped records are the suspicious
// ones — unparsable fields, invalid postal codes, or references to objects
// that were never accepted.
type Stats struct {
	// Localities is the number of accepted locality records.
	Localities int

	// PublicSpaces is the number of accepted public space records.
	PublicSpaces int

	// Addresses is the number of accepted address records.
	Addresses int

	// Ranges is the number of address ranges after merging.
	Ranges int

	// Filtered is the number of historical or not-issued records dropped
	// across all three object types.
	Filtered int

	// Skipped is the number of malformed or unresolvable records dropped
	// across all three object types.
	Skipped int
}

// SkipRatio returns the fraction of records that were skipped as malformed or
// unresolvable, relative to everything that was either accepted or skipped.
// Filtered records do not count against the ratio.
func (s Stats) SkipRatio() float64 {
	total := s.Localities + s.PublicSpaces + s.Addresses + s.Skipped
	if total == 0 {
		return 0
	}

	return float64(s.Skipped) / float64(total)
}
