package ingest

import (
	"time"

	"go.uber.org/zap"

	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/internal/options"
)

// Build reads a BAG extract archive from disk and produces an address
// database.
//
// The returned Stats describe what was accepted, filtered and skipped; they
// are valid whenever the database is. Callers that care about input quality
// should compare Stats.SkipRatio against DefaultMaxSkipRatio — a high ratio
// is reported, never treated as fatal, so a build from degraded input still
// yields whatever could be salvaged.
//
// Parameters:
//   - path: path of the BAG extract ZIP file
//   - opts: optional configuration (see WithLogger)
//
// Returns:
//   - *database.Database: the built database
//   - *Stats: acceptance counters
//   - error: fatal pipeline failure: unreadable archive, missing object-type
//     entry (errs.ErrMissingEntry), malformed XML, or too many distinct
//     localities for the 16-bit index (errs.ErrTooManyLocalities)
func Build(path string, opts ...Option) (*database.Database, *Stats, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	stats := &Stats{}

	data, err := readArchive(path, &cfg, stats)
	if err != nil {
		return nil, nil, err
	}

	localities, publicSpaces, tuples, err := buildTables(data, stats)
	if err != nil {
		return nil, nil, err
	}

	ranges := mergeRanges(tuples)
	stats.Ranges = len(ranges)

	cfg.logger.Info("built address database",
		zap.Int("localities", len(localities)),
		zap.Int("public_spaces", len(publicSpaces)),
		zap.Int("ranges", len(ranges)),
		zap.Int("filtered", stats.Filtered),
		zap.Int("skipped", stats.Skipped),
		zap.Duration("elapsed", time.Since(start)))

	if ratio := stats.SkipRatio(); ratio > DefaultMaxSkipRatio {
		cfg.logger.Warn("high skip ratio, source data may be malformed",
			zap.Float64("ratio", ratio),
			zap.Int("skipped", stats.Skipped))
	}

	return database.New(localities, publicSpaces, ranges), stats, nil
}
