// Package config loads runtime configuration for the binaries from the
// environment.
//
// Every setting has a default and can be overridden through a
// BAG_ADDRESS_LOOKUP_* variable:
//
//	BAG_ADDRESS_LOOKUP_ADDR               listen address (127.0.0.1:8080)
//	BAG_ADDRESS_LOOKUP_DATABASE_PATH      database file (data/bag.bin)
//	BAG_ADDRESS_LOOKUP_SOURCE_PATH        source archive (data/bag.zip)
//	BAG_ADDRESS_LOOKUP_SOURCE_URL         source download URL (PDOK extract)
//	BAG_ADDRESS_LOOKUP_MODE               query mode: view or decoded (view)
//	BAG_ADDRESS_LOOKUP_QUIET              disable request logging (false)
//	BAG_ADDRESS_LOOKUP_LOG_LEVEL          debug, info, warn or error (info)
//	BAG_ADDRESS_LOOKUP_COMPRESSION        database compression (zstd)
//	BAG_ADDRESS_LOOKUP_SUGGEST_THRESHOLD  fuzzy match threshold (0.7)
//	BAG_ADDRESS_LOOKUP_SUGGEST_LIMIT      suggestion cap (10)
//
// The binaries load a .env file first (godotenv), so the variables can come
// from either the process environment or a local .env.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tweedegolf/bag-address-lookup/format"
	"github.com/tweedegolf/bag-address-lookup/suggest"
)

const envPrefix = "BAG_ADDRESS_LOOKUP"

// defaultSourceURL is the Kadaster full-country BAG 2.0 extract.
const defaultSourceURL = "https://service.pdok.nl/kadaster/adressen/atom/v1_0/downloads/lvbag-extract-nl.zip"

// Config carries the settings shared by the bag-create and bag-serve
// binaries.
type Config struct {
	// Addr is the address bag-serve listens on.
	Addr string
	// DatabasePath is where the database file lives.
	DatabasePath string
	// SourcePath is where the source archive lives (bag-create).
	SourcePath string
	// SourceURL is downloaded to SourcePath when the archive is absent.
	SourceURL string
	// Decoded selects the decoded query mode over the zero-copy view.
	Decoded bool
	// Quiet disables per-request logging.
	Quiet bool
	// LogLevel is the zap level for the process logger.
	LogLevel string
	// Compression wraps the written database file (bag-create).
	Compression format.Compression
	// SuggestThreshold is the fuzzy match threshold for /suggest.
	SuggestThreshold float64
	// SuggestLimit caps /suggest responses.
	SuggestLimit int
}

// Load reads the configuration from the environment, applying defaults for
// unset variables. It returns an error for an unknown query mode or
// compression name.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("database.path", "data/bag.bin")
	v.SetDefault("source.path", "data/bag.zip")
	v.SetDefault("source.url", defaultSourceURL)
	v.SetDefault("mode", "view")
	v.SetDefault("quiet", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("compression", "zstd")
	v.SetDefault("suggest.threshold", suggest.DefaultThreshold)
	v.SetDefault("suggest.limit", suggest.DefaultLimit)

	cfg := &Config{
		Addr:             v.GetString("addr"),
		DatabasePath:     v.GetString("database.path"),
		SourcePath:       v.GetString("source.path"),
		SourceURL:        v.GetString("source.url"),
		Quiet:            v.GetBool("quiet"),
		LogLevel:         v.GetString("log.level"),
		SuggestThreshold: v.GetFloat64("suggest.threshold"),
		SuggestLimit:     v.GetInt("suggest.limit"),
	}

	switch mode := v.GetString("mode"); mode {
	case "view":
	case "decoded":
		cfg.Decoded = true
	default:
		return nil, fmt.Errorf("unknown query mode %q (want view or decoded)", mode)
	}

	name := v.GetString("compression")
	compression, ok := format.ParseCompression(name)
	if !ok {
		return nil, fmt.Errorf("unknown compression %q (want none, gzip, zstd or lz4)", name)
	}
	cfg.Compression = compression

	return cfg, nil
}
