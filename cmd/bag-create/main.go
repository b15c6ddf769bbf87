// Command bag-create builds the address database file from a BAG extract.
//
// The extract archive is downloaded from the Kadaster when it is not
// already present. An existing non-empty database file is left alone unless
// -force is given, so the command is safe to run from a provisioning
// script.
//
// Configuration comes from BAG_ADDRESS_LOOKUP_* environment variables (see
// the config package); -input, -output and -compression override it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	bag "github.com/tweedegolf/bag-address-lookup"
	"github.com/tweedegolf/bag-address-lookup/config"
	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/format"
	"github.com/tweedegolf/bag-address-lookup/ingest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	input := flag.String("input", cfg.SourcePath, "path to the BAG extract archive")
	output := flag.String("output", cfg.DatabasePath, "path to write the database file to")
	compressionName := flag.String("compression", "", "database compression: none, gzip, zstd or lz4 (default from environment)")
	force := flag.Bool("force", false, "rebuild even when the output file already exists")
	flag.Parse()

	logger := config.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	compression := cfg.Compression
	if *compressionName != "" {
		c, ok := format.ParseCompression(*compressionName)
		if !ok {
			logger.Fatal("Unknown compression", zap.String("compression", *compressionName))
		}
		compression = c
	}

	if !*force {
		if info, err := os.Stat(*output); err == nil && info.Size() > 0 {
			logger.Info("Database already exists, skipping creation", zap.String("path", *output))
			return
		}
	}

	if err := ensureArchive(logger, *input, cfg.SourceURL); err != nil {
		logger.Fatal("Failed to fetch source archive", zap.Error(err))
	}

	start := time.Now()

	data, _, err := bag.Build(*input, compression, ingest.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to build database", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		logger.Fatal("Failed to create output directory", zap.Error(err))
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		logger.Fatal("Failed to write database", zap.Error(err))
	}

	logger.Info("Database written",
		zap.String("path", *output),
		zap.Int("bytes", len(data)),
		zap.String("compression", compression.String()),
		zap.String("digest", fmt.Sprintf("%016x", database.Digest(data))),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// ensureArchive downloads the extract to path when no file is there yet.
func ensureArchive(logger *zap.Logger, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	logger.Info("Downloading source archive", zap.String("url", url), zap.String("path", path))
	start := time.Now()

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download archive: unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	written, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	logger.Info("Download complete",
		zap.Int64("bytes", written),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}
