// Package bag provides compact storage and fast lookup of Dutch addresses:
// from a postal code and house number to the public space (street) and
// locality they belong to, as registered in the BAG, the Dutch national
// address registry.
//
// The full registry is distilled into a single database file of a few
// megabytes by storing house numbers as ranges and interning the name
// tables. The file can be queried two ways:
//
//   - View: zero-copy queries straight against the raw bytes, nothing to
//     decode at startup
//   - Database: decoded into Go slices, for when the source buffer cannot
//     be kept alive
//
// Both modes answer the same queries through the database.Source interface.
//
// # Basic Usage
//
// Looking up an address:
//
//	src, _ := bag.Open("data/bag.bin")
//
//	match, found, err := src.Lookup("1012JS", 1)
//	if err != nil || !found {
//	    // malformed postal code, or no such address
//	}
//	fmt.Println(match.Street, match.Locality)
//
// Completing a locality name:
//
//	names, _ := suggest.Localities(src, "amste")
//	// ["Amstelveen", "Amsterdam", ...]
//
// Building the database file from the registry extract:
//
//	data, stats, err := bag.Build("data/bag.zip", format.CompressionZstd)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("data/bag.bin", data, 0o644)
//	fmt.Printf("%d ranges, %.2f%% skipped\n", stats.Ranges, 100*stats.SkipRatio())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the database,
// ingest and compress packages, simplifying the most common use cases. For
// fine-grained control, use those packages directly.
package bag

import (
	"fmt"
	"os"

	"github.com/tweedegolf/bag-address-lookup/compress"
	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/format"
	"github.com/tweedegolf/bag-address-lookup/ingest"
)

// Load opens a serialized database for zero-copy queries. The buffer may be
// compressed with any of the supported codecs; the framing is sniffed and
// undone transparently. The returned View keeps (the decompressed form of)
// data alive; the caller must not modify it.
//
// Parameters:
//   - data: the database file contents, compressed or raw
//
// Returns:
//   - *database.View: the queryable view.
//   - error: an error when decompression fails or the layout is invalid.
func Load(data []byte) (*database.View, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, err
	}

	return database.NewView(raw)
}

// LoadDecoded opens a serialized database and decodes it into Go slices.
// Use this over Load when the backing buffer cannot be kept alive, or when
// queries should not touch the raw encoding at all.
func LoadDecoded(data []byte) (*database.Database, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, err
	}

	return database.Decode(raw)
}

// Open reads a database file and opens it for zero-copy queries. See Load.
func Open(path string) (*database.View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}

	return Load(data)
}

// OpenDecoded reads a database file and decodes it. See LoadDecoded.
func OpenDecoded(path string) (*database.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}

	return LoadDecoded(data)
}

// Build ingests a BAG extract archive and serializes it into database file
// contents, compressed with the given codec.
//
// Parameters:
//   - archivePath: path to the extract (lvbag-extract-nl.zip layout)
//   - compression: stream compression for the returned bytes
//   - opts: optional ingest configuration (see ingest.WithLogger)
//
// Returns:
//   - []byte: the database file contents, ready to write out.
//   - *ingest.Stats: ingestion counts, nil on error.
//   - error: an error when ingestion, encoding or compression fails.
func Build(archivePath string, compression format.Compression, opts ...ingest.Option) ([]byte, *ingest.Stats, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, nil, err
	}

	db, stats, err := ingest.Build(archivePath, opts...)
	if err != nil {
		return nil, stats, err
	}

	raw, err := db.Bytes()
	if err != nil {
		return nil, stats, err
	}

	out, err := codec.Compress(raw)
	if err != nil {
		return nil, stats, err
	}

	return out, stats, nil
}
