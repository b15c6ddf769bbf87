package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"go.uber.org/zap"

	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/internal/pool"
)

// Entry name prefixes of the nested archives, one per BAG object type.
const (
	localityEntryPrefix    = "9999WPL"
	publicSpaceEntryPrefix = "9999OPR"
	addressEntryPrefix     = "9999NUM"
)

// parsedData collects the accepted records of the three object types.
type parsedData struct {
	localities   []locality
	publicSpaces []publicSpace
	addresses    []address
}

// readArchive opens the outer BAG archive and parses every nested archive it
// recognizes, decompressing in memory only. Unrecognized entries are ignored;
// a recognized object type with no entry at all is fatal. Multiple entries of
// the same type accumulate.
func readArchive(path string, cfg *config, stats *Stats) (*parsedData, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer archive.Close()

	registerFlate(&archive.Reader)

	data := &parsedData{}
	found := make(map[string]bool, 3)

	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(entry.Name, ".zip") {
			continue
		}

		switch {
		case strings.HasPrefix(entry.Name, localityEntryPrefix):
			recs, err := parseNestedArchive(entry, cfg, stats, parseLocalities)
			if err != nil {
				return nil, err
			}
			data.localities = append(data.localities, recs...)
			found[localityEntryPrefix] = true

		case strings.HasPrefix(entry.Name, publicSpaceEntryPrefix):
			recs, err := parseNestedArchive(entry, cfg, stats, parsePublicSpaces)
			if err != nil {
				return nil, err
			}
			data.publicSpaces = append(data.publicSpaces, recs...)
			found[publicSpaceEntryPrefix] = true

		case strings.HasPrefix(entry.Name, addressEntryPrefix):
			recs, err := parseNestedArchive(entry, cfg, stats, parseAddresses)
			if err != nil {
				return nil, err
			}
			data.addresses = append(data.addresses, recs...)
			found[addressEntryPrefix] = true
		}
	}

	for _, prefix := range []string{localityEntryPrefix, publicSpaceEntryPrefix, addressEntryPrefix} {
		if !found[prefix] {
			return nil, fmt.Errorf("%w: no %s*.zip in %s", errs.ErrMissingEntry, prefix, path)
		}
	}

	return data, nil
}

// parseNestedArchive reads one nested ZIP entry fully into memory and parses
// every XML file it contains with the given parser. The extraction buffer is
// pooled; the parsed records own their strings, so the buffer is safe to
// reuse once parsing is done.
func parseNestedArchive[T any](entry *zip.File, cfg *config, stats *Stats, parse func(io.Reader, *Stats) ([]T, error)) ([]T, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", entry.Name, err)
	}

	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)
	buf.Grow(int(entry.UncompressedSize64))

	_, err = io.Copy(buf, rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", entry.Name, err)
	}

	cfg.logger.Info("read nested archive",
		zap.String("entry", entry.Name),
		zap.Int("bytes", buf.Len()))

	nested, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("open nested archive %s: %w", entry.Name, err)
	}
	registerFlate(nested)

	var items []T
	for _, file := range nested.File {
		if !strings.HasSuffix(file.Name, ".xml") {
			continue
		}

		fr, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in %s: %w", file.Name, entry.Name, err)
		}
		parsed, err := parse(fr, stats)
		fr.Close()
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", file.Name, entry.Name, err)
		}

		items = append(items, parsed...)
	}

	cfg.logger.Info("parsed nested archive",
		zap.String("entry", entry.Name),
		zap.Int("records", len(items)))

	return items, nil
}

// registerFlate swaps the default deflate decompressor for the klauspost
// implementation, which is considerably faster on the large BAG entries.
func registerFlate(r *zip.Reader) {
	r.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
}
