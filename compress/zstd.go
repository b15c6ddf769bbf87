package compress

// ZstdCompressor provides Zstandard compression for database files.
//
// Zstd is the recommended codec for stored databases: the address table
// holds millions of near-sorted 16-byte records, which zstd shrinks by
// roughly 3:1 while still decompressing the whole file in tens of
// milliseconds. It is the default choice of the build tool.
//
// Two implementations are provided, selected at build time:
//   - Default: pure Go (github.com/klauspost/compress/zstd), no cgo needed
//   - Build tag "gozstd": cgo bindings to libzstd (github.com/valyala/gozstd)
//     for workloads where encode throughput matters more than portability
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
