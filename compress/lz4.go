package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4WriterPool pools lz4.Writer instances for reuse.
// The lz4.Writer maintains internal state that benefits from reuse.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(io.Discard)
	},
}

// LZ4Compressor provides LZ4 compression for database files.
//
// LZ4 trades compression ratio for decompression speed, which suits
// services that re-read the database on every start. The frame format is
// used (not the block format) so that streams carry the LZ4 magic and
// remain self-identifying for Detect.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data into an LZ4 frame.
//
// Uses a pooled lz4.Writer for better performance.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	// Get writer from pool
	lw, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(lw)

	lw.Reset(&buf)
	if _, err := lw.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if err := lw.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
//
// This method validates the frame format and returns an error if the data
// is corrupted or was not compressed with LZ4.
//
// Parameters:
//   - data: Compressed data to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Decompression error if any
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lr := lz4.NewReader(bytes.NewReader(data))

	decompressed, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return decompressed, nil
}
