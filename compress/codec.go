package compress

import (
	"bytes"
	"fmt"

	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/format"
)

// Compressor compresses a whole buffer into a self-framing compressed stream.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; the
	// input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a buffer previously produced by the matching
// Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. It returns an error when the data is corrupted or was
	// compressed with an incompatible codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Framing magics of the supported compressed stream formats.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect classifies a buffer by its framing magic. A buffer that matches no
// known compressed framing is reported as CompressionNone; the database
// format magic ("BAG1") falls in that category by construction.
func Detect(data []byte) format.Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, gzipMagic):
		return format.CompressionGzip
	default:
		return format.CompressionNone
	}
}

// Decompress sniffs the framing of data and decompresses it with the
// matching codec. Uncompressed buffers pass through unchanged.
func Decompress(data []byte) ([]byte, error) {
	codec, err := GetCodec(Detect(data))
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// The target parameter names the usage in error messages.
func CreateCodec(compression format.Compression, target string) (Codec, error) {
	switch compression {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression %s: %w", target, compression, errs.ErrUnknownCompression)
	}
}

var builtinCodecs = map[format.Compression]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compression format.Compression) (Codec, error) {
	if codec, ok := builtinCodecs[compression]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compression)
}
