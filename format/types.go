package format

// Compression identifies the stream compression wrapped around a serialized
// database file. Compression is orthogonal to the record layout: the database
// core only ever sees decompressed bytes.
type Compression uint8

const (
	CompressionNone Compression = 0x1 // CompressionNone represents no compression.
	CompressionGzip Compression = 0x2 // CompressionGzip represents gzip stream compression.
	CompressionZstd Compression = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  Compression = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a configuration string ("none", "gzip", "zstd",
// "lz4") to a Compression value. Unknown strings report false.
func ParseCompression(name string) (Compression, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "gzip":
		return CompressionGzip, true
	case "zstd":
		return CompressionZstd, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return CompressionNone, false
	}
}
