// Package compress provides the stream compression codecs a serialized
// database file may be wrapped in.
//
// Compression is an orthogonal layer: a codec transforms whole byte buffers
// and never inspects the record layout. The database packages always operate
// on decompressed bytes; callers decompress with Decompress (which sniffs the
// framing magic) before handing a buffer to the database decoder or view.
//
// Supported codecs are gzip, Zstandard, LZ4 frames, and a pass-through NoOp
// codec. All three compressed framings carry distinctive magic bytes, so
// Detect can classify a buffer without external metadata.
package compress
