// Package database implements the address database: a compact, sorted
// collection of postal code ranges resolving to public space and locality
// names, serialized in the self-describing binary layout defined by the
// section package.
//
// # Query Modes
//
// The same serialized bytes can be queried two ways:
//
//   - Database: fully decoded into Go values by Decode. Decoding costs one
//     pass over the buffer; every query afterwards touches only native
//     slices. Suited to long-lived processes such as the HTTP service.
//   - View: a zero-copy wrapper created by NewView. Construction validates
//     the layout but decodes nothing; queries read fields straight out of
//     the raw buffer. Suited to short-lived or memory-constrained callers,
//     and to memory-mapped files.
//
// Both modes implement Source, and the lookup and suggestion algorithms are
// written once against that interface, so the two modes answer every query
// identically.
//
// # Validation and Corruption
//
// Decode and NewView validate the header magic, section contiguity and the
// string offset invariants up front and return typed errors from the errs
// package for violations. Indexes stored inside validated range records are
// trusted afterwards; a record referencing a name index beyond its table
// panics instead of returning a wrong answer.
//
// Compression is not this package's concern: callers hand in fully
// decompressed bytes (see the compress package for codec sniffing).
package database
