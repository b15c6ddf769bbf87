// Package errs defines the sentinel errors shared by the bag-address-lookup
// packages.
//
// The core packages never log; they return these values (usually wrapped with
// additional context via fmt.Errorf and %w) and leave presentation to the
// caller. Use errors.Is to classify failures.
package errs

import "errors"

var (
	// ErrTooShort indicates the database buffer ends before the fixed header.
	ErrTooShort = errors.New("database buffer too short")

	// ErrInvalidMagic indicates the buffer does not start with the BAG1 magic.
	ErrInvalidMagic = errors.New("database has invalid magic")

	// ErrInvalidLayout indicates the header offsets or string table offsets
	// are inconsistent with the section sizes they describe.
	ErrInvalidLayout = errors.New("database layout invalid")

	// ErrInvalidPostalCode indicates a postal code that is not 4 ASCII digits
	// followed by 2 ASCII uppercase letters.
	ErrInvalidPostalCode = errors.New("invalid postal code")

	// ErrInvalidThreshold indicates a suggestion threshold that is negative,
	// NaN or infinite.
	ErrInvalidThreshold = errors.New("invalid suggestion threshold")

	// ErrMissingEntry indicates the source archive lacks one of the expected
	// nested archives (localities, public spaces or addresses).
	ErrMissingEntry = errors.New("expected archive entry missing")

	// ErrTooManyLocalities indicates the distinct locality names exceed the
	// capacity of the 16-bit locality index.
	ErrTooManyLocalities = errors.New("too many distinct localities for 16-bit index")

	// ErrTooManyPublicSpaces indicates the distinct public space names exceed
	// the capacity of the 32-bit public space index.
	ErrTooManyPublicSpaces = errors.New("too many distinct public spaces for 32-bit index")

	// ErrCountOverflow indicates a section count does not fit the 32-bit
	// header field.
	ErrCountOverflow = errors.New("section count exceeds 32-bit header field")

	// ErrUnknownCompression indicates an unsupported compression type.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrEmptyDatabase indicates a database without any address ranges where
	// one is required (e.g. at service startup).
	ErrEmptyDatabase = errors.New("database contains no address ranges")
)
