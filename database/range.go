package database

import (
	"github.com/tweedegolf/bag-address-lookup/endian"
	"github.com/tweedegolf/bag-address-lookup/section"
)

var engine = endian.GetLittleEndianEngine()

// Range maps a run of consecutive house numbers within one postal code to
// a public space and locality. The span covers house numbers
// [Start, Start+Length), so Length is the count of numbers in the run and
// is at least 1 in any well-formed database.
type Range struct {
	// PostalCode is the order-preserving encoded postal code (see postcode).
	PostalCode uint32
	// Start is the first house number of the span.
	Start uint32
	// Length is the count of house numbers in the span.
	Length uint16
	// PublicSpaceIndex points into the public space name table.
	PublicSpaceIndex uint32
	// LocalityIndex points into the locality name table.
	LocalityIndex uint16
}

// Contains reports whether house number n falls inside the span.
func (r Range) Contains(n uint32) bool {
	return n >= r.Start && n-r.Start < uint32(r.Length)
}

// End returns the first house number past the span.
func (r Range) End() uint32 {
	return r.Start + uint32(r.Length)
}

// AppendTo appends the 16-byte record form of the range to buf and returns
// the extended slice.
func (r Range) AppendTo(buf []byte) []byte {
	buf = engine.AppendUint32(buf, r.PostalCode)
	buf = engine.AppendUint32(buf, r.Start)
	buf = engine.AppendUint16(buf, r.Length)
	buf = engine.AppendUint32(buf, r.PublicSpaceIndex)

	return engine.AppendUint16(buf, r.LocalityIndex)
}

// parseRange decodes one 16-byte record. The caller guarantees that record
// holds at least section.RangeRecordSize bytes.
func parseRange(record []byte) Range {
	return Range{
		PostalCode:       engine.Uint32(record[section.RangePostalCodeOffset:]),
		Start:            engine.Uint32(record[section.RangeStartOffset:]),
		Length:           engine.Uint16(record[section.RangeLengthOffset:]),
		PublicSpaceIndex: engine.Uint32(record[section.RangePublicSpaceOffset:]),
		LocalityIndex:    engine.Uint16(record[section.RangeLocalityOffset:]),
	}
}
