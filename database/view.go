package database

import (
	"fmt"

	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/section"
)

// View is the zero-copy query mode: it retains the serialized buffer and
// answers every query with offset arithmetic over it. NewView validates
// the whole layout once, so accesses afterwards need no per-call checks
// beyond the index contract.
//
// The buffer must not be modified while the View is in use. A View is
// safe for concurrent readers.
type View struct {
	data   []byte
	header section.Header
}

var _ Source = (*View)(nil)

// NewView wraps a serialized database without decoding it.
//
// The input must be fully decompressed. The header, section contiguity and
// both string offset tables are validated here; violations return errors
// wrapping errs.ErrTooShort, errs.ErrInvalidMagic or errs.ErrInvalidLayout.
func NewView(data []byte) (*View, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("view database header: %w", err)
	}
	if err := header.CheckLayout(len(data)); err != nil {
		return nil, fmt.Errorf("view database: %w", err)
	}

	localityDataLen := int(header.PublicSpaceOffsetsOffset) - int(header.LocalityDataOffset)
	if err := validateOffsets(
		data[header.LocalityOffsetsOffset:header.LocalityDataOffset], localityDataLen, "locality",
	); err != nil {
		return nil, err
	}

	publicSpaceDataLen := int(header.RangesOffset) - int(header.PublicSpaceDataOffset)
	if err := validateOffsets(
		data[header.PublicSpaceOffsetsOffset:header.PublicSpaceDataOffset], publicSpaceDataLen, "public space",
	); err != nil {
		return nil, err
	}

	return &View{data: data, header: header}, nil
}

// validateOffsets checks the string table invariants on a raw offsets
// section: first offset zero, offsets never decreasing, final offset equal
// to the data section length. It walks the raw bytes instead of decoding
// them, so validation allocates nothing.
func validateOffsets(raw []byte, dataLen int, what string) error {
	prev := engine.Uint32(raw[0:4])
	if prev != 0 {
		return fmt.Errorf("%w: first %s offset is %d, want 0", errs.ErrInvalidLayout, what, prev)
	}

	for i := 4; i < len(raw); i += 4 {
		v := engine.Uint32(raw[i:])
		if v < prev {
			return fmt.Errorf("%w: %s offsets decrease at index %d", errs.ErrInvalidLayout, what, i/4)
		}
		prev = v
	}

	if int(prev) != dataLen {
		return fmt.Errorf("%w: final %s offset %d does not match data length %d",
			errs.ErrInvalidLayout, what, prev, dataLen)
	}

	return nil
}

// rangeBase returns the byte offset of range record i.
func (v *View) rangeBase(i int) int {
	if i < 0 || i >= int(v.header.RangeCount) {
		panic(fmt.Sprintf("database: range index %d out of range [0, %d)", i, v.header.RangeCount))
	}

	return int(v.header.RangesOffset) + i*section.RangeRecordSize
}

// nameAt reads string index out of the table at offsetsOffset/dataOffset.
func (v *View) nameAt(offsetsOffset, dataOffset uint32, index, count int, what string) string {
	if index < 0 || index >= count {
		panic(fmt.Sprintf("database: %s index %d out of range [0, %d)", what, index, count))
	}

	start := engine.Uint32(v.data[int(offsetsOffset)+4*index:])
	end := engine.Uint32(v.data[int(offsetsOffset)+4*(index+1):])

	return string(v.data[int(dataOffset)+int(start) : int(dataOffset)+int(end)])
}

// RangeCount returns the number of address ranges.
func (v *View) RangeCount() int {
	return int(v.header.RangeCount)
}

// PostalCodeAt returns the encoded postal code of range i. Only the first
// field of the record is read, which keeps the binary search probes cheap.
func (v *View) PostalCodeAt(i int) uint32 {
	return engine.Uint32(v.data[v.rangeBase(i)+section.RangePostalCodeOffset:])
}

// RangeAt decodes range record i.
func (v *View) RangeAt(i int) Range {
	return parseRange(v.data[v.rangeBase(i):])
}

// PublicSpaceName returns the public space name at the given table index.
func (v *View) PublicSpaceName(index uint32) string {
	return v.nameAt(
		v.header.PublicSpaceOffsetsOffset, v.header.PublicSpaceDataOffset,
		int(index), int(v.header.PublicSpaceCount), "public space",
	)
}

// LocalityName returns the locality name at the given table index.
func (v *View) LocalityName(index uint16) string {
	return v.nameAt(
		v.header.LocalityOffsetsOffset, v.header.LocalityDataOffset,
		int(index), int(v.header.LocalityCount), "locality",
	)
}

// LocalityCount returns the number of locality names.
func (v *View) LocalityCount() int {
	return int(v.header.LocalityCount)
}

// LocalityAt returns locality name i.
func (v *View) LocalityAt(i int) string {
	return v.nameAt(
		v.header.LocalityOffsetsOffset, v.header.LocalityDataOffset,
		i, int(v.header.LocalityCount), "locality",
	)
}

// Empty reports whether the database holds no ranges.
func (v *View) Empty() bool {
	return v.header.RangeCount == 0
}

// Lookup resolves a postal code and house number to a match. See the
// package-level Lookup function for the full contract.
func (v *View) Lookup(postalCode string, houseNumber uint32) (Match, bool, error) {
	return Lookup(v, postalCode, houseNumber)
}
