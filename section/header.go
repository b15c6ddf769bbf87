package section

import (
	"bytes"
	"fmt"

	"github.com/tweedegolf/bag-address-lookup/endian"
	"github.com/tweedegolf/bag-address-lookup/errs"
)

var engine = endian.GetLittleEndianEngine()

// Header represents the fixed-size header section at the start of the
// database. The magic occupies bytes 0-3 and is implicit: Parse rejects
// anything that does not start with "BAG1", and Bytes always writes it.
type Header struct {
	// LocalityCount is the number of locality names in the locality table.
	LocalityCount uint32 // byte offset 4-7
	// PublicSpaceCount is the number of public space names in the public space table.
	PublicSpaceCount uint32 // byte offset 8-11
	// RangeCount is the number of address range records.
	RangeCount uint32 // byte offset 12-15

	// LocalityOffsetsOffset is the byte offset of the locality offsets
	// section. It is always HeaderSize; the field exists so the format
	// stays self-describing.
	LocalityOffsetsOffset uint32 // byte offset 16-19
	// LocalityDataOffset is the byte offset of the locality string data.
	LocalityDataOffset uint32 // byte offset 20-23
	// PublicSpaceOffsetsOffset is the byte offset of the public space offsets section.
	PublicSpaceOffsetsOffset uint32 // byte offset 24-27
	// PublicSpaceDataOffset is the byte offset of the public space string data.
	PublicSpaceDataOffset uint32 // byte offset 28-31
	// RangesOffset is the byte offset of the range records section.
	RangesOffset uint32 // byte offset 32-35
}

// NewHeader creates a Header for a database with the given table sizes,
// deriving every section offset from the counts and data lengths.
func NewHeader(localityCount, localityDataLen, publicSpaceCount, publicSpaceDataLen, rangeCount int) Header {
	h := Header{
		LocalityCount:         uint32(localityCount),
		PublicSpaceCount:      uint32(publicSpaceCount),
		RangeCount:            uint32(rangeCount),
		LocalityOffsetsOffset: LocalityOffsetsStart,
	}

	h.LocalityDataOffset = h.LocalityOffsetsOffset + uint32(h.LocalityOffsetsLen())
	h.PublicSpaceOffsetsOffset = h.LocalityDataOffset + uint32(localityDataLen)
	h.PublicSpaceDataOffset = h.PublicSpaceOffsetsOffset + uint32(h.PublicSpaceOffsetsLen())
	h.RangesOffset = h.PublicSpaceDataOffset + uint32(publicSpaceDataLen)

	return h
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 36 bytes)
//
// Returns:
//   - error: ErrTooShort for a wrong size, ErrInvalidMagic for a bad magic,
//     ErrInvalidLayout when the locality offsets section is misplaced
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrTooShort, HeaderSize, len(data))
	}

	if !bytes.Equal(data[0:4], Magic[:]) {
		return errs.ErrInvalidMagic
	}

	h.LocalityCount = engine.Uint32(data[4:8])
	h.PublicSpaceCount = engine.Uint32(data[8:12])
	h.RangeCount = engine.Uint32(data[12:16])
	h.LocalityOffsetsOffset = engine.Uint32(data[16:20])
	h.LocalityDataOffset = engine.Uint32(data[20:24])
	h.PublicSpaceOffsetsOffset = engine.Uint32(data[24:28])
	h.PublicSpaceDataOffset = engine.Uint32(data[28:32])
	h.RangesOffset = engine.Uint32(data[32:36])

	if h.LocalityOffsetsOffset != LocalityOffsetsStart {
		return fmt.Errorf("%w: locality offsets at %d, want %d",
			errs.ErrInvalidLayout, h.LocalityOffsetsOffset, LocalityOffsetsStart)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf and returns the extended slice.
func (h *Header) AppendTo(buf []byte) []byte {
	buf = append(buf, Magic[:]...)
	buf = engine.AppendUint32(buf, h.LocalityCount)
	buf = engine.AppendUint32(buf, h.PublicSpaceCount)
	buf = engine.AppendUint32(buf, h.RangeCount)
	buf = engine.AppendUint32(buf, h.LocalityOffsetsOffset)
	buf = engine.AppendUint32(buf, h.LocalityDataOffset)
	buf = engine.AppendUint32(buf, h.PublicSpaceOffsetsOffset)
	buf = engine.AppendUint32(buf, h.PublicSpaceDataOffset)

	return engine.AppendUint32(buf, h.RangesOffset)
}

// LocalityOffsetsLen returns the byte length of the locality offsets section.
func (h *Header) LocalityOffsetsLen() int {
	return 4 * (int(h.LocalityCount) + 1)
}

// PublicSpaceOffsetsLen returns the byte length of the public space offsets section.
func (h *Header) PublicSpaceOffsetsLen() int {
	return 4 * (int(h.PublicSpaceCount) + 1)
}

// RangesLen returns the byte length of the range records section.
func (h *Header) RangesLen() int {
	return int(h.RangeCount) * RangeRecordSize
}

// CheckLayout validates that the section offsets describe contiguous,
// in-bounds sections of a buffer of totalLen bytes. The lengths of the two
// string data sections are implied by the surrounding offsets; their
// internal consistency is checked when the offsets arrays are decoded.
func (h *Header) CheckLayout(totalLen int) error {
	localityDataStart := int(h.LocalityOffsetsOffset) + h.LocalityOffsetsLen()
	if int(h.LocalityDataOffset) != localityDataStart {
		return fmt.Errorf("%w: locality data at %d, want %d",
			errs.ErrInvalidLayout, h.LocalityDataOffset, localityDataStart)
	}
	if h.PublicSpaceOffsetsOffset < h.LocalityDataOffset {
		return fmt.Errorf("%w: public space offsets at %d overlap locality data at %d",
			errs.ErrInvalidLayout, h.PublicSpaceOffsetsOffset, h.LocalityDataOffset)
	}

	publicSpaceDataStart := int(h.PublicSpaceOffsetsOffset) + h.PublicSpaceOffsetsLen()
	if int(h.PublicSpaceDataOffset) != publicSpaceDataStart {
		return fmt.Errorf("%w: public space data at %d, want %d",
			errs.ErrInvalidLayout, h.PublicSpaceDataOffset, publicSpaceDataStart)
	}
	if h.RangesOffset < h.PublicSpaceDataOffset {
		return fmt.Errorf("%w: ranges at %d overlap public space data at %d",
			errs.ErrInvalidLayout, h.RangesOffset, h.PublicSpaceDataOffset)
	}

	if end := int(h.RangesOffset) + h.RangesLen(); end > totalLen {
		return fmt.Errorf("%w: ranges end at %d beyond %d bytes", errs.ErrTooShort, end, totalLen)
	}

	return nil
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 36 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrTooShort, ErrInvalidMagic or ErrInvalidLayout
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrTooShort, HeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
