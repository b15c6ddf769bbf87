// Package stringtable implements the interned string tables that back the
// locality and public-space name sections of the database format.
//
// A serialized table is an offsets array of count+1 little-endian uint32
// values followed by the concatenated UTF-8 bytes of every string. The
// first offset is always zero, offsets never decrease, and the final
// offset equals the byte length of the data section. String i occupies
// data[offsets[i]:offsets[i+1]].
package stringtable

import (
	"fmt"
	"iter"

	"github.com/tweedegolf/bag-address-lookup/endian"
	"github.com/tweedegolf/bag-address-lookup/errs"
)

var engine = endian.GetLittleEndianEngine()

// Table is a read-only interned string table.
//
// Tables are constructed either by Decode (from serialized sections, with
// full invariant validation) or by Builder.Build (invariants hold by
// construction). Index lookups on a constructed Table never fail for
// indexes below Len; an out-of-range index panics, because it can only be
// produced by a record that violates the build invariants.
type Table struct {
	offsets []uint32
	data    []byte
}

// FromStrings builds a Table holding the given names in order. No
// interning happens; callers that need deduplication use a Builder.
func FromStrings(names []string) *Table {
	offsets := make([]uint32, 1, len(names)+1)

	size := 0
	for _, name := range names {
		size += len(name)
	}
	data := make([]byte, 0, size)

	for _, name := range names {
		data = append(data, name...)
		offsets = append(offsets, uint32(len(data)))
	}

	return &Table{offsets: offsets, data: data}
}

// Decode validates a serialized offsets section and data section and wraps
// them in a Table.
//
// The offsets section must hold at least one uint32 and a whole number of
// them; the decoded offsets must start at zero, never decrease, and end at
// len(data). Violations return errs.ErrInvalidLayout.
func Decode(offsetsSection, dataSection []byte) (*Table, error) {
	if len(offsetsSection) < 4 || len(offsetsSection)%4 != 0 {
		return nil, fmt.Errorf("%w: offsets section of %d bytes", errs.ErrInvalidLayout, len(offsetsSection))
	}

	offsets := make([]uint32, len(offsetsSection)/4)
	for i := range offsets {
		offsets[i] = engine.Uint32(offsetsSection[i*4:])
	}

	if offsets[0] != 0 {
		return nil, fmt.Errorf("%w: first string offset is %d, want 0", errs.ErrInvalidLayout, offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, fmt.Errorf("%w: string offsets decrease at index %d", errs.ErrInvalidLayout, i)
		}
	}
	if last := offsets[len(offsets)-1]; int(last) != len(dataSection) {
		return nil, fmt.Errorf("%w: final string offset %d does not match data length %d",
			errs.ErrInvalidLayout, last, len(dataSection))
	}

	return &Table{offsets: offsets, data: dataSection}, nil
}

// Len returns the number of strings in the table.
func (t *Table) Len() int {
	return len(t.offsets) - 1
}

// At returns string i. It panics when i is out of range: a validated table
// can only be asked for a bad index by a corrupted record, and corruption
// must fail loudly rather than return a wrong answer.
func (t *Table) At(i int) string {
	if i < 0 || i >= t.Len() {
		panic(fmt.Sprintf("stringtable: index %d out of range [0, %d)", i, t.Len()))
	}

	return string(t.data[t.offsets[i]:t.offsets[i+1]])
}

// All returns an iterator over the strings in index order.
func (t *Table) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range t.Len() {
			if !yield(t.At(i)) {
				return
			}
		}
	}
}

// DataLen returns the byte length of the concatenated string data.
func (t *Table) DataLen() int {
	return len(t.data)
}

// SerializedSize returns the total byte length of the serialized table:
// the offsets section plus the data section.
func (t *Table) SerializedSize() int {
	return 4*len(t.offsets) + len(t.data)
}

// AppendTo appends the serialized table to buf and returns the extended
// slice: first the count+1 offsets, then the string data. The two sections
// are contiguous, matching the on-disk layout.
func (t *Table) AppendTo(buf []byte) []byte {
	for _, off := range t.offsets {
		buf = engine.AppendUint32(buf, off)
	}

	return append(buf, t.data...)
}
