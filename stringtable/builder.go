package stringtable

// Builder accumulates strings in first-seen order and interns repeats.
//
// A Builder is confined to a single build pass and is not safe for
// concurrent use.
type Builder struct {
	index   map[string]uint32
	offsets []uint32
	data    []byte
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		index:   make(map[string]uint32),
		offsets: []uint32{0},
	}
}

// Intern adds s to the table if it has not been seen before and returns
// its index. Repeats return the index assigned on first sight, so indexes
// reflect first-seen order.
func (b *Builder) Intern(s string) uint32 {
	if idx, ok := b.index[s]; ok {
		return idx
	}

	idx := uint32(len(b.offsets) - 1)
	b.index[s] = idx
	b.data = append(b.data, s...)
	b.offsets = append(b.offsets, uint32(len(b.data)))

	return idx
}

// Len returns the number of distinct strings interned so far.
func (b *Builder) Len() int {
	return len(b.offsets) - 1
}

// Build freezes the builder into a read-only Table. The builder must not
// be used afterwards.
func (b *Builder) Build() *Table {
	return &Table{offsets: b.offsets, data: b.data}
}
