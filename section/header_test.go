package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/bag-address-lookup/errs"
)

func TestNewHeader_DerivesOffsets(t *testing.T) {
	// 2 localities with 9 bytes of names, 3 public spaces with 20 bytes of
	// names, 5 ranges.
	h := NewHeader(2, 9, 3, 20, 5)

	require.Equal(t, uint32(2), h.LocalityCount)
	require.Equal(t, uint32(3), h.PublicSpaceCount)
	require.Equal(t, uint32(5), h.RangeCount)

	require.Equal(t, uint32(36), h.LocalityOffsetsOffset)
	require.Equal(t, uint32(36+12), h.LocalityDataOffset)
	require.Equal(t, uint32(36+12+9), h.PublicSpaceOffsetsOffset)
	require.Equal(t, uint32(36+12+9+16), h.PublicSpaceDataOffset)
	require.Equal(t, uint32(36+12+9+16+20), h.RangesOffset)

	require.NoError(t, h.CheckLayout(int(h.RangesOffset)+h.RangesLen()))
}

func TestHeader_RoundTrip(t *testing.T) {
	original := NewHeader(1500, 32768, 250000, 4<<20, 700000)

	data := original.Bytes()
	require.Len(t, data, HeaderSize)
	require.Equal(t, Magic[:], data[0:4])

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestHeader_SerializedLayout(t *testing.T) {
	h := NewHeader(0, 0, 0, 0, 0)
	data := h.Bytes()

	expected := []byte{
		'B', 'A', 'G', '1',
		0x00, 0x00, 0x00, 0x00, // locality count
		0x00, 0x00, 0x00, 0x00, // public space count
		0x00, 0x00, 0x00, 0x00, // range count
		0x24, 0x00, 0x00, 0x00, // locality offsets at 36
		0x28, 0x00, 0x00, 0x00, // locality data at 40
		0x28, 0x00, 0x00, 0x00, // public space offsets at 40
		0x2c, 0x00, 0x00, 0x00, // public space data at 44
		0x2c, 0x00, 0x00, 0x00, // ranges at 44
	}
	require.Equal(t, expected, data)
}

func TestParseHeader_TooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTooShort)

	_, err = ParseHeader(nil)
	require.ErrorIs(t, err, errs.ErrTooShort)
}

func TestParseHeader_InvalidMagic(t *testing.T) {
	h := NewHeader(1, 4, 1, 4, 1)
	data := h.Bytes()
	data[0] = 'X'

	_, err := ParseHeader(data)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestParseHeader_MisplacedLocalityOffsets(t *testing.T) {
	h := NewHeader(1, 4, 1, 4, 1)
	h.LocalityOffsetsOffset = 40

	_, err := ParseHeader(h.Bytes())
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}

func TestCheckLayout(t *testing.T) {
	valid := NewHeader(2, 9, 3, 20, 5)
	totalLen := int(valid.RangesOffset) + valid.RangesLen()

	tests := []struct {
		name   string
		mutate func(h *Header)
		total  int
	}{
		{
			name:   "locality_data_misplaced",
			mutate: func(h *Header) { h.LocalityDataOffset++ },
			total:  totalLen,
		},
		{
			name:   "public_space_offsets_overlap",
			mutate: func(h *Header) { h.PublicSpaceOffsetsOffset = h.LocalityDataOffset - 1 },
			total:  totalLen,
		},
		{
			name:   "public_space_data_misplaced",
			mutate: func(h *Header) { h.PublicSpaceDataOffset-- },
			total:  totalLen,
		},
		{
			name:   "ranges_overlap",
			mutate: func(h *Header) { h.RangesOffset = h.PublicSpaceDataOffset - 1 },
			total:  totalLen,
		},
		{
			name:   "ranges_truncated",
			mutate: func(h *Header) {},
			total:  totalLen - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)

			err := h.CheckLayout(tt.total)
			require.Error(t, err)
		})
	}

	require.NoError(t, valid.CheckLayout(totalLen))
	// Trailing bytes after the ranges section are tolerated.
	require.NoError(t, valid.CheckLayout(totalLen+8))
}
