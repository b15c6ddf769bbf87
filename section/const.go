package section

import "math"

// Magic identifies a serialized address database.
var Magic = [4]byte{'B', 'A', 'G', '1'}

// offset and section sizes in the database file
const (
	HeaderSize           = 36         // fixed header size in bytes
	LocalityOffsetsStart = HeaderSize // locality offsets always follow the header

	RangeRecordSize = 16 // fixed address range record size in bytes

	// Byte offsets of the fields within a range record.
	RangePostalCodeOffset  = 0  // uint32
	RangeStartOffset       = 4  // uint32
	RangeLengthOffset      = 8  // uint16
	RangePublicSpaceOffset = 10 // uint32
	RangeLocalityOffset    = 14 // uint16

	MaxLocalityIndex = math.MaxUint16 // locality indexes are stored as uint16
	MaxRangeLength   = math.MaxUint16 // span lengths are stored as uint16
)
