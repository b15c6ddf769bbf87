// Package section defines the low-level binary structures and constants of
// the address database format.
//
// This package provides the foundational types that define the physical
// layout of a serialized database. It handles binary serialization and
// deserialization of the header and the fixed-size address range records,
// ensuring a consistent byte-level representation across platforms.
//
// # Database Structure
//
// A database file consists of a fixed-size header followed by five
// contiguous sections:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (36 bytes, fixed)                                │
//	│  - Magic "BAG1" (4 bytes)                               │
//	│  - Counts (12 bytes): localities, public spaces, ranges │
//	│  - Offsets (20 bytes): one per section                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Locality Offsets ((locality_count+1) × 4 bytes)         │
//	├─────────────────────────────────────────────────────────┤
//	│ Locality Data (variable, concatenated UTF-8)            │
//	├─────────────────────────────────────────────────────────┤
//	│ Public Space Offsets ((public_space_count+1) × 4 bytes) │
//	├─────────────────────────────────────────────────────────┤
//	│ Public Space Data (variable, concatenated UTF-8)        │
//	├─────────────────────────────────────────────────────────┤
//	│ Ranges (range_count × 16 bytes, sorted)                 │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
// Header (36 bytes):
//
//	Bytes  | Field                    | Type    | Description
//	-------|--------------------------|---------|----------------------------------
//	0-3    | Magic                    | [4]byte | "BAG1"
//	4-7    | LocalityCount            | uint32  | Number of locality names
//	8-11   | PublicSpaceCount         | uint32  | Number of public space names
//	12-15  | RangeCount               | uint32  | Number of address ranges
//	16-19  | LocalityOffsetsOffset    | uint32  | Always 36 (follows the header)
//	20-23  | LocalityDataOffset       | uint32  | Byte offset of locality data
//	24-27  | PublicSpaceOffsetsOffset | uint32  | Byte offset of public space offsets
//	28-31  | PublicSpaceDataOffset    | uint32  | Byte offset of public space data
//	32-35  | RangesOffset             | uint32  | Byte offset of the range records
//
// # Range Record Format
//
// Range record (16 bytes, no alignment padding):
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|----------------------------------
//	0-3    | PostalCode       | uint32 | Order-preserving encoded postal code
//	4-7    | Start            | uint32 | First house number of the span
//	8-9    | Length           | uint16 | Count of house numbers in the span
//	10-13  | PublicSpaceIndex | uint32 | Index into the public space table
//	14-15  | LocalityIndex    | uint16 | Index into the locality table
//
// # Byte Order
//
// Every multi-byte value in the format is little-endian; the endian package
// provides the engine used for all reads and writes.
//
// Most users should interact with the database package instead of using
// section directly.
package section
