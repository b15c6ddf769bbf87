package database

import (
	"fmt"
	"slices"

	"github.com/tweedegolf/bag-address-lookup/section"
	"github.com/tweedegolf/bag-address-lookup/stringtable"
)

// Database is the fully decoded query mode: names and ranges live in Go
// slices, so queries never touch the serialized form. A Database is
// immutable after construction and safe for concurrent readers.
type Database struct {
	localities   []string
	publicSpaces []string
	ranges       []Range
}

var _ Source = (*Database)(nil)

// New creates a Database from already-built tables and ranges. The caller
// (normally the ingest transform) guarantees the build invariants: ranges
// sorted by (postal code, start), spans non-overlapping per postal code,
// and every record index inside the tables.
func New(localities, publicSpaces []string, ranges []Range) *Database {
	return &Database{
		localities:   localities,
		publicSpaces: publicSpaces,
		ranges:       ranges,
	}
}

// Decode parses a serialized database into the decoded query mode.
//
// The input must be fully decompressed. Layout violations return errors
// wrapping errs.ErrTooShort, errs.ErrInvalidMagic or errs.ErrInvalidLayout.
func Decode(data []byte) (*Database, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("decode database header: %w", err)
	}
	if err := header.CheckLayout(len(data)); err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}

	localityTable, err := stringtable.Decode(
		data[header.LocalityOffsetsOffset:header.LocalityDataOffset],
		data[header.LocalityDataOffset:header.PublicSpaceOffsetsOffset],
	)
	if err != nil {
		return nil, fmt.Errorf("decode locality table: %w", err)
	}

	publicSpaceTable, err := stringtable.Decode(
		data[header.PublicSpaceOffsetsOffset:header.PublicSpaceDataOffset],
		data[header.PublicSpaceDataOffset:header.RangesOffset],
	)
	if err != nil {
		return nil, fmt.Errorf("decode public space table: %w", err)
	}

	ranges := make([]Range, header.RangeCount)
	records := data[header.RangesOffset:]
	for i := range ranges {
		ranges[i] = parseRange(records[i*section.RangeRecordSize:])
	}

	return &Database{
		localities:   slices.Collect(localityTable.All()),
		publicSpaces: slices.Collect(publicSpaceTable.All()),
		ranges:       ranges,
	}, nil
}

// RangeCount returns the number of address ranges.
func (db *Database) RangeCount() int {
	return len(db.ranges)
}

// PostalCodeAt returns the encoded postal code of range i.
func (db *Database) PostalCodeAt(i int) uint32 {
	return db.ranges[i].PostalCode
}

// RangeAt returns range i.
func (db *Database) RangeAt(i int) Range {
	return db.ranges[i]
}

// PublicSpaceName returns the public space name at the given table index.
func (db *Database) PublicSpaceName(index uint32) string {
	return db.publicSpaces[index]
}

// LocalityName returns the locality name at the given table index.
func (db *Database) LocalityName(index uint16) string {
	return db.localities[index]
}

// LocalityCount returns the number of locality names.
func (db *Database) LocalityCount() int {
	return len(db.localities)
}

// LocalityAt returns locality name i.
func (db *Database) LocalityAt(i int) string {
	return db.localities[i]
}

// Empty reports whether the database holds no ranges.
func (db *Database) Empty() bool {
	return len(db.ranges) == 0
}

// Ranges returns the ranges in serialized order. The slice is shared with
// the Database and must not be modified.
func (db *Database) Ranges() []Range {
	return db.ranges
}

// Lookup resolves a postal code and house number to a match. See the
// package-level Lookup function for the full contract.
func (db *Database) Lookup(postalCode string, houseNumber uint32) (Match, bool, error) {
	return Lookup(db, postalCode, houseNumber)
}
