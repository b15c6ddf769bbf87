package database

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/section"
	"github.com/tweedegolf/bag-address-lookup/stringtable"
)

// Bytes serializes the database into the binary layout: header, locality
// table, public space table, range records. The output is deterministic:
// the same database always serializes to the same bytes.
func (db *Database) Bytes() ([]byte, error) {
	localityTable := stringtable.FromStrings(db.localities)
	publicSpaceTable := stringtable.FromStrings(db.publicSpaces)

	size := section.HeaderSize +
		localityTable.SerializedSize() +
		publicSpaceTable.SerializedSize() +
		len(db.ranges)*section.RangeRecordSize

	return db.appendTo(make([]byte, 0, size), localityTable, publicSpaceTable)
}

// AppendTo appends the serialized database to buf and returns the extended
// slice.
func (db *Database) AppendTo(buf []byte) ([]byte, error) {
	return db.appendTo(buf, stringtable.FromStrings(db.localities), stringtable.FromStrings(db.publicSpaces))
}

func (db *Database) appendTo(buf []byte, localityTable, publicSpaceTable *stringtable.Table) ([]byte, error) {
	if len(db.localities) > section.MaxLocalityIndex+1 {
		return nil, fmt.Errorf("%w: %d localities", errs.ErrTooManyLocalities, len(db.localities))
	}
	if uint64(len(db.publicSpaces)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d public spaces", errs.ErrTooManyPublicSpaces, len(db.publicSpaces))
	}
	if uint64(len(db.ranges)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d ranges", errs.ErrCountOverflow, len(db.ranges))
	}

	header := section.NewHeader(
		len(db.localities), localityTable.DataLen(),
		len(db.publicSpaces), publicSpaceTable.DataLen(),
		len(db.ranges),
	)

	buf = header.AppendTo(buf)
	buf = localityTable.AppendTo(buf)
	buf = publicSpaceTable.AppendTo(buf)
	for _, r := range db.ranges {
		buf = r.AppendTo(buf)
	}

	return buf, nil
}

// Digest returns the xxHash64 digest of a serialized database. Builds are
// deterministic, so equal digests mean byte-identical databases; the build
// tool logs it and tests use it to pin determinism.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
