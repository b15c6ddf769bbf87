package ingest

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/postcode"
	"github.com/tweedegolf/bag-address-lookup/section"
	"github.com/tweedegolf/bag-address-lookup/stringtable"
)

// tuple is one address resolved to table indexes, ready for sorting and
// merging.
type tuple struct {
	postalCode       uint32
	houseNumber      uint32
	publicSpaceIndex uint32
	localityIndex    uint16
}

// psTarget is where a public space reference resolves to: the index of its
// own name and the index of the locality it belongs to.
type psTarget struct {
	publicSpaceIndex uint32
	localityIndex    uint16
}

// buildTables interns the accepted names in first-seen order and resolves
// every address into an index tuple. Public spaces referring to an unknown
// locality, and addresses referring to an unknown public space or carrying a
// malformed postal code, are skipped and counted.
//
// Returns:
//   - []string: locality names in interning order
//   - []string: public space names in interning order
//   - []tuple: one tuple per resolvable address, unsorted
//   - error: errs.ErrTooManyLocalities when the names exceed the 16-bit index
func buildTables(data *parsedData, stats *Stats) ([]string, []string, []tuple, error) {
	localityNames := stringtable.NewBuilder()
	localityByID := make(map[uint16]uint16, len(data.localities))

	for _, wpl := range data.localities {
		index := localityNames.Intern(wpl.name)
		if index > uint32(section.MaxLocalityIndex) {
			return nil, nil, nil, fmt.Errorf("%w: %d names", errs.ErrTooManyLocalities, localityNames.Len())
		}
		localityByID[wpl.id] = uint16(index)
	}
	stats.Localities = len(data.localities)

	publicSpaceNames := stringtable.NewBuilder()
	psByID := make(map[string]psTarget, len(data.publicSpaces))

	for _, opr := range data.publicSpaces {
		localityIndex, ok := localityByID[opr.localityID]
		if !ok {
			stats.Skipped++
			continue
		}

		psByID[opr.id] = psTarget{
			publicSpaceIndex: publicSpaceNames.Intern(opr.name),
			localityIndex:    localityIndex,
		}
	}
	stats.PublicSpaces = len(psByID)

	tuples := make([]tuple, 0, len(data.addresses))
	for _, num := range data.addresses {
		target, ok := psByID[num.publicSpaceID]
		if !ok {
			stats.Skipped++
			continue
		}

		encoded, err := postcode.Encode(num.postalCode)
		if err != nil {
			stats.Skipped++
			continue
		}

		tuples = append(tuples, tuple{
			postalCode:       encoded,
			houseNumber:      num.houseNumber,
			publicSpaceIndex: target.publicSpaceIndex,
			localityIndex:    target.localityIndex,
		})
	}
	stats.Addresses = len(tuples)

	localities := slices.Collect(localityNames.Build().All())
	publicSpaces := slices.Collect(publicSpaceNames.Build().All())

	return localities, publicSpaces, tuples, nil
}

// mergeRanges sorts the tuples by (postal code, street, locality, number),
// collapses runs of consecutive house numbers into ranges, and returns the
// ranges sorted by (postal code, start) — the order lookups require.
//
// Duplicate house numbers, typically letter or suffix variants of the same
// number, fold into the range they already belong to. A run longer than the
// length field can carry is split into back-to-back ranges.
func mergeRanges(tuples []tuple) []database.Range {
	slices.SortFunc(tuples, func(a, b tuple) int {
		if c := cmp.Compare(a.postalCode, b.postalCode); c != 0 {
			return c
		}
		if c := cmp.Compare(a.publicSpaceIndex, b.publicSpaceIndex); c != 0 {
			return c
		}
		if c := cmp.Compare(a.localityIndex, b.localityIndex); c != 0 {
			return c
		}

		return cmp.Compare(a.houseNumber, b.houseNumber)
	})

	var ranges []database.Range
	var cur database.Range
	open := false

	for _, t := range tuples {
		if open && cur.PostalCode == t.postalCode &&
			cur.PublicSpaceIndex == t.publicSpaceIndex &&
			cur.LocalityIndex == t.localityIndex {
			end := cur.Start + uint32(cur.Length)
			if t.houseNumber < end {
				// Duplicate of a number already covered.
				continue
			}
			if t.houseNumber == end && cur.Length < section.MaxRangeLength {
				cur.Length++
				continue
			}
		}

		if open {
			ranges = append(ranges, cur)
		}
		cur = database.Range{
			PostalCode:       t.postalCode,
			Start:            t.houseNumber,
			Length:           1,
			PublicSpaceIndex: t.publicSpaceIndex,
			LocalityIndex:    t.localityIndex,
		}
		open = true
	}
	if open {
		ranges = append(ranges, cur)
	}

	// The merge order groups by street before start; lookups need the global
	// (postal code, start) order. The remaining keys make the order total, so
	// the output does not depend on sort stability.
	slices.SortFunc(ranges, func(a, b database.Range) int {
		if c := cmp.Compare(a.PostalCode, b.PostalCode); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.PublicSpaceIndex, b.PublicSpaceIndex); c != 0 {
			return c
		}

		return cmp.Compare(a.LocalityIndex, b.LocalityIndex)
	})

	return ranges
}
