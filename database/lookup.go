package database

import (
	"fmt"
	"sort"

	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/postcode"
)

// Match is the result of a successful address lookup.
type Match struct {
	// Street is the public space name (street, square, waterway).
	Street string
	// Locality is the locality (woonplaats) name.
	Locality string
}

// Lookup resolves a postal code and house number against a Source.
//
// The postal code is normalized (lowercase accepted) and then strictly
// validated; a malformed code returns an error wrapping
// errs.ErrInvalidPostalCode. A well-formed code that matches no range
// returns (Match{}, false, nil).
//
// Ranges are sorted by (postal code, start), so the first range with a
// postal code >= the query is found by binary search and the contiguous
// run of equal postal codes is scanned from there. The first range whose
// span contains the house number wins; spans for one postal code do not
// overlap in a well-formed database, so at most one can match. Cost is
// O(log R + k) with k the size of the run.
func Lookup(src Source, postalCode string, houseNumber uint32) (Match, bool, error) {
	normalized, ok := postcode.Normalize(postalCode)
	if !ok {
		return Match{}, false, fmt.Errorf("%w: %q is not 6 characters", errs.ErrInvalidPostalCode, postalCode)
	}

	encoded, err := postcode.Encode(normalized)
	if err != nil {
		return Match{}, false, err
	}

	n := src.RangeCount()
	i := sort.Search(n, func(i int) bool {
		return src.PostalCodeAt(i) >= encoded
	})

	for ; i < n && src.PostalCodeAt(i) == encoded; i++ {
		r := src.RangeAt(i)
		if !r.Contains(houseNumber) {
			continue
		}

		return Match{
			Street:   src.PublicSpaceName(r.PublicSpaceIndex),
			Locality: src.LocalityName(r.LocalityIndex),
		}, true, nil
	}

	return Match{}, false, nil
}
