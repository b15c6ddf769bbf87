package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/postcode"
	"github.com/tweedegolf/bag-address-lookup/section"
)

func mustEncode(t *testing.T, code string) uint32 {
	t.Helper()

	encoded, err := postcode.Encode(code)
	require.NoError(t, err)

	return encoded
}

func TestBuildTables_InternsFirstSeen(t *testing.T) {
	data := &parsedData{
		localities: []locality{
			{id: 10, name: "Beta"},
			{id: 11, name: "Alpha"},
			{id: 12, name: "Alpha"},
		},
		publicSpaces: []publicSpace{
			{id: "ps-2", name: "Spoorstraat", localityID: 10},
			{id: "ps-1", name: "Hoofdweg", localityID: 11},
			{id: "ps-3", name: "Spoorstraat", localityID: 12},
		},
		addresses: []address{
			{id: "a-1", houseNumber: 1, postalCode: "1234AB", publicSpaceID: "ps-1"},
			{id: "a-2", houseNumber: 5, postalCode: "4321ZZ", publicSpaceID: "ps-3"},
		},
	}

	var stats Stats

	localities, publicSpaces, tuples, err := buildTables(data, &stats)
	require.NoError(t, err)

	// Names appear in encounter order, duplicates collapse to one entry.
	require.Equal(t, []string{"Beta", "Alpha"}, localities)
	require.Equal(t, []string{"Spoorstraat", "Hoofdweg"}, publicSpaces)

	require.Equal(t, []tuple{
		{postalCode: mustEncode(t, "1234AB"), houseNumber: 1, publicSpaceIndex: 1, localityIndex: 1},
		{postalCode: mustEncode(t, "4321ZZ"), houseNumber: 5, publicSpaceIndex: 0, localityIndex: 1},
	}, tuples)

	require.Equal(t, 3, stats.Localities)
	require.Equal(t, 3, stats.PublicSpaces)
	require.Equal(t, 2, stats.Addresses)
	require.Zero(t, stats.Skipped)
}

func TestBuildTables_SkipsUnresolvable(t *testing.T) {
	data := &parsedData{
		localities: []locality{{id: 1, name: "Ons Dorp"}},
		publicSpaces: []publicSpace{
			{id: "ps-1", name: "Kerkstraat", localityID: 1},
			{id: "ps-orphan", name: "Spookweg", localityID: 99},
		},
		addresses: []address{
			{id: "a-1", houseNumber: 1, postalCode: "1234AB", publicSpaceID: "ps-1"},
			{id: "a-2", houseNumber: 2, postalCode: "1234AB", publicSpaceID: "ps-orphan"},
			{id: "a-3", houseNumber: 3, postalCode: "1234AB", publicSpaceID: "ps-unknown"},
			{id: "a-4", houseNumber: 4, postalCode: "12AB34", publicSpaceID: "ps-1"},
		},
	}

	var stats Stats

	localities, publicSpaces, tuples, err := buildTables(data, &stats)
	require.NoError(t, err)

	require.Equal(t, []string{"Ons Dorp"}, localities)
	// The orphan public space never enters the table, and the addresses that
	// depend on it are dropped along with it.
	require.Equal(t, []string{"Kerkstraat"}, publicSpaces)
	require.Len(t, tuples, 1)
	require.Equal(t, uint32(1), tuples[0].houseNumber)

	// One orphan public space, two dangling addresses, one bad postal code.
	require.Equal(t, 4, stats.Skipped)
	require.Equal(t, 1, stats.PublicSpaces)
	require.Equal(t, 1, stats.Addresses)
}

func TestBuildTables_TooManyLocalities(t *testing.T) {
	count := int(section.MaxLocalityIndex) + 2
	localities := make([]locality, count)
	for i := range localities {
		localities[i] = locality{id: uint16(i), name: fmt.Sprintf("Plaats %d", i)}
	}

	var stats Stats

	_, _, _, err := buildTables(&parsedData{localities: localities}, &stats)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTooManyLocalities)
}

func TestMergeRanges(t *testing.T) {
	pcAB := mustEncode(t, "1234AB")
	pcAC := mustEncode(t, "1234AC")

	// Unsorted on purpose, with a duplicate house number (a letter variant)
	// and a gap that forces a second range.
	tuples := []tuple{
		{postalCode: pcAB, houseNumber: 2, publicSpaceIndex: 0},
		{postalCode: pcAB, houseNumber: 1, publicSpaceIndex: 0},
		{postalCode: pcAB, houseNumber: 2, publicSpaceIndex: 0},
		{postalCode: pcAB, houseNumber: 4, publicSpaceIndex: 0},
		{postalCode: pcAB, houseNumber: 1, publicSpaceIndex: 1},
		{postalCode: pcAC, houseNumber: 3, publicSpaceIndex: 0},
	}

	got := mergeRanges(tuples)

	require.Equal(t, []database.Range{
		{PostalCode: pcAB, Start: 1, Length: 2, PublicSpaceIndex: 0},
		{PostalCode: pcAB, Start: 1, Length: 1, PublicSpaceIndex: 1},
		{PostalCode: pcAB, Start: 4, Length: 1, PublicSpaceIndex: 0},
		{PostalCode: pcAC, Start: 3, Length: 1, PublicSpaceIndex: 0},
	}, got)
}

func TestMergeRanges_SortsByStartWithinPostalCode(t *testing.T) {
	pc := mustEncode(t, "9876XY")

	tuples := []tuple{
		{postalCode: pc, houseNumber: 40, publicSpaceIndex: 0},
		{postalCode: pc, houseNumber: 2, publicSpaceIndex: 2},
		{postalCode: pc, houseNumber: 10, publicSpaceIndex: 1},
	}

	got := mergeRanges(tuples)

	// Merging groups by street; the final order must be by start so that a
	// lookup can scan the postal code run front to back.
	require.Len(t, got, 3)
	require.Equal(t, uint32(2), got[0].Start)
	require.Equal(t, uint32(10), got[1].Start)
	require.Equal(t, uint32(40), got[2].Start)
}

func TestMergeRanges_SplitsLongRuns(t *testing.T) {
	pc := mustEncode(t, "1000AA")
	runLength := int(section.MaxRangeLength) + 2

	tuples := make([]tuple, runLength)
	for i := range tuples {
		tuples[i] = tuple{postalCode: pc, houseNumber: uint32(i + 1)}
	}

	got := mergeRanges(tuples)

	require.Equal(t, []database.Range{
		{PostalCode: pc, Start: 1, Length: section.MaxRangeLength},
		{PostalCode: pc, Start: 1 + uint32(section.MaxRangeLength), Length: 2},
	}, got)

	// The two ranges meet without a gap or overlap.
	require.Equal(t, got[1].Start, got[0].End())
}

func TestMergeRanges_Empty(t *testing.T) {
	require.Empty(t, mergeRanges(nil))
	require.Empty(t, mergeRanges([]tuple{}))
}
