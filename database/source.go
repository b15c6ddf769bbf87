package database

// Source is the read interface shared by the decoded Database and the
// zero-copy View. The lookup and suggestion algorithms are written once
// against it, which keeps the two query modes answer-for-answer identical.
//
// Index arguments follow the validation contract of this package: range
// indexes must be below RangeCount and name indexes below the respective
// table count; implementations panic otherwise.
type Source interface {
	// RangeCount returns the number of address ranges.
	RangeCount() int
	// PostalCodeAt returns the encoded postal code of range i without
	// decoding the rest of the record.
	PostalCodeAt(i int) uint32
	// RangeAt returns range i.
	RangeAt(i int) Range
	// PublicSpaceName returns the public space name at the given table index.
	PublicSpaceName(index uint32) string
	// LocalityName returns the locality name at the given table index.
	LocalityName(index uint16) string
	// LocalityCount returns the number of locality names.
	LocalityCount() int
	// LocalityAt returns locality name i.
	LocalityAt(i int) string
	// Empty reports whether the database holds no ranges.
	Empty() bool
}
