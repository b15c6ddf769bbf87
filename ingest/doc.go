// Package ingest builds an address database from a BAG extract archive.
//
// The Kadaster publishes the BAG as one large ZIP archive whose entries are
// themselves ZIP archives, one per object type, each holding a series of XML
// files:
//
//	lvbag-extract-nl.zip
//	├── 9999WPL<date>.zip        Woonplaats (locality) records
//	│   ├── 9999WPL...-000001.xml
//	│   └── ...
//	├── 9999OPR<date>.zip        OpenbareRuimte (public space) records
//	├── 9999NUM<date>.zip        Nummeraanduiding (address) records
//	└── ...                      other object types, ignored
//
// Build streams the archive entry by entry without extracting to disk and
// parses the XML with a token scanner, never materializing a document tree.
// Records that carry an eindGeldigheid are historical and dropped; public
// spaces and addresses additionally require the status "Naamgeving
// uitgegeven". Malformed records (unparsable house numbers, invalid postal
// codes, dangling references) are skipped and counted in Stats rather than
// failing the run; a missing object-type entry or an unreadable archive is
// fatal.
//
// The accepted records are transformed in three steps:
//
//  1. Locality and public space names are interned in first-seen order,
//     producing the two name tables and maps from BAG identifiers to
//     table indexes.
//  2. Each address is resolved through those maps into an
//     (encoded postal code, house number, street index, locality index)
//     tuple.
//  3. The tuples are sorted by (postal code, street, locality, number),
//     consecutive house numbers are merged into ranges, and the ranges are
//     re-sorted by (postal code, start) — the order the lookup engine
//     requires.
//
// Sorting makes the output deterministic: identical archive bytes always
// produce an identical database, which tests verify by digest.
package ingest
