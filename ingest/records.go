package ingest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Status a public space or address must carry to be part of the current
// address book.
const issuedStatus = "Naamgeving uitgegeven"

// locality is an accepted Woonplaats: a named town or village identified by
// the numeric code public spaces refer to.
type locality struct {
	id   uint16
	name string
}

// publicSpace is an accepted OpenbareRuimte: a named street, square or other
// public space inside a single locality.
type publicSpace struct {
	id         string
	name       string
	localityID uint16
}

// address is an accepted Nummeraanduiding, tied to its public space by
// reference. House letters and number suffixes are irrelevant for range
// building and are not extracted; the duplicate house numbers they produce
// collapse during merging.
type address struct {
	id            string
	houseNumber   uint32
	postalCode    string
	publicSpaceID string
}

// parseLocalities scans one XML file for Woonplaats records.
func parseLocalities(r io.Reader, stats *Stats) ([]locality, error) {
	var out []locality

	err := scanRecords(r, "Woonplaats", func(dec *xml.Decoder) error {
		rec, ok, err := parseLocalityRecord(dec, stats)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, rec)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse localities: %w", err)
	}

	return out, nil
}

// parsePublicSpaces scans one XML file for OpenbareRuimte records.
func parsePublicSpaces(r io.Reader, stats *Stats) ([]publicSpace, error) {
	var out []publicSpace

	err := scanRecords(r, "OpenbareRuimte", func(dec *xml.Decoder) error {
		rec, ok, err := parsePublicSpaceRecord(dec, stats)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, rec)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse public spaces: %w", err)
	}

	return out, nil
}

// parseAddresses scans one XML file for Nummeraanduiding records.
func parseAddresses(r io.Reader, stats *Stats) ([]address, error) {
	var out []address

	err := scanRecords(r, "Nummeraanduiding", func(dec *xml.Decoder) error {
		rec, ok, err := parseAddressRecord(dec, stats)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, rec)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse addresses: %w", err)
	}

	return out, nil
}

// scanRecords walks the token stream and invokes record for every start
// element with the given local name, at any depth. The callback must consume
// the element's entire subtree. Namespace prefixes are ignored; the BAG
// schema does not reuse record element names across namespaces.
func scanRecords(r io.Reader, name string, record func(dec *xml.Decoder) error) error {
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != name {
			continue
		}

		if err := record(dec); err != nil {
			return err
		}
	}
}

// parseLocalityRecord consumes one Woonplaats element. A record with an end
// of validity anywhere in its body is historical and filtered out; a record
// with an unparsable identifier or without a name is skipped.
func parseLocalityRecord(dec *xml.Decoder, stats *Stats) (locality, bool, error) {
	var (
		idText  string
		name    string
		expired bool
	)

	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return locality{}, false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			switch t.Name.Local {
			case "identificatie":
				value, err = collectText(dec)
				idText = value
			case "naam":
				value, err = collectText(dec)
				name = value
			case "eindGeldigheid":
				_, err = collectText(dec)
				expired = true
			default:
				depth++
			}
			if err != nil {
				return locality{}, false, err
			}
		case xml.EndElement:
			depth--
		}
	}

	if expired {
		stats.Filtered++
		return locality{}, false, nil
	}

	id, err := strconv.ParseUint(idText, 10, 16)
	if err != nil || name == "" {
		stats.Skipped++
		return locality{}, false, nil
	}

	return locality{id: uint16(id), name: name}, true, nil
}

// parsePublicSpaceRecord consumes one OpenbareRuimte element. Historical
// records and records whose name was never issued are filtered; records with
// an unparsable locality reference or missing fields are skipped.
func parsePublicSpaceRecord(dec *xml.Decoder, stats *Stats) (publicSpace, bool, error) {
	var (
		id      string
		name    string
		refText string
		expired bool
		issued  bool
	)

	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return publicSpace{}, false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			switch t.Name.Local {
			case "identificatie":
				value, err = collectText(dec)
				id = value
			case "naam":
				value, err = collectText(dec)
				name = value
			case "WoonplaatsRef":
				value, err = collectText(dec)
				refText = value
			case "status":
				value, err = collectText(dec)
				if value == issuedStatus {
					issued = true
				}
			case "eindGeldigheid":
				_, err = collectText(dec)
				expired = true
			default:
				depth++
			}
			if err != nil {
				return publicSpace{}, false, err
			}
		case xml.EndElement:
			depth--
		}
	}

	if expired || !issued {
		stats.Filtered++
		return publicSpace{}, false, nil
	}

	localityID, err := strconv.ParseUint(refText, 10, 16)
	if err != nil || id == "" || name == "" {
		stats.Skipped++
		return publicSpace{}, false, nil
	}

	return publicSpace{id: id, name: name, localityID: uint16(localityID)}, true, nil
}

// parseAddressRecord consumes one Nummeraanduiding element. Historical and
// never-issued records are filtered, as are addresses without a postal code
// (a small minority that postal lookup cannot reach); unparsable house
// numbers and missing identifiers or references are skipped.
func parseAddressRecord(dec *xml.Decoder, stats *Stats) (address, bool, error) {
	var (
		id         string
		numberText string
		postalCode string
		refText    string
		expired    bool
		issued     bool
	)

	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return address{}, false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			switch t.Name.Local {
			case "identificatie":
				value, err = collectText(dec)
				id = value
			case "huisnummer":
				value, err = collectText(dec)
				numberText = value
			case "postcode":
				value, err = collectText(dec)
				postalCode = value
			case "OpenbareRuimteRef":
				value, err = collectText(dec)
				refText = value
			case "status":
				value, err = collectText(dec)
				if value == issuedStatus {
					issued = true
				}
			case "eindGeldigheid":
				_, err = collectText(dec)
				expired = true
			default:
				depth++
			}
			if err != nil {
				return address{}, false, err
			}
		case xml.EndElement:
			depth--
		}
	}

	if expired || !issued {
		stats.Filtered++
		return address{}, false, nil
	}

	if postalCode == "" {
		stats.Filtered++
		return address{}, false, nil
	}

	houseNumber, err := strconv.ParseUint(numberText, 10, 32)
	if err != nil || id == "" || refText == "" {
		stats.Skipped++
		return address{}, false, nil
	}

	return address{
		id:            id,
		houseNumber:   uint32(houseNumber),
		postalCode:    postalCode,
		publicSpaceID: refText,
	}, true, nil
}

// collectText consumes the subtree of the element whose start tag was just
// read and returns its character data with surrounding whitespace trimmed.
func collectText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder

	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
