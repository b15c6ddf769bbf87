package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const localityXML = `<?xml version="1.0" encoding="UTF-8"?>
<sl-bag-extract:bagStand
    xmlns:sl-bag-extract="http://www.kadaster.nl/schemas/lvbag/extract-deelbestand-lvc/v20200601"
    xmlns:Objecten="www.kadaster.nl/schemas/lvbag/imbag/objecten/v20200601"
    xmlns:Historie="www.kadaster.nl/schemas/lvbag/imbag/historie/v20200601">
  <sl-bag-extract:bagObject>
    <Objecten:Woonplaats>
      <Objecten:identificatie domein="NL.IMBAG.Woonplaats">1024</Objecten:identificatie>
      <Objecten:naam>Amsterdam</Objecten:naam>
      <Objecten:status>Woonplaats aangewezen</Objecten:status>
      <Objecten:geconstateerd>N</Objecten:geconstateerd>
      <Objecten:voorkomen>
        <Historie:Voorkomen>
          <Historie:voorkomenidentificatie>1</Historie:voorkomenidentificatie>
          <Historie:beginGeldigheid>2010-07-01</Historie:beginGeldigheid>
        </Historie:Voorkomen>
      </Objecten:voorkomen>
    </Objecten:Woonplaats>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Woonplaats>
      <Objecten:identificatie domein="NL.IMBAG.Woonplaats">2150</Objecten:identificatie>
      <Objecten:naam>Diemen</Objecten:naam>
      <Objecten:status>Woonplaats aangewezen</Objecten:status>
    </Objecten:Woonplaats>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Woonplaats>
      <Objecten:identificatie domein="NL.IMBAG.Woonplaats">1960</Objecten:identificatie>
      <Objecten:naam>Weesp</Objecten:naam>
      <Objecten:status>Woonplaats aangewezen</Objecten:status>
      <Objecten:voorkomen>
        <Historie:Voorkomen>
          <Historie:beginGeldigheid>2010-07-01</Historie:beginGeldigheid>
          <Historie:eindGeldigheid>2022-03-24</Historie:eindGeldigheid>
        </Historie:Voorkomen>
      </Objecten:voorkomen>
    </Objecten:Woonplaats>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Woonplaats>
      <Objecten:identificatie domein="NL.IMBAG.Woonplaats">ABC</Objecten:identificatie>
      <Objecten:naam>Nergenshuizen</Objecten:naam>
    </Objecten:Woonplaats>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Woonplaats>
      <Objecten:identificatie domein="NL.IMBAG.Woonplaats">77</Objecten:identificatie>
    </Objecten:Woonplaats>
  </sl-bag-extract:bagObject>
</sl-bag-extract:bagStand>`

const publicSpaceXML = `<?xml version="1.0" encoding="UTF-8"?>
<sl-bag-extract:bagStand
    xmlns:sl-bag-extract="http://www.kadaster.nl/schemas/lvbag/extract-deelbestand-lvc/v20200601"
    xmlns:Objecten="www.kadaster.nl/schemas/lvbag/imbag/objecten/v20200601"
    xmlns:Historie="www.kadaster.nl/schemas/lvbag/imbag/historie/v20200601"
    xmlns:Objecten-ref="www.kadaster.nl/schemas/lvbag/imbag/objecten-ref/v20200601">
  <sl-bag-extract:bagObject>
    <Objecten:OpenbareRuimte>
      <Objecten:identificatie domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten:identificatie>
      <Objecten:naam>Dam</Objecten:naam>
      <Objecten:type>Weg</Objecten:type>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtIn>
        <Objecten-ref:WoonplaatsRef domein="NL.IMBAG.Woonplaats">1024</Objecten-ref:WoonplaatsRef>
      </Objecten:ligtIn>
    </Objecten:OpenbareRuimte>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:OpenbareRuimte>
      <Objecten:identificatie domein="NL.IMBAG.OpenbareRuimte">0363300000003559</Objecten:identificatie>
      <Objecten:naam>Rokin</Objecten:naam>
      <Objecten:type>Weg</Objecten:type>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtIn>
        <Objecten-ref:WoonplaatsRef domein="NL.IMBAG.Woonplaats">1024</Objecten-ref:WoonplaatsRef>
      </Objecten:ligtIn>
    </Objecten:OpenbareRuimte>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:OpenbareRuimte>
      <Objecten:identificatie domein="NL.IMBAG.OpenbareRuimte">0384300000000559</Objecten:identificatie>
      <Objecten:naam>Hartveldseweg</Objecten:naam>
      <Objecten:type>Weg</Objecten:type>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtIn>
        <Objecten-ref:WoonplaatsRef domein="NL.IMBAG.Woonplaats">2150</Objecten-ref:WoonplaatsRef>
      </Objecten:ligtIn>
    </Objecten:OpenbareRuimte>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:OpenbareRuimte>
      <Objecten:identificatie domein="NL.IMBAG.OpenbareRuimte">0363300000004001</Objecten:identificatie>
      <Objecten:naam>Vervallenpad</Objecten:naam>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtIn>
        <Objecten-ref:WoonplaatsRef domein="NL.IMBAG.Woonplaats">1024</Objecten-ref:WoonplaatsRef>
      </Objecten:ligtIn>
      <Objecten:voorkomen>
        <Historie:Voorkomen>
          <Historie:eindGeldigheid>2015-06-01</Historie:eindGeldigheid>
        </Historie:Voorkomen>
      </Objecten:voorkomen>
    </Objecten:OpenbareRuimte>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:OpenbareRuimte>
      <Objecten:identificatie domein="NL.IMBAG.OpenbareRuimte">0363300000004002</Objecten:identificatie>
      <Objecten:naam>Niehof</Objecten:naam>
      <Objecten:status>Naamgeving ingetrokken</Objecten:status>
      <Objecten:ligtIn>
        <Objecten-ref:WoonplaatsRef domein="NL.IMBAG.Woonplaats">1024</Objecten-ref:WoonplaatsRef>
      </Objecten:ligtIn>
    </Objecten:OpenbareRuimte>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:OpenbareRuimte>
      <Objecten:identificatie domein="NL.IMBAG.OpenbareRuimte">0363300000004003</Objecten:identificatie>
      <Objecten:naam>Brokenweg</Objecten:naam>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtIn>
        <Objecten-ref:WoonplaatsRef domein="NL.IMBAG.Woonplaats">notanumber</Objecten-ref:WoonplaatsRef>
      </Objecten:ligtIn>
    </Objecten:OpenbareRuimte>
  </sl-bag-extract:bagObject>
</sl-bag-extract:bagStand>`

const addressXML = `<?xml version="1.0" encoding="UTF-8"?>
<sl-bag-extract:bagStand
    xmlns:sl-bag-extract="http://www.kadaster.nl/schemas/lvbag/extract-deelbestand-lvc/v20200601"
    xmlns:Objecten="www.kadaster.nl/schemas/lvbag/imbag/objecten/v20200601"
    xmlns:Historie="www.kadaster.nl/schemas/lvbag/imbag/historie/v20200601"
    xmlns:Objecten-ref="www.kadaster.nl/schemas/lvbag/imbag/objecten-ref/v20200601">
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006886</Objecten:identificatie>
      <Objecten:huisnummer>1</Objecten:huisnummer>
      <Objecten:postcode>1012JS</Objecten:postcode>
      <Objecten:typeAdresseerbaarObject>Verblijfsobject</Objecten:typeAdresseerbaarObject>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006887</Objecten:identificatie>
      <Objecten:huisnummer>2</Objecten:huisnummer>
      <Objecten:huisletter>A</Objecten:huisletter>
      <Objecten:postcode>1012JS</Objecten:postcode>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006888</Objecten:identificatie>
      <Objecten:huisnummer>14</Objecten:huisnummer>
      <Objecten:huisnummertoevoeging>2</Objecten:huisnummertoevoeging>
      <Objecten:postcode>1012KV</Objecten:postcode>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003559</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006889</Objecten:identificatie>
      <Objecten:huisnummer>7</Objecten:huisnummer>
      <Objecten:postcode>1012JS</Objecten:postcode>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
      <Objecten:voorkomen>
        <Historie:Voorkomen>
          <Historie:eindGeldigheid>2018-11-30</Historie:eindGeldigheid>
        </Historie:Voorkomen>
      </Objecten:voorkomen>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006890</Objecten:identificatie>
      <Objecten:huisnummer>8</Objecten:huisnummer>
      <Objecten:postcode>1012JS</Objecten:postcode>
      <Objecten:status>Naamgeving ingetrokken</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006891</Objecten:identificatie>
      <Objecten:huisnummer>9</Objecten:huisnummer>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
  <sl-bag-extract:bagObject>
    <Objecten:Nummeraanduiding>
      <Objecten:identificatie domein="NL.IMBAG.Nummeraanduiding">0363200000006892</Objecten:identificatie>
      <Objecten:huisnummer>twaalf</Objecten:huisnummer>
      <Objecten:postcode>1012JS</Objecten:postcode>
      <Objecten:status>Naamgeving uitgegeven</Objecten:status>
      <Objecten:ligtAan>
        <Objecten-ref:OpenbareRuimteRef domein="NL.IMBAG.OpenbareRuimte">0363300000003186</Objecten-ref:OpenbareRuimteRef>
      </Objecten:ligtAan>
    </Objecten:Nummeraanduiding>
  </sl-bag-extract:bagObject>
</sl-bag-extract:bagStand>`

func TestParseLocalities(t *testing.T) {
	var stats Stats

	got, err := parseLocalities(strings.NewReader(localityXML), &stats)
	require.NoError(t, err)

	require.Equal(t, []locality{
		{id: 1024, name: "Amsterdam"},
		{id: 2150, name: "Diemen"},
	}, got)
	require.Equal(t, 1, stats.Filtered, "expired Weesp record")
	require.Equal(t, 2, stats.Skipped, "bad id and missing name")
}

func TestParseLocalities_CDATA(t *testing.T) {
	const doc = `<root xmlns:Objecten="urn:o">
	  <Objecten:Woonplaats>
	    <Objecten:identificatie>1245</Objecten:identificatie>
	    <Objecten:naam><![CDATA[Den Haag]]></Objecten:naam>
	  </Objecten:Woonplaats>
	</root>`

	var stats Stats

	got, err := parseLocalities(strings.NewReader(doc), &stats)
	require.NoError(t, err)
	require.Equal(t, []locality{{id: 1245, name: "Den Haag"}}, got)
}

func TestParseLocalities_UndeclaredPrefix(t *testing.T) {
	// Tags with an undeclared namespace prefix still match on local name.
	const doc = `<root>
	  <Objecten:Woonplaats>
	    <Objecten:identificatie>1245</Objecten:identificatie>
	    <Objecten:naam>Den Haag</Objecten:naam>
	  </Objecten:Woonplaats>
	</root>`

	var stats Stats

	got, err := parseLocalities(strings.NewReader(doc), &stats)
	require.NoError(t, err)
	require.Equal(t, []locality{{id: 1245, name: "Den Haag"}}, got)
}

func TestParsePublicSpaces(t *testing.T) {
	var stats Stats

	got, err := parsePublicSpaces(strings.NewReader(publicSpaceXML), &stats)
	require.NoError(t, err)

	require.Equal(t, []publicSpace{
		{id: "0363300000003186", name: "Dam", localityID: 1024},
		{id: "0363300000003559", name: "Rokin", localityID: 1024},
		{id: "0384300000000559", name: "Hartveldseweg", localityID: 2150},
	}, got)
	require.Equal(t, 2, stats.Filtered, "expired and withdrawn records")
	require.Equal(t, 1, stats.Skipped, "unparsable locality reference")
}

func TestParseAddresses(t *testing.T) {
	var stats Stats

	got, err := parseAddresses(strings.NewReader(addressXML), &stats)
	require.NoError(t, err)

	require.Equal(t, []address{
		{id: "0363200000006886", houseNumber: 1, postalCode: "1012JS", publicSpaceID: "0363300000003186"},
		{id: "0363200000006887", houseNumber: 2, postalCode: "1012JS", publicSpaceID: "0363300000003186"},
		{id: "0363200000006888", houseNumber: 14, postalCode: "1012KV", publicSpaceID: "0363300000003559"},
	}, got)

	// Expired, withdrawn, and missing postal code.
	require.Equal(t, 3, stats.Filtered)
	// Unparsable house number.
	require.Equal(t, 1, stats.Skipped)
}

func TestParseRecords_MalformedXML(t *testing.T) {
	const truncated = `<root xmlns:Objecten="urn:o">
	  <Objecten:Woonplaats>
	    <Objecten:identificatie>1245`

	var stats Stats

	_, err := parseLocalities(strings.NewReader(truncated), &stats)
	require.Error(t, err)

	_, err = parsePublicSpaces(strings.NewReader(`<a><b></a>`), &stats)
	require.Error(t, err)

	_, err = parseAddresses(strings.NewReader(`<x:Nummeraanduiding><x:huisnummer>3</bad>`), &stats)
	require.Error(t, err)
}

func TestParseAddresses_Empty(t *testing.T) {
	var stats Stats

	got, err := parseAddresses(strings.NewReader(`<root/>`), &stats)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, stats)
}
