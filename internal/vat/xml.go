package vat

import (
	"encoding/xml"
	"math"
	"strings"

	"github.com/forzencookie/verifikat/internal/periods"
)

type xmlDeclaration struct {
	XMLName           xml.Name `xml:"momsdeklaration"`
	OrgNumber         string   `xml:"organisationsnummer"`
	CompanyName       string   `xml:"foretagsnamn"`
	VATRegistrationNr string   `xml:"momsregistreringsnummer"`
	Period            string   `xml:"period"`
	Boxes             []xmlBox `xml:"rutor>ruta"`
}

type xmlBox struct {
	Code   string `xml:"kod,attr"`
	Amount int64  `xml:",chardata"`
}

// EncodeXML serializes the declaration for filing. Amounts are whole kronor,
// boxes appear in statutory order and only when non-zero. The output is
// byte-stable: the same logical report always yields identical bytes.
func EncodeXML(report Report, settings periods.Settings) ([]byte, error) {
	values := report.Boxes()
	doc := xmlDeclaration{
		OrgNumber:         settings.OrgNumber,
		CompanyName:       settings.CompanyName,
		VATRegistrationNr: VATRegistrationNumber(settings.OrgNumber),
		Period:            report.Period.Key(),
	}
	for _, code := range boxOrder {
		amount := int64(math.Round(values[code]))
		if amount == 0 {
			continue
		}
		doc.Boxes = append(doc.Boxes, xmlBox{Code: code, Amount: amount})
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// VATRegistrationNumber builds the momsregistreringsnummer from the
// organisation number: SE + digits + 01.
func VATRegistrationNumber(orgNumber string) string {
	digits := strings.ReplaceAll(orgNumber, "-", "")
	return "SE" + digits + "01"
}
