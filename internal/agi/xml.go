package agi

import (
	"encoding/xml"
	"math"

	"github.com/forzencookie/verifikat/internal/periods"
)

type xmlDeclaration struct {
	XMLName       xml.Name `xml:"arbetsgivardeklaration"`
	Period        string   `xml:"period"`
	OrgNumber     string   `xml:"orgNumber"`
	TotalSalary   int64    `xml:"totalSalary"`
	Tax           int64    `xml:"tax"`
	Contributions int64    `xml:"contributions"`
	Employees     int      `xml:"employees"`
}

// EncodeXML serializes one monthly declaration. Whole kronor, byte-stable.
func EncodeXML(report Report, settings periods.Settings) ([]byte, error) {
	doc := xmlDeclaration{
		Period:        report.Period.Key(),
		OrgNumber:     settings.OrgNumber,
		TotalSalary:   int64(math.Round(report.TotalSalary)),
		Tax:           int64(math.Round(report.Tax)),
		Contributions: int64(math.Round(report.Contributions)),
		Employees:     report.Employees,
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
