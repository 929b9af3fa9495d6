package export

import (
	"strings"
	"text/template"
	"time"

	"tailorshop/internal/domain"
)

// cardTemplate is the plain-text measurement card handed to the printer.
var cardTemplate = template.Must(template.New("card").Funcs(template.FuncMap{
	"upper": strings.ToUpper,
}).Parse(`MEASUREMENT CARD
================================

Order Number: {{.Customer.OrderNumber}}
Customer: {{.Customer.Name}}
Type: {{.TypeLabel}}
Date: {{.Now.Format "2006-01-02"}}

MEASUREMENTS:
{{- range .Measurement.Dimensions.Fields}}
{{upper .Name}}: {{.Value}}
{{- end}}

NOTES:
{{if .Measurement.Notes}}{{.Measurement.Notes}}{{else}}No notes{{end}}

================================
Status: {{if .Measurement.Printed}}PRINTED{{else}}NOT PRINTED{{end}}
`))

type cardData struct {
	Customer    domain.Customer
	Measurement domain.Measurement
	TypeLabel   string
	Now         time.Time
}

// RenderCard produces the printable text card for one measurement.
func RenderCard(c domain.Customer, m domain.Measurement, now time.Time) (string, error) {
	label := strings.ToUpper(string(m.Type))
	if m.Style != nil {
		label += " (" + strings.ToUpper(string(*m.Style)) + ")"
	}

	var b strings.Builder
	err := cardTemplate.Execute(&b, cardData{
		Customer:    c,
		Measurement: m,
		TypeLabel:   label,
		Now:         now,
	})
	return b.String(), err
}
