package export

import (
	"html/template"
	"io"
	"time"

	"tailorshop/internal/domain"
)

// reportTemplate renders the printable customer report: one block per
// customer, page-break aware so the browser's print-to-PDF splits cleanly.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Customer Records</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; }
    .header { text-align: center; margin-bottom: 30px; }
    .customer { border: 1px solid #ddd; margin: 15px 0; padding: 15px; page-break-inside: avoid; }
    .customer-name { font-size: 18px; font-weight: bold; }
    .order-number { color: #666; }
    .contact { margin: 8px 0; }
    .measurement { margin: 8px 0 0 0; }
    .measurement-type { font-weight: bold; text-transform: capitalize; }
    .field { display: inline-block; margin-right: 16px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Customer Records</h1>
    <p>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}} &middot; {{len .Customers}} customers</p>
  </div>
{{range .Customers}}  <div class="customer">
    <div class="customer-name">{{.Name}} <span class="order-number">{{.OrderNumber}}</span></div>
    <div class="contact">Phone: {{.Phone}}{{if .Email}} &middot; Email: {{.Email}}{{end}}{{if .Address}} &middot; Address: {{.Address}}{{end}}</div>
{{range .Measurements}}    <div class="measurement">
      <span class="measurement-type">{{.Type}}{{if .Style}} ({{.Style}}){{end}}</span>
{{range .Dimensions.Fields}}      <span class="field">{{.Name}}: {{.Value}}</span>
{{end}}    </div>
{{end}}  </div>
{{end}}</body>
</html>
`))

type reportData struct {
	GeneratedAt time.Time
	Customers   []domain.Customer
}

// WriteReport renders the customer listing as a printable HTML document.
func WriteReport(w io.Writer, customers []domain.Customer, now time.Time) error {
	return reportTemplate.Execute(w, reportData{GeneratedAt: now, Customers: customers})
}
