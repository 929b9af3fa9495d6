package export

import (
	"fmt"
	"io"
	"strings"

	"tailorshop/internal/domain"
)

// csvColumns is the fixed column order of the spreadsheet export. The shirt
// columns are filled from the customer's first shirt measurement; Inseam is a
// legacy column no garment field set populates and stays empty.
var csvColumns = []string{
	"Order Number", "Name", "Phone", "Email", "Address",
	"Chest", "Waist", "Hip", "Shoulder", "Sleeve", "Length", "Inseam",
	"Created Date",
}

// WriteCSV writes the customer listing as a delimited table, one row per
// customer. Every value is quoted, matching the format the shop's
// spreadsheets already expect.
func WriteCSV(w io.Writer, customers []domain.Customer) error {
	if err := writeRow(w, csvColumns); err != nil {
		return err
	}
	for _, c := range customers {
		shirt := firstShirt(c)
		row := []string{
			c.OrderNumber,
			c.Name,
			c.Phone,
			c.Email,
			c.Address,
			string(shirt.Chest),
			string(shirt.Waist),
			string(shirt.Hip),
			string(shirt.Shoulder),
			string(shirt.Sleeve),
			string(shirt.Length),
			"",
			c.CreatedAt.Format("2006-01-02"),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

func firstShirt(c domain.Customer) domain.ShirtDimensions {
	for _, m := range c.Measurements {
		if m.Type == domain.GarmentShirt && m.Dimensions.Shirt != nil {
			return *m.Dimensions.Shirt
		}
	}
	return domain.ShirtDimensions{}
}
