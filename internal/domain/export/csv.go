// Package export renders catalog masters as CSV for spreadsheets and
// downstream tools.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
)

type customerRow struct {
	CompanyName   string  `csv:"company_name"`
	PostalCode    string  `csv:"postal_code"`
	Address       string  `csv:"address"`
	Phone         string  `csv:"phone"`
	Email         string  `csv:"email"`
	ContactPerson string  `csv:"contact_person"`
	DistanceKm    float64 `csv:"distance_km"`
}

type productRow struct {
	ProductName     string `csv:"product_name"`
	ProductCategory string `csv:"product_category"`
	BasePrice       int64  `csv:"base_price"`
	Unit            string `csv:"unit"`
}

// WriteCustomersCSV writes all customers as CSV with a header row.
func WriteCustomersCSV(w io.Writer, customers []catalog.Customer) error {
	rows := make([]customerRow, 0, len(customers))
	for _, c := range customers {
		row := customerRow{
			CompanyName: c.CompanyName,
			Phone:       c.Phone,
			Email:       c.Email,
		}
		if c.PostalCode != nil {
			row.PostalCode = *c.PostalCode
		}
		if c.Address != nil {
			row.Address = *c.Address
		}
		if c.ContactPerson != nil {
			row.ContactPerson = *c.ContactPerson
		}
		if c.DistanceKm != nil {
			row.DistanceKm = *c.DistanceKm
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write customers csv: %w", err)
	}
	return nil
}

// WriteProductsCSV writes all products as CSV with a header row.
func WriteProductsCSV(w io.Writer, products []catalog.Product) error {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			ProductName:     p.ProductName,
			ProductCategory: p.ProductCategory,
			BasePrice:       p.BasePrice,
			Unit:            p.Unit,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write products csv: %w", err)
	}
	return nil
}
