// Package export renders search results into download formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hazyhaar/dealscout/product"
)

// WriteCSV writes products as CSV with a name,price,url,source header row.
// Products without a parsed price get an empty price column.
func WriteCSV(w io.Writer, products []product.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "price", "url", "source"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, p := range products {
		price := ""
		if p.Price != nil {
			price = fmt.Sprintf("%.2f", *p.Price)
		}
		if err := cw.Write([]string{p.Name, price, p.URL, p.Source}); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}
