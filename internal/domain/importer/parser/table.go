package parser

import (
	"strings"

	"github.com/FACorreiaa/quote-desk/internal/domain/importer/normalizer"
)

// itemHeaderKeyword gates candidate item tables: the first row must
// contain a cell with this token.
const itemHeaderKeyword = "品名"

// DefaultUnit is used when a row's unit cell is blank.
const DefaultUnit = "個"

// Item-table column layout: [項目, 品名・仕様, 数量, 単位, 単価, 金額].
const (
	colName  = 1
	colUnit  = 3
	colPrice = 4
)

// IsItemTable reports whether the table's header row matches the known
// item-table signature.
func IsItemTable(t Table) bool {
	if len(t.Rows) == 0 {
		return false
	}
	for _, cell := range t.Rows[0] {
		if strings.Contains(cell, itemHeaderKeyword) {
			return true
		}
	}
	return false
}

// ExtractLineItems parses the data rows of a candidate item table.
// Rows that do not fit the item shape (blank name, missing or
// non-numeric price, negative amount) are silently skipped; quotation
// tables routinely contain subtotal and notes rows.
func ExtractLineItems(t Table) []ExtractedLineItem {
	if !IsItemTable(t) {
		return nil
	}

	var items []ExtractedLineItem
	for _, row := range t.Rows[1:] {
		if len(row) < 4 {
			continue
		}

		name := cleanItemName(cell(row, colName))
		priceToken := cell(row, colPrice)
		if name == "" || strings.TrimSpace(priceToken) == "" {
			continue
		}

		price, err := normalizer.NormalizePrice(priceToken)
		if err != nil || price < 0 {
			continue
		}

		unit := strings.TrimSpace(cell(row, colUnit))
		if unit == "" {
			unit = DefaultUnit
		}

		items = append(items, ExtractedLineItem{
			Name:      name,
			Unit:      unit,
			BasePrice: price,
		})
	}
	return items
}

// cleanItemName collapses embedded line breaks to single spaces and
// trims the result; multi-line product names are common in PDFs.
func cleanItemName(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
