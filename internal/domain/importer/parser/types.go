// Package parser turns the page content of a quotation document into a
// normalized ExtractedDocument. It is pure: the page text/table
// primitive is injected as a PageSource and nothing here touches
// persisted state.
package parser

import (
	"context"
	"errors"
)

// ErrDocumentUnreadable indicates the underlying page extraction
// primitive could not open or decode the document. Partial extraction
// is never reported through this error; a sparse result is valid.
var ErrDocumentUnreadable = errors.New("document unreadable")

// Page is the decoded content of one document page as produced by the
// external extraction primitive: ordered text lines plus zero or more
// rectangular tables.
type Page struct {
	Lines  []string
	Tables []Table
}

// Table is an ordered grid of rows. The empty string marks an absent
// cell; rows may have differing lengths.
type Table struct {
	Rows [][]string
}

// PageSource yields the pages of one document.
type PageSource interface {
	Pages(ctx context.Context) ([]Page, error)
}

// ExtractedDocument is the ephemeral result of parsing one quotation
// document. It is consumed immediately by the catalog merger and never
// persisted. Empty strings mark fields that were not found.
type ExtractedDocument struct {
	CustomerName string
	Address      string
	LineItems    []ExtractedLineItem
}

// ExtractedLineItem is one normalized item-table row.
type ExtractedLineItem struct {
	Name      string
	Unit      string
	BasePrice int64
}
