package parser

import (
	"context"
	"fmt"
	"log/slog"
)

// Parser extracts one ExtractedDocument per quotation document.
type Parser struct {
	logger *slog.Logger
}

// New creates a document parser.
func New(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse walks every page of the document. The first page yielding a
// customer name or address wins that field; later pages never overwrite
// it. Line items accumulate across all pages in page and row order.
//
// It fails only when the page primitive itself fails
// (ErrDocumentUnreadable); a document with no recognizable fields and
// zero line items is a valid, sparse result.
func (p *Parser) Parse(ctx context.Context, src PageSource) (*ExtractedDocument, error) {
	pages, err := src.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentUnreadable, err)
	}

	doc := &ExtractedDocument{}
	for _, page := range pages {
		if doc.CustomerName == "" {
			if name, ok := LocateCustomerName(page.Lines); ok {
				doc.CustomerName = name
			}
		}
		if doc.Address == "" {
			if addr, ok := LocateAddress(page.Lines); ok {
				doc.Address = addr
			}
		}
		for _, table := range page.Tables {
			doc.LineItems = append(doc.LineItems, ExtractLineItems(table)...)
		}
	}

	p.logger.Debug("parsed document",
		slog.Bool("customer_found", doc.CustomerName != ""),
		slog.Bool("address_found", doc.Address != ""),
		slog.Int("line_items", len(doc.LineItems)),
	)
	return doc, nil
}
