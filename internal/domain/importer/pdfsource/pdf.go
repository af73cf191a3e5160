// Package pdfsource adapts PDF files to the parser's page model.
//
// Quotation PDFs carry no logical structure, only positioned text
// fragments. Fragments are grouped into visual rows by Y coordinate,
// rows into cells by X gaps, and cell runs below a recognized header
// into tables.
package pdfsource

import (
	"context"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/FACorreiaa/quote-desk/internal/domain/importer/parser"
)

const (
	// Fragments whose Y differs by less than this belong to one row.
	rowTolerance = 2.0
	// A horizontal gap wider than this starts a new cell.
	cellGap = 12.0
	// A cell start within this distance of a header column X is
	// assigned to that column.
	columnTolerance = 40.0
)

// Document is a parser.PageSource backed by a PDF file on disk.
type Document struct {
	path string
}

// Open returns a page source for the given PDF path. The file is not
// touched until Pages is called, so open and decode failures surface
// as parse errors.
func Open(path string) *Document {
	return &Document{path: path}
}

// Pages decodes every page of the PDF into lines and tables.
func (d *Document) Pages(ctx context.Context) ([]parser.Page, error) {
	f, r, err := pdf.Open(d.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []parser.Page
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, buildPage(groupRows(p.Content().Text)))
	}
	return pages, nil
}

type textRow struct {
	y     float64
	frags []pdf.Text
}

// groupRows buckets text fragments into visual rows. PDF Y grows
// upward, so rows are sorted top of page first.
func groupRows(texts []pdf.Text) []textRow {
	var rows []textRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].frags = append(rows[i].frags, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, frags: []pdf.Text{t}})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	for i := range rows {
		frags := rows[i].frags
		sort.Slice(frags, func(a, b int) bool { return frags[a].X < frags[b].X })
	}
	return rows
}

type cellSpan struct {
	x    float64
	text string
}

// cellsOf joins a row's fragments into cells, splitting wherever the
// horizontal gap exceeds cellGap.
func cellsOf(r textRow) []cellSpan {
	var cells []cellSpan
	var cur strings.Builder
	var curX, prevEnd float64

	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			cells = append(cells, cellSpan{x: curX, text: text})
		}
		cur.Reset()
	}

	for _, f := range r.frags {
		if cur.Len() > 0 && f.X-prevEnd > cellGap {
			flush()
		}
		if cur.Len() == 0 {
			curX = f.X
		}
		cur.WriteString(f.S)
		prevEnd = f.X + f.W
	}
	flush()
	return cells
}

// buildPage turns visual rows into the parser's page model. A row
// whose text contains the item header keyword anchors a table; the
// rows below it are mapped onto the header's column grid until a row
// no longer fits the item shape.
func buildPage(rows []textRow) parser.Page {
	var page parser.Page

	cellRows := make([][]cellSpan, len(rows))
	for i, r := range rows {
		cellRows[i] = cellsOf(r)
		page.Lines = append(page.Lines, joinCells(cellRows[i]))
	}

	for i := 0; i < len(cellRows); i++ {
		header := cellRows[i]
		if !isHeaderRow(header) {
			continue
		}

		table := parser.Table{Rows: [][]string{cellTexts(header)}}
		columns := make([]float64, len(header))
		for j, c := range header {
			columns[j] = c.x
		}

		end := i + 1
		for ; end < len(cellRows); end++ {
			mapped, filled := alignToColumns(cellRows[end], columns)
			if filled < 4 {
				if !mergeContinuation(table.Rows, mapped, filled) {
					break
				}
				continue
			}
			table.Rows = append(table.Rows, mapped)
		}

		page.Tables = append(page.Tables, table)
		i = end
	}
	return page
}

func isHeaderRow(cells []cellSpan) bool {
	if len(cells) < 4 {
		return false
	}
	for _, c := range cells {
		if strings.Contains(c.text, "品名") {
			return true
		}
	}
	return false
}

// alignToColumns snaps a row's cells onto the header column grid and
// reports how many columns ended up occupied. Cells far from any
// column are dropped.
func alignToColumns(cells []cellSpan, columns []float64) ([]string, int) {
	mapped := make([]string, len(columns))
	filled := 0
	for _, c := range cells {
		j, dist := nearestColumn(c.x, columns)
		if dist > columnTolerance {
			continue
		}
		if mapped[j] == "" {
			mapped[j] = c.text
			filled++
		} else {
			mapped[j] += "\n" + c.text
		}
	}
	return mapped, filled
}

// mergeContinuation folds a sparse row carrying only name text into
// the previous data row. Long product names wrap onto their own
// visual row below the item line.
func mergeContinuation(rows [][]string, mapped []string, filled int) bool {
	if filled != 1 || len(rows) < 2 || len(mapped) <= 1 || mapped[1] == "" {
		return false
	}
	last := rows[len(rows)-1]
	last[1] += "\n" + mapped[1]
	return true
}

func nearestColumn(x float64, columns []float64) (int, float64) {
	best, bestDist := 0, abs(x-columns[0])
	for j := 1; j < len(columns); j++ {
		if d := abs(x - columns[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

func cellTexts(cells []cellSpan) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.text
	}
	return out
}

func joinCells(cells []cellSpan) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.text
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
