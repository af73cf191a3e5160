package parser

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	pages []Page
	err   error
}

func (s stubSource) Pages(context.Context) ([]Page, error) {
	return s.pages, s.err
}

func testParser() *Parser {
	return New(slog.New(slog.DiscardHandler))
}

func TestParse_FirstPageWinsFields(t *testing.T) {
	src := stubSource{pages: []Page{
		{
			Lines: []string{"宛先", "株式会社一ページ目"},
		},
		{
			Lines: []string{
				"宛先",
				"株式会社二ページ目",
				"作業場所：東京都渋谷区道玄坂1-2-3",
			},
		},
	}}

	doc, err := testParser().Parse(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "株式会社一ページ目", doc.CustomerName)
	assert.Equal(t, "東京都渋谷区道玄坂1-2-3", doc.Address)
}

func TestParse_LineItemsAccumulateAcrossPages(t *testing.T) {
	src := stubSource{pages: []Page{
		{Tables: []Table{{Rows: [][]string{
			itemHeader,
			{"1", "サーバー保守", "1", "式", "50,000", "50,000"},
		}}}},
		{Tables: []Table{{Rows: [][]string{
			itemHeader,
			{"2", "ルーター設定", "1", "台", "15,000", "15,000"},
		}}}},
	}}

	doc, err := testParser().Parse(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, doc.LineItems, 2)
	assert.Equal(t, "サーバー保守", doc.LineItems[0].Name)
	assert.Equal(t, "ルーター設定", doc.LineItems[1].Name)
}

func TestParse_SparseDocumentIsValid(t *testing.T) {
	src := stubSource{pages: []Page{{Lines: []string{"ご請求書"}}}}

	doc, err := testParser().Parse(context.Background(), src)
	require.NoError(t, err)

	assert.Empty(t, doc.CustomerName)
	assert.Empty(t, doc.Address)
	assert.Empty(t, doc.LineItems)
}

func TestParse_SourceFailureIsUnreadable(t *testing.T) {
	src := stubSource{err: errors.New("encrypted document")}

	_, err := testParser().Parse(context.Background(), src)
	assert.ErrorIs(t, err, ErrDocumentUnreadable)
}
