// Package e2etest runs quotation pages through the whole pipeline:
// extraction, catalog merge, price prediction and estimate rendering.
package e2etest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/categorization"
	"github.com/FACorreiaa/quote-desk/internal/domain/estimates"
	"github.com/FACorreiaa/quote-desk/internal/domain/importer/parser"
	"github.com/FACorreiaa/quote-desk/internal/domain/pricing"
)

type memStore struct {
	customers map[string]*catalog.Customer
	products  map[string]*catalog.Product
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[string]*catalog.Customer{},
		products:  map[string]*catalog.Product{},
	}
}

func (s *memStore) FindCustomerByName(_ context.Context, name string) (*catalog.Customer, error) {
	if c, ok := s.customers[name]; ok {
		return c, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *memStore) InsertCustomer(_ context.Context, c *catalog.Customer) error {
	c.ID = uuid.New()
	s.customers[c.CompanyName] = c
	return nil
}

func (s *memStore) FindProductByName(_ context.Context, name string) (*catalog.Product, error) {
	if p, ok := s.products[name]; ok {
		return p, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *memStore) InsertProduct(_ context.Context, p *catalog.Product) error {
	p.ID = uuid.New()
	s.products[p.ProductName] = p
	return nil
}

func (s *memStore) UpdateProductPriceAndUnit(_ context.Context, id uuid.UUID, price int64, unit string) error {
	for _, p := range s.products {
		if p.ID == id {
			p.BasePrice = price
			p.Unit = unit
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *memStore) ListProducts(context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

type pageSource []parser.Page

func (p pageSource) Pages(context.Context) ([]parser.Page, error) { return p, nil }

func quotationPages(company, address string, items ...[]string) pageSource {
	page := parser.Page{
		Lines: []string{"宛先", company, "作業場所：" + address},
	}
	if len(items) > 0 {
		rows := [][]string{{"項目", "品名・仕様", "数量", "単位", "単価", "金額"}}
		rows = append(rows, items...)
		page.Tables = []parser.Table{{Rows: rows}}
	}
	return pageSource{page}
}

// TestPipeline_QuotationToEstimate drives one quotation through
// extraction and merge, then prices a follow-up estimate against the
// catalog it produced and renders it as a workbook.
func TestPipeline_QuotationToEstimate(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	store := newMemStore()

	p := parser.New(logger)
	doc, err := p.Parse(ctx, quotationPages("株式会社サンプル商事", "東京都港区芝公園1-2-3",
		[]string{"1", "定期清掃", "1", "式", "30,000", "30,000"},
		[]string{"2", "エアコンクリーニング", "2", "台", "￥12,500", "￥25,000"},
	))
	require.NoError(t, err)
	assert.Equal(t, "株式会社サンプル商事", doc.CustomerName)
	require.Len(t, doc.LineItems, 2)

	merger := catalog.NewMerger(store, categorization.NewDefaultClassifier(), logger)
	_, err = merger.MergeCustomer(ctx, doc.CustomerName, doc.Address)
	require.NoError(t, err)
	for _, item := range doc.LineItems {
		_, err := merger.MergeProduct(ctx, item.Name, item.Unit, item.BasePrice)
		require.NoError(t, err)
	}

	require.Contains(t, store.products, "エアコンクリーニング")
	assert.Equal(t, "家電", store.products["エアコンクリーニング"].ProductCategory)
	assert.Equal(t, "その他", store.products["定期清掃"].ProductCategory)

	predictor := pricing.NewPredictor(store)
	pred, err := predictor.Predict(ctx, "エアコンクリーニング", 3, 0)
	require.NoError(t, err)
	assert.True(t, pred.Exact)
	assert.Equal(t, int64(12500), pred.UnitPrice)
	assert.Equal(t, int64(37500), pred.Total)

	// A slightly different spelling still resolves to the catalog row.
	fuzzyPred, err := predictor.Predict(ctx, "エアコンクリーニング作業", 1, 0)
	require.NoError(t, err)
	assert.False(t, fuzzyPred.Exact)
	assert.Equal(t, "エアコンクリーニング", fuzzyPred.Matched)

	customer := store.customers["株式会社サンプル商事"]
	estimate := &estimates.Estimate{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		EstimateDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		TotalAmount:  pred.Total,
		Status:       estimates.StatusDraft,
		Details: []estimates.Detail{{
			ProductID:   pred.ProductID,
			ProductName: pred.Matched,
			Quantity:    int32(pred.Quantity),
			Unit:        pred.Unit,
			UnitPrice:   pred.UnitPrice,
			Amount:      pred.Total,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, estimates.RenderExcel(&buf, estimate, customer))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()
	name, err := wb.GetCellValue("見積書", "B9")
	require.NoError(t, err)
	assert.Equal(t, "エアコンクリーニング", name)
}

// TestPipeline_RepeatedImportsConvergeToMaxPrice feeds many generated
// quotations for the same items in random order and checks the catalog
// ends at each item's highest observed price.
func TestPipeline_RepeatedImportsConvergeToMaxPrice(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	store := newMemStore()
	faker := gofakeit.New(20260831)

	names := []string{"定期清掃", "窓ガラス清掃", "ワックス掛け", "害虫駆除"}
	maxSeen := map[string]int64{}

	var docs []pageSource
	for i := 0; i < 50; i++ {
		var items [][]string
		for _, name := range names {
			price := int64(faker.Number(1_000, 99_999))
			if price > maxSeen[name] {
				maxSeen[name] = price
			}
			items = append(items, []string{"1", name, "1", "式", fmt.Sprintf("%d", price), ""})
		}
		// The customer locator keys on legal-entity suffixes, and the
		// index keeps generated names unique across documents.
		company := fmt.Sprintf("%s %d 株式会社", faker.Company(), i)
		docs = append(docs, quotationPages(company, faker.Address().Address, items...))
	}
	rand.New(rand.NewSource(1)).Shuffle(len(docs), func(i, j int) {
		docs[i], docs[j] = docs[j], docs[i]
	})

	p := parser.New(logger)
	merger := catalog.NewMerger(store, categorization.NewDefaultClassifier(), logger)
	for _, src := range docs {
		doc, err := p.Parse(ctx, src)
		require.NoError(t, err)
		_, err = merger.MergeCustomer(ctx, doc.CustomerName, doc.Address)
		require.NoError(t, err)
		for _, item := range doc.LineItems {
			_, err := merger.MergeProduct(ctx, item.Name, item.Unit, item.BasePrice)
			require.NoError(t, err)
		}
	}

	require.Len(t, store.products, len(names))
	for _, name := range names {
		assert.Equal(t, maxSeen[name], store.products[name].BasePrice, name)
	}
	assert.Len(t, store.customers, 50)
}
