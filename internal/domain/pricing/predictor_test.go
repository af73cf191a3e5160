package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
)

type fakeProducts struct {
	products []catalog.Product
}

func (f fakeProducts) FindProductByName(_ context.Context, name string) (*catalog.Product, error) {
	for i := range f.products {
		if f.products[i].ProductName == name {
			return &f.products[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f fakeProducts) ListProducts(context.Context) ([]catalog.Product, error) {
	return f.products, nil
}

func testCatalog() fakeProducts {
	return fakeProducts{products: []catalog.Product{
		{
			ID: uuid.New(), ProductName: "エアコンクリーニング", Unit: "台",
			BasePrice: 12500, PriceAdjustmentType: "distance_proportional", DistanceCoefficient: 0.002,
		},
		{
			ID: uuid.New(), ProductName: "定期清掃プラン", Unit: "式",
			BasePrice: 30000, PriceAdjustmentType: "fixed",
		},
	}}
}

func TestPredict_ExactMatch(t *testing.T) {
	p := NewPredictor(testCatalog())

	pred, err := p.Predict(context.Background(), "定期清掃プラン", 2, 10)
	require.NoError(t, err)

	assert.True(t, pred.Exact)
	assert.Equal(t, int64(30000), pred.UnitPrice)
	assert.Equal(t, int64(60000), pred.Total)
	assert.Equal(t, "式", pred.Unit)
}

func TestPredict_AppliesDistanceAdjustment(t *testing.T) {
	p := NewPredictor(testCatalog())

	// 12500 + trunc(12500 * 0.002 * 20) = 12500 + 500
	pred, err := p.Predict(context.Background(), "エアコンクリーニング", 1, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(13000), pred.UnitPrice)
}

func TestPredict_FuzzyFallback(t *testing.T) {
	p := NewPredictor(testCatalog())

	pred, err := p.Predict(context.Background(), "エアコンクリーニング作業", 1, 0)
	require.NoError(t, err)

	assert.False(t, pred.Exact)
	assert.Equal(t, "エアコンクリーニング", pred.Matched)
	assert.Equal(t, int64(12500), pred.UnitPrice)
}

func TestPredict_NoCandidate(t *testing.T) {
	p := NewPredictor(testCatalog())

	_, err := p.Predict(context.Background(), "全く関係のない商品名", 1, 0)
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestPredict_DefaultsQuantityToOne(t *testing.T) {
	p := NewPredictor(testCatalog())

	pred, err := p.Predict(context.Background(), "定期清掃プラン", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pred.Quantity)
	assert.Equal(t, int64(30000), pred.Total)
}
