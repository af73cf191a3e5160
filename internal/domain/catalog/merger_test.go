package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	customers map[string]*Customer
	products  map[string]*Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]*Customer{},
		products:  map[string]*Product{},
	}
}

func (s *fakeStore) FindCustomerByName(_ context.Context, name string) (*Customer, error) {
	c, ok := s.customers[name]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *fakeStore) InsertCustomer(_ context.Context, c *Customer) error {
	c.ID = uuid.New()
	s.customers[c.CompanyName] = c
	return nil
}

func (s *fakeStore) FindProductByName(_ context.Context, name string) (*Product, error) {
	p, ok := s.products[name]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) InsertProduct(_ context.Context, p *Product) error {
	p.ID = uuid.New()
	s.products[p.ProductName] = p
	return nil
}

func (s *fakeStore) UpdateProductPriceAndUnit(_ context.Context, id uuid.UUID, price int64, unit string) error {
	for _, p := range s.products {
		if p.ID == id {
			p.BasePrice = price
			p.Unit = unit
			return nil
		}
	}
	return ErrNotFound
}

type staticClassifier string

func (c staticClassifier) Classify(string) string { return string(c) }

func newTestMerger(store Store) *Merger {
	return NewMerger(store, staticClassifier("サービス"), slog.New(slog.DiscardHandler))
}

func TestMergeCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown customer is created", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		outcome, err := m.MergeCustomer(ctx, "株式会社サンプル商事", "東京都千代田区1-1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)

		c := store.customers["株式会社サンプル商事"]
		require.NotNil(t, c)
		require.NotNil(t, c.Address)
		assert.Equal(t, "東京都千代田区1-1", *c.Address)
	})

	t.Run("existing customer wins", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		addr := "大阪府大阪市1-1"
		store.customers["株式会社サンプル商事"] = &Customer{
			ID:          uuid.New(),
			CompanyName: "株式会社サンプル商事",
			Address:     &addr,
		}

		outcome, err := m.MergeCustomer(ctx, "株式会社サンプル商事", "東京都千代田区1-1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeSkipped, outcome)
		assert.Equal(t, "大阪府大阪市1-1", *store.customers["株式会社サンプル商事"].Address)
	})

	t.Run("blank name is a no-op", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		outcome, err := m.MergeCustomer(ctx, "  ", "東京都千代田区1-1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeNone, outcome)
		assert.Empty(t, store.customers)
	})
}

func TestMergeProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown product is created with category", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		outcome, err := m.MergeProduct(ctx, "定期清掃プラン", "式", 30000)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)

		p := store.products["定期清掃プラン"]
		require.NotNil(t, p)
		assert.Equal(t, int64(30000), p.BasePrice)
		assert.Equal(t, "式", p.Unit)
		assert.Equal(t, "サービス", p.ProductCategory)
	})

	t.Run("higher price updates price and unit together", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		store.products["モニター"] = &Product{
			ID: uuid.New(), ProductName: "モニター", BasePrice: 20000, Unit: "個",
		}

		outcome, err := m.MergeProduct(ctx, "モニター", "台", 25000)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, outcome)
		assert.Equal(t, int64(25000), store.products["モニター"].BasePrice)
		assert.Equal(t, "台", store.products["モニター"].Unit)
	})

	t.Run("equal or lower price is skipped", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		store.products["モニター"] = &Product{
			ID: uuid.New(), ProductName: "モニター", BasePrice: 20000, Unit: "台",
		}

		for _, price := range []int64{20000, 15000} {
			outcome, err := m.MergeProduct(ctx, "モニター", "個", price)
			require.NoError(t, err)
			assert.Equal(t, OutcomeSkipped, outcome)
		}
		assert.Equal(t, int64(20000), store.products["モニター"].BasePrice)
		assert.Equal(t, "台", store.products["モニター"].Unit)
	})

	t.Run("price converges to maximum regardless of order", func(t *testing.T) {
		prices := [][]int64{{10000, 25000, 18000}, {25000, 10000, 18000}, {18000, 10000, 25000}}

		for _, seq := range prices {
			store := newFakeStore()
			m := newTestMerger(store)
			for _, price := range seq {
				_, err := m.MergeProduct(ctx, "サーバー保守", "式", price)
				require.NoError(t, err)
			}
			assert.Equal(t, int64(25000), store.products["サーバー保守"].BasePrice)
		}
	})

	t.Run("non positive price is a no-op", func(t *testing.T) {
		store := newFakeStore()
		m := newTestMerger(store)

		for _, price := range []int64{0, -100} {
			outcome, err := m.MergeProduct(ctx, "無償サポート", "式", price)
			require.NoError(t, err)
			assert.Equal(t, OutcomeNone, outcome)
		}
		assert.Empty(t, store.products)
	})
}
