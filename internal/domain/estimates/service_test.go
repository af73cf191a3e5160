package estimates

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/pricing"
)

type fakeCustomers struct {
	customer *catalog.Customer
}

func (f fakeCustomers) GetCustomerByID(context.Context, uuid.UUID) (*catalog.Customer, error) {
	return f.customer, nil
}

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

func TestBuild(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	distance := 20.0
	customer := &catalog.Customer{
		ID:          uuid.New(),
		CompanyName: "株式会社サンプル商事",
		DistanceKm:  &distance,
	}
	productID := uuid.New()
	products := fakeProducts{products: []catalog.Product{{
		ID:                  productID,
		ProductName:         "エアコンクリーニング",
		Unit:                "台",
		BasePrice:           12500,
		PriceAdjustmentType: "distance_proportional",
		DistanceCoefficient: 0.002,
	}}}

	estimateID := uuid.New()
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO estimates`).
		WithArgs(customer.ID, pgxmock.AnyArg(), int64(26000), StatusDraft, pgxmock.AnyArg(), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"estimate_id", "created_at", "updated_at"}).
			AddRow(estimateID, now, now))
	mock.ExpectQuery(`INSERT INTO estimate_details`).
		WithArgs(estimateID, productID, int32(2), int64(13000), int64(26000), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"detail_id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	svc := NewService(
		NewRepository(mock),
		fakeCustomers{customer: customer},
		pricing.NewPredictor(products),
		slog.New(slog.DiscardHandler),
	)

	e, err := svc.Build(context.Background(), customer.ID,
		[]ItemRequest{{ProductName: "エアコンクリーニング", Quantity: 2}}, "山田", "")
	require.NoError(t, err)

	// unit price 12500 + trunc(12500 * 0.002 * 20) = 13000
	assert.Equal(t, estimateID, e.ID)
	require.Len(t, e.Details, 1)
	assert.Equal(t, productID, e.Details[0].ProductID)
	assert.Equal(t, int64(13000), e.Details[0].UnitPrice)
	assert.Equal(t, int64(26000), e.Details[0].Amount)
	assert.Equal(t, int64(26000), e.TotalAmount)
	assert.Equal(t, StatusDraft, e.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
