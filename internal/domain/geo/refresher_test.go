package geo

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
)

type fakeGeoStore struct {
	missing []catalog.Customer
	updates map[uuid.UUID]float64
}

func (s *fakeGeoStore) ListCustomersMissingGeo(context.Context) ([]catalog.Customer, error) {
	return s.missing, nil
}

func (s *fakeGeoStore) UpdateCustomerGeo(_ context.Context, id uuid.UUID, _, _, km float64) error {
	s.updates[id] = km
	return nil
}

type fakeGeocoder struct {
	coords map[string]Coordinates
}

func (g fakeGeocoder) Geocode(_ context.Context, address string) (Coordinates, error) {
	if c, ok := g.coords[address]; ok {
		return c, nil
	}
	return Coordinates{}, errors.New("lookup failed")
}

func TestRefreshMissing(t *testing.T) {
	addrA := "東京都新宿区西新宿2-8-1"
	addrB := "未知の住所"
	a := catalog.Customer{ID: uuid.New(), CompanyName: "株式会社A", Address: &addrA}
	b := catalog.Customer{ID: uuid.New(), CompanyName: "株式会社B", Address: &addrB}
	noAddr := catalog.Customer{ID: uuid.New(), CompanyName: "株式会社C"}

	store := &fakeGeoStore{
		missing: []catalog.Customer{a, b, noAddr},
		updates: map[uuid.UUID]float64{},
	}
	geocoder := fakeGeocoder{coords: map[string]Coordinates{
		addrA: {Latitude: 35.6896, Longitude: 139.6917},
	}}

	base := Coordinates{Latitude: 35.6812, Longitude: 139.7671}
	r := NewRefresher(store, geocoder, base, slog.New(slog.DiscardHandler))

	updated, err := r.RefreshMissing(context.Background())
	require.NoError(t, err)

	// only the geocodable customer with an address is updated
	assert.Equal(t, 1, updated)
	require.Contains(t, store.updates, a.ID)
	assert.InDelta(t, 6.9, store.updates[a.ID], 0.5)
	assert.NotContains(t, store.updates, b.ID)
	assert.NotContains(t, store.updates, noAddr.ID)
}
