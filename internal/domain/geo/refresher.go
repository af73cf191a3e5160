package geo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
)

// CustomerGeoStore is the catalog surface the refresher needs.
type CustomerGeoStore interface {
	ListCustomersMissingGeo(ctx context.Context) ([]catalog.Customer, error)
	UpdateCustomerGeo(ctx context.Context, id uuid.UUID, lat, lon, distanceKm float64) error
}

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// Refresher fills in coordinates and office distance for customers
// that gained an address since the last run. It runs nightly and
// after imports.
type Refresher struct {
	store    CustomerGeoStore
	geocoder Geocoder
	base     Coordinates
	logger   *slog.Logger
}

// NewRefresher creates a refresher measuring distances from base.
func NewRefresher(store CustomerGeoStore, geocoder Geocoder, base Coordinates, logger *slog.Logger) *Refresher {
	return &Refresher{store: store, geocoder: geocoder, base: base, logger: logger}
}

// RefreshMissing geocodes every customer lacking coordinates and
// stores the result. Failures are logged per customer and do not stop
// the sweep; the count of updated customers is returned.
func (r *Refresher) RefreshMissing(ctx context.Context) (int, error) {
	customers, err := r.store.ListCustomersMissingGeo(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, c := range customers {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if c.Address == nil || *c.Address == "" {
			continue
		}

		coords, err := r.geocoder.Geocode(ctx, *c.Address)
		if err != nil {
			r.logger.Warn("geocoding failed",
				slog.String("company", c.CompanyName),
				slog.Any("error", err),
			)
			continue
		}

		km := DistanceKm(r.base.Latitude, r.base.Longitude, coords.Latitude, coords.Longitude)
		if err := r.store.UpdateCustomerGeo(ctx, c.ID, coords.Latitude, coords.Longitude, km); err != nil {
			r.logger.Warn("storing coordinates failed",
				slog.String("company", c.CompanyName),
				slog.Any("error", err),
			)
			continue
		}
		updated++
	}

	r.logger.Info("customer distance refresh finished",
		slog.Int("candidates", len(customers)),
		slog.Int("updated", updated),
	)
	return updated, nil
}
