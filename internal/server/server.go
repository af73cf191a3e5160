// Package server exposes the back-office HTTP API.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/estimates"
	"github.com/FACorreiaa/quote-desk/internal/domain/importer"
	"github.com/FACorreiaa/quote-desk/internal/domain/pricing"
	"github.com/FACorreiaa/quote-desk/pkg/config"
	"github.com/FACorreiaa/quote-desk/pkg/storage"
)

// Catalog is the catalog surface the handlers need: reads plus the
// distance-pricing assignment writes.
type Catalog interface {
	ListCustomers(ctx context.Context) ([]catalog.Customer, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*catalog.Customer, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	SetProductDistanceCoefficient(ctx context.Context, id uuid.UUID, adjustmentType string, coefficient float64) error
	SetCategoryDistanceCoefficient(ctx context.Context, category, adjustmentType string, coefficient float64) (int64, error)
}

// ImportRunner runs a batch of quotation documents.
type ImportRunner interface {
	ImportAll(ctx context.Context, paths []string) (*importer.ImportReport, error)
}

// EstimateBuilder prices and persists new estimates.
type EstimateBuilder interface {
	Build(ctx context.Context, customerID uuid.UUID, items []estimates.ItemRequest, salesPerson, notes string) (*estimates.Estimate, error)
}

// EstimateStore reads and updates stored estimates.
type EstimateStore interface {
	Get(ctx context.Context, id uuid.UUID) (*estimates.Estimate, error)
	List(ctx context.Context) ([]estimates.Estimate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Uploader stores incoming quotation files.
type Uploader interface {
	Save(filename string, r io.Reader) (*storage.FileInfo, error)
}

// ProductSearcher serves full-text product search.
type ProductSearcher interface {
	Search(query string, limit int) ([]catalog.ProductSearchResult, error)
}

// PricePredictor prices one item for a given distance.
type PricePredictor interface {
	Predict(ctx context.Context, name string, quantity int64, distanceKm float64) (*pricing.Prediction, error)
}

// GeoRefresher recomputes missing customer coordinates.
type GeoRefresher interface {
	RefreshMissing(ctx context.Context) (int, error)
}

// Server wires the HTTP API together.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	catalog   Catalog
	importer  ImportRunner
	builder   EstimateBuilder
	estimates EstimateStore
	uploads   Uploader
	search    ProductSearcher
	predictor PricePredictor
	refresher GeoRefresher
}

// New creates the API server.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	cat Catalog,
	imp ImportRunner,
	builder EstimateBuilder,
	est EstimateStore,
	uploads Uploader,
	search ProductSearcher,
	predictor PricePredictor,
	refresher GeoRefresher,
) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		catalog:   cat,
		importer:  imp,
		builder:   builder,
		estimates: est,
		uploads:   uploads,
		search:    search,
		predictor: predictor,
		refresher: refresher,
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.logger))
	r.Use(rateLimit(rate.NewLimiter(
		rate.Limit(s.cfg.Server.RateLimitPerSecond),
		s.cfg.Server.RateLimitBurst,
	)))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/v1/auth/token", s.handleIssueToken)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/v1/imports", s.handleImportUpload)
		r.Post("/v1/imports/batch", s.handleImportBatch)

		r.Get("/v1/customers", s.handleListCustomers)
		r.Get("/v1/customers/duplicates", s.handleCustomerDuplicates)
		r.Get("/v1/customers/export", s.handleExportCustomers)
		r.Post("/v1/customers/refresh-distances", s.handleRefreshDistances)

		r.Get("/v1/products", s.handleListProducts)
		r.Get("/v1/products/search", s.handleSearchProducts)
		r.Get("/v1/products/export", s.handleExportProducts)

		r.Post("/v1/pricing/predict", s.handlePredictPrice)
		r.Post("/v1/pricing/distance", s.handleSetDistancePricing)

		r.Post("/v1/estimates", s.handleCreateEstimate)
		r.Get("/v1/estimates", s.handleListEstimates)
		r.Get("/v1/estimates/{id}", s.handleGetEstimate)
		r.Get("/v1/estimates/{id}/excel", s.handleEstimateExcel)
		r.Patch("/v1/estimates/{id}/status", s.handleUpdateEstimateStatus)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}
