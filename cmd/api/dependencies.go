package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/categorization"
	"github.com/FACorreiaa/quote-desk/internal/domain/estimates"
	"github.com/FACorreiaa/quote-desk/internal/domain/geo"
	"github.com/FACorreiaa/quote-desk/internal/domain/importer"
	"github.com/FACorreiaa/quote-desk/internal/domain/pricing"
	"github.com/FACorreiaa/quote-desk/internal/server"
	"github.com/FACorreiaa/quote-desk/pkg/config"
	"github.com/FACorreiaa/quote-desk/pkg/cron"
	"github.com/FACorreiaa/quote-desk/pkg/db"
	"github.com/FACorreiaa/quote-desk/pkg/notify"
	"github.com/FACorreiaa/quote-desk/pkg/storage"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	CatalogRepo   *catalog.Repository
	EstimatesRepo *estimates.Repository

	Classifier      *categorization.Classifier
	SearchIndex     *catalog.SearchIndex
	ImportService   *importer.Service
	EstimateService *estimates.Service
	Predictor       *pricing.Predictor
	Refresher       *geo.Refresher
	FileStorage     *storage.LocalStorage
	Scheduler       *cron.Scheduler

	Server *server.Server
}

// InitDependencies initializes all application dependencies.
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := deps.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func (d *Dependencies) initDatabase(ctx context.Context) error {
	database, err := db.New(ctx, db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
	})
	if err != nil {
		return err
	}
	d.DB = database

	if err := db.Migrate(d.Config.Database.DSN()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

func (d *Dependencies) initServices(ctx context.Context) error {
	d.CatalogRepo = catalog.NewRepository(d.DB.Pool)
	d.EstimatesRepo = estimates.NewRepository(d.DB.Pool)
	d.Classifier = categorization.NewDefaultClassifier()

	fileStorage, err := storage.NewLocalStorage(d.Config.Import.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to init file storage: %w", err)
	}
	d.FileStorage = fileStorage

	notifier := notify.NewEmailNotifier(
		d.Config.Notify.ResendAPIKey,
		d.Config.Notify.ReportFrom,
		d.Config.Notify.ReportTo,
		d.Logger,
	)
	d.ImportService = importer.NewService(d.CatalogRepo, d.Classifier, notifier, d.Logger)

	d.Predictor = pricing.NewPredictor(d.CatalogRepo)
	d.EstimateService = estimates.NewService(d.EstimatesRepo, d.CatalogRepo, d.Predictor, d.Logger)

	geocoder := geo.NewClient(d.Config.Geo.GeocodeURL, d.Config.Geo.RatePerSecond)
	d.Refresher = geo.NewRefresher(d.CatalogRepo, geocoder, geo.Coordinates{
		Latitude:  d.Config.Geo.BaseLatitude,
		Longitude: d.Config.Geo.BaseLongitude,
	}, d.Logger)
	d.Scheduler = cron.NewScheduler(d.Refresher, d.Logger)

	searchIndex, err := catalog.NewSearchIndex()
	if err != nil {
		return fmt.Errorf("failed to init search index: %w", err)
	}
	d.SearchIndex = searchIndex
	if err := d.reindexProducts(ctx); err != nil {
		return err
	}

	d.Server = server.New(
		d.Config,
		d.Logger,
		d.CatalogRepo,
		d.ImportService,
		d.EstimateService,
		d.EstimatesRepo,
		d.FileStorage,
		d.SearchIndex,
		d.Predictor,
		d.Refresher,
	)

	d.Logger.Info("services initialized")
	return nil
}

// reindexProducts loads the product master into the search index.
func (d *Dependencies) reindexProducts(ctx context.Context) error {
	products, err := d.CatalogRepo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products for indexing: %w", err)
	}
	if err := d.SearchIndex.IndexProducts(products); err != nil {
		return fmt.Errorf("failed to index products: %w", err)
	}
	d.Logger.Info("product search index built", slog.Int("products", len(products)))
	return nil
}

// Cleanup closes all resources.
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.SearchIndex != nil {
		_ = d.SearchIndex.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
