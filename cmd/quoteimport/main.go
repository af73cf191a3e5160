// Command quoteimport runs the quotation import pipeline over PDFs on
// disk, for cron jobs and one-off backfills.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/categorization"
	"github.com/FACorreiaa/quote-desk/internal/domain/importer"
	"github.com/FACorreiaa/quote-desk/pkg/config"
	"github.com/FACorreiaa/quote-desk/pkg/db"
	"github.com/FACorreiaa/quote-desk/pkg/notify"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger); err != nil {
		logger.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	glob := flag.String("glob", cfg.Import.WatchGlob, "glob pattern of quotation PDFs to import")
	quiet := flag.Bool("quiet", false, "suppress the JSON report on stdout")
	flag.Parse()

	paths, err := filepath.Glob(*glob)
	if err != nil {
		return fmt.Errorf("invalid glob %q: %w", *glob, err)
	}
	if len(paths) == 0 {
		logger.Info("no documents matched", slog.String("glob", *glob))
		return nil
	}

	ctx := context.Background()
	database, err := db.New(ctx, db.Config{
		DSN:             cfg.Database.DSN(),
		MaxConns:        5,
		MaxConnLifetime: 5 * time.Minute,
	})
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(cfg.Database.DSN()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := catalog.NewRepository(database.Pool)
	notifier := notify.NewEmailNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.ReportFrom, cfg.Notify.ReportTo, logger)
	svc := importer.NewService(repo, categorization.NewDefaultClassifier(), notifier, logger)

	report, err := svc.ImportAll(ctx, paths)
	if err != nil {
		return err
	}

	if !*quiet {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(report.Errors), report.Attempted)
	}
	return nil
}
