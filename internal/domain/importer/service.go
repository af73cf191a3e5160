// Package importer runs quotation documents through the extraction
// pipeline and merges the results into the catalog.
package importer

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/importer/parser"
	"github.com/FACorreiaa/quote-desk/internal/domain/importer/pdfsource"
)

// TxRunner runs a function inside one database transaction, giving it
// a transaction-scoped catalog store.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(catalog.Store) error) error
}

// SourceOpener turns a file path into a page source. Production uses
// the PDF adapter; tests substitute in-memory sources.
type SourceOpener func(path string) parser.PageSource

// Notifier receives the report after a batch finishes. A nil notifier
// disables reporting.
type Notifier interface {
	SendImportReport(ctx context.Context, report *ImportReport) error
}

// Service imports quotation documents. Each document is parsed and
// merged inside its own transaction, so one bad document never
// touches the catalog or blocks the documents after it.
type Service struct {
	parser     *parser.Parser
	txs        TxRunner
	classifier catalog.Classifier
	openSource SourceOpener
	notifier   Notifier
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewService creates an import service. notifier may be nil.
func NewService(txs TxRunner, classifier catalog.Classifier, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		parser:     parser.New(logger),
		txs:        txs,
		classifier: classifier,
		openSource: func(path string) parser.PageSource { return pdfsource.Open(path) },
		notifier:   notifier,
		logger:     logger,
		tracer:     otel.Tracer("importer"),
	}
}

// ImportAll processes every path and returns the batch report. The
// returned error only reflects infrastructure failures; per-document
// failures land in the report.
func (s *Service) ImportAll(ctx context.Context, paths []string) (*ImportReport, error) {
	ctx, span := s.tracer.Start(ctx, "importer.ImportAll",
		trace.WithAttributes(attribute.Int("documents", len(paths))))
	defer span.End()

	report := &ImportReport{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Attempted++
		if err := s.importOne(ctx, path, report); err != nil {
			report.Errors = append(report.Errors, ImportError{
				File:    path,
				Message: err.Error(),
			})
			documentsTotal.WithLabelValues("failed").Inc()
			s.logger.Error("document import failed",
				slog.String("file", path),
				slog.Any("error", err),
			)
			continue
		}
		report.Succeeded++
		documentsTotal.WithLabelValues("ok").Inc()
	}

	s.logger.Info("import batch finished",
		slog.Int("attempted", report.Attempted),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("errors", len(report.Errors)),
	)

	if s.notifier != nil {
		if err := s.notifier.SendImportReport(ctx, report); err != nil {
			s.logger.Warn("import report notification failed", slog.Any("error", err))
		}
	}
	return report, nil
}

// importOne parses a single document and merges it inside one
// transaction. Tallies reach the report only after the commit, so a
// rolled-back document leaves the counts untouched.
func (s *Service) importOne(ctx context.Context, path string, report *ImportReport) error {
	ctx, span := s.tracer.Start(ctx, "importer.importOne",
		trace.WithAttributes(attribute.String("file", path)))
	defer span.End()

	start := time.Now()
	defer func() { importDuration.Observe(time.Since(start).Seconds()) }()

	doc, err := s.parser.Parse(ctx, s.openSource(path))
	if err != nil {
		return err
	}

	var customers, products OutcomeCounts
	err = s.txs.WithTx(ctx, func(store catalog.Store) error {
		merger := catalog.NewMerger(store, s.classifier, s.logger)

		outcome, err := merger.MergeCustomer(ctx, doc.CustomerName, doc.Address)
		if err != nil {
			return err
		}
		customers.add(outcome)

		for _, item := range doc.LineItems {
			outcome, err := merger.MergeProduct(ctx, item.Name, item.Unit, item.BasePrice)
			if err != nil {
				return err
			}
			products.add(outcome)
		}
		return nil
	})
	if err != nil {
		return err
	}

	report.Customers.merge(customers)
	report.Products.merge(products)
	recordOutcomes("customer", customers)
	recordOutcomes("product", products)
	return nil
}

func recordOutcomes(entity string, c OutcomeCounts) {
	mergeOutcomesTotal.WithLabelValues(entity, string(catalog.OutcomeCreated)).Add(float64(c.Created))
	mergeOutcomesTotal.WithLabelValues(entity, string(catalog.OutcomeUpdated)).Add(float64(c.Updated))
	mergeOutcomesTotal.WithLabelValues(entity, string(catalog.OutcomeSkipped)).Add(float64(c.Skipped))
}
