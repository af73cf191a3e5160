package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/estimates"
	"github.com/FACorreiaa/quote-desk/internal/domain/export"
	"github.com/FACorreiaa/quote-desk/internal/domain/pricing"
)

// maxUploadSize caps a single quotation upload at 32 MiB.
const maxUploadSize = 32 << 20

// handleImportUpload accepts multipart PDF uploads, stores them and
// runs the import pipeline over the batch.
func (s *Server) handleImportUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var paths []string
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("open %s: %s", fh.Filename, err))
			return
		}
		info, err := s.uploads.Save(fh.Filename, f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("store %s: %s", fh.Filename, err))
			return
		}
		paths = append(paths, info.Path)
	}

	report, err := s.importer.ImportAll(r.Context(), paths)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

type batchImportRequest struct {
	Paths []string `json:"paths"`
}

// handleImportBatch imports documents already on the server's disk,
// for the watched-directory workflow.
func (s *Server) handleImportBatch(w http.ResponseWriter, r *http.Request) {
	var req batchImportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Paths) == 0 {
		respondError(w, http.StatusBadRequest, "paths is required")
		return
	}

	report, err := s.importer.ImportAll(r.Context(), req.Paths)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.catalog.ListCustomers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toCustomerViews(customers))
}

func (s *Server) handleCustomerDuplicates(w http.ResponseWriter, r *http.Request) {
	maxDistance := 1
	if v := r.URL.Query().Get("max_distance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "max_distance must be a non-negative integer")
			return
		}
		maxDistance = n
	}

	customers, err := s.catalog.ListCustomers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, catalog.FindDuplicateCustomers(customers, maxDistance))
}

func (s *Server) handleExportCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.catalog.ListCustomers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="customers.csv"`)
	if err := export.WriteCustomersCSV(w, customers); err != nil {
		s.logger.Error("customer csv export failed", "error", err)
	}
}

func (s *Server) handleRefreshDistances(w http.ResponseWriter, r *http.Request) {
	updated, err := s.refresher.RefreshMissing(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toProductViews(products))
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := s.search.Search(query, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := export.WriteProductsCSV(w, products); err != nil {
		s.logger.Error("product csv export failed", "error", err)
	}
}

type predictRequest struct {
	ProductName string     `json:"product_name"`
	Quantity    int64      `json:"quantity"`
	CustomerID  *uuid.UUID `json:"customer_id"`
}

// handlePredictPrice prices an item, applying the customer's office
// distance when a customer is given.
func (s *Server) handlePredictPrice(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductName == "" {
		respondError(w, http.StatusBadRequest, "product_name is required")
		return
	}

	distanceKm := 0.0
	if req.CustomerID != nil {
		customer, err := s.catalog.GetCustomerByID(r.Context(), *req.CustomerID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				respondError(w, http.StatusNotFound, "customer not found")
				return
			}
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if customer.DistanceKm != nil {
			distanceKm = *customer.DistanceKm
		}
	}

	pred, err := s.predictor.Predict(r.Context(), req.ProductName, req.Quantity, distanceKm)
	if err != nil {
		if errors.Is(err, pricing.ErrNoCandidate) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, pred)
}

type distancePricingRequest struct {
	ProductID      *uuid.UUID `json:"product_id"`
	Category       string     `json:"category"`
	AdjustmentType string     `json:"adjustment_type"`
	Coefficient    float64    `json:"coefficient"`
}

// handleSetDistancePricing assigns a distance adjustment to one
// product or to every product in a category.
func (s *Server) handleSetDistancePricing(w http.ResponseWriter, r *http.Request) {
	var req distancePricingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch pricing.AdjustmentKind(req.AdjustmentType) {
	case pricing.KindFixed, pricing.KindProportional, pricing.KindDiscount:
	default:
		respondError(w, http.StatusBadRequest, "unknown adjustment_type")
		return
	}
	if req.Coefficient < 0 {
		respondError(w, http.StatusBadRequest, "coefficient must be non-negative")
		return
	}

	switch {
	case req.ProductID != nil:
		err := s.catalog.SetProductDistanceCoefficient(r.Context(), *req.ProductID, req.AdjustmentType, req.Coefficient)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				respondError(w, http.StatusNotFound, "product not found")
				return
			}
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]int64{"updated": 1})
	case req.Category != "":
		updated, err := s.catalog.SetCategoryDistanceCoefficient(r.Context(), req.Category, req.AdjustmentType, req.Coefficient)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
	default:
		respondError(w, http.StatusBadRequest, "product_id or category is required")
	}
}

type createEstimateRequest struct {
	CustomerID  uuid.UUID               `json:"customer_id"`
	Items       []estimates.ItemRequest `json:"items"`
	SalesPerson string                  `json:"sales_person"`
	Notes       string                  `json:"notes"`
}

func (s *Server) handleCreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req createEstimateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerID == uuid.Nil || len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "customer_id and items are required")
		return
	}

	e, err := s.builder.Build(r.Context(), req.CustomerID, req.Items, req.SalesPerson, req.Notes)
	if err != nil {
		if errors.Is(err, pricing.ErrNoCandidate) || errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toEstimateView(e))
}

func (s *Server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	list, err := s.estimates.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]estimateView, 0, len(list))
	for i := range list {
		views = append(views, toEstimateView(&list[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toEstimateView(e))
}

// handleEstimateExcel streams the estimate as a 見積書 workbook.
func (s *Server) handleEstimateExcel(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}

	customer, err := s.catalog.GetCustomerByID(r.Context(), e.CustomerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="estimate_%s.xlsx"`, e.ID))
	if err := estimates.RenderExcel(w, e, customer); err != nil {
		s.logger.Error("estimate excel render failed", "error", err)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateEstimateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid estimate id")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Status {
	case estimates.StatusDraft, estimates.StatusSent, estimates.StatusAccepted, estimates.StatusRejected:
	default:
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	if err := s.estimates.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, estimates.ErrNotFound) {
			respondError(w, http.StatusNotFound, "estimate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (s *Server) loadEstimate(w http.ResponseWriter, r *http.Request) (*estimates.Estimate, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid estimate id")
		return nil, false
	}

	e, err := s.estimates.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, estimates.ErrNotFound) {
			respondError(w, http.StatusNotFound, "estimate not found")
			return nil, false
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return e, true
}
