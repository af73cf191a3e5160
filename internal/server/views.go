package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/quote-desk/internal/domain/catalog"
	"github.com/FACorreiaa/quote-desk/internal/domain/estimates"
)

type customerView struct {
	ID            uuid.UUID `json:"id"`
	CompanyName   string    `json:"company_name"`
	PostalCode    *string   `json:"postal_code,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	DistanceKm    *float64  `json:"distance_km,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCustomerViews(customers []catalog.Customer) []customerView {
	views := make([]customerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, customerView{
			ID:            c.ID,
			CompanyName:   c.CompanyName,
			PostalCode:    c.PostalCode,
			Address:       c.Address,
			Latitude:      c.Latitude,
			Longitude:     c.Longitude,
			DistanceKm:    c.DistanceKm,
			Phone:         c.Phone,
			Email:         c.Email,
			ContactPerson: c.ContactPerson,
			CreatedAt:     c.CreatedAt,
		})
	}
	return views
}

type productView struct {
	ID                  uuid.UUID `json:"id"`
	ProductName         string    `json:"product_name"`
	ProductCategory     string    `json:"product_category"`
	BasePrice           int64     `json:"base_price"`
	Unit                string    `json:"unit"`
	DistanceCoefficient float64   `json:"distance_coefficient"`
	PriceAdjustmentType string    `json:"price_adjustment_type"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func toProductViews(products []catalog.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:                  p.ID,
			ProductName:         p.ProductName,
			ProductCategory:     p.ProductCategory,
			BasePrice:           p.BasePrice,
			Unit:                p.Unit,
			DistanceCoefficient: p.DistanceCoefficient,
			PriceAdjustmentType: p.PriceAdjustmentType,
			UpdatedAt:           p.UpdatedAt,
		})
	}
	return views
}

type estimateDetailView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int32     `json:"quantity"`
	Unit        string    `json:"unit"`
	UnitPrice   int64     `json:"unit_price"`
	Amount      int64     `json:"amount"`
}

type estimateView struct {
	ID           uuid.UUID            `json:"id"`
	CustomerID   uuid.UUID            `json:"customer_id"`
	EstimateDate string               `json:"estimate_date"`
	TotalAmount  int64                `json:"total_amount"`
	Status       string               `json:"status"`
	SalesPerson  *string              `json:"sales_person,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Details      []estimateDetailView `json:"details,omitempty"`
}

func toEstimateView(e *estimates.Estimate) estimateView {
	v := estimateView{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		EstimateDate: e.EstimateDate.Format("2006-01-02"),
		TotalAmount:  e.TotalAmount,
		Status:       e.Status,
		SalesPerson:  e.SalesPerson,
		Notes:        e.Notes,
	}
	for _, d := range e.Details {
		v.Details = append(v.Details, estimateDetailView{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			Unit:        d.Unit,
			UnitPrice:   d.UnitPrice,
			Amount:      d.Amount,
		})
	}
	return v
}
