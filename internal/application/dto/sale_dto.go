package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea solicitada; QuantitySold 0 se interpreta como 1.
type SaleItemRequest struct {
	UID          string `json:"uid" validate:"required"`
	QuantitySold int    `json:"quantity_sold" validate:"min=0"`
	DeviceType   string `json:"device_type"`
}

// RecordSaleRequest cuerpo de POST /api/sales.
type RecordSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,max=50"`
	Location      string            `json:"location" validate:"omitempty,max=200"`
}

// SaleItemResponse foto de la línea vendida.
type SaleItemResponse struct {
	UID          string          `json:"uid"`
	DeviceType   string          `json:"device_type"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	QuantitySold int             `json:"quantity_sold"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Discount     decimal.Decimal `json:"discount"`
}

// SaleResponse venta persistida.
type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	PaymentMethod string             `json:"payment_method"`
	Location      string             `json:"location"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse página del libro de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
