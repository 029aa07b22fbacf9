package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DevicePricing campos de precio e inventario comunes a dispositivos y accesorios.
type DevicePricing struct {
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalesPrice   decimal.Decimal `json:"sales_price"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	Discount     decimal.Decimal `json:"discount"`
	InventoryQty int             `json:"inventory_qty" validate:"min=0"`
	SoldQty      int             `json:"sold_qty" validate:"min=0"`
}

// CreateDeviceRequest alta de un Mobile, Laptop o Tablet.
type CreateDeviceRequest struct {
	UID          string `json:"uid" validate:"omitempty,max=64"`
	Name         string `json:"name" validate:"required,max=200"`
	DeviceType   string `json:"device_type" validate:"required"`
	Manufacturer string `json:"manufacturer" validate:"omitempty,max=200"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	DevicePricing
	Battery    int     `json:"battery" validate:"min=0"`
	RAM        int     `json:"ram" validate:"min=0"`
	Screen     string  `json:"screen"`
	ScreenSize float64 `json:"screen_size" validate:"min=0"`
	Color      string  `json:"color"`

	CameraMP       float64 `json:"camera_mp" validate:"min=0"` // Mobile
	Processor      string  `json:"processor"`                  // Laptop
	HasTouchscreen bool    `json:"has_touchscreen"`            // Laptop
	StylusSupport  bool    `json:"stylus_support"`             // Tablet
}

// CreateAddonRequest alta de un accesorio.
type CreateAddonRequest struct {
	UID          string `json:"uid" validate:"omitempty,max=64"`
	Name         string `json:"name" validate:"required,max=200"`
	Category     string `json:"category" validate:"required"`
	Manufacturer string `json:"manufacturer" validate:"omitempty,max=200"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	Color        string `json:"color"`
	DevicePricing
	Compatibility     []string `json:"compatibility"`
	RelatedDeviceUIDs []string `json:"related_device_uids"`
}

// DeviceListQuery filtros de GET /api/devices.
type DeviceListQuery struct {
	Page         int    `query:"page" validate:"omitempty,min=1"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=100"`
	DeviceType   string `query:"device_type"`
	Manufacturer string `query:"manufacturer"`
}

// Pagination devuelve la página solicitada con defaults aplicados.
func (q DeviceListQuery) Pagination() PageRequest {
	p := PageRequest{Page: q.Page, Limit: q.Limit}
	p.DefaultPage()
	return p
}

// AddonListQuery filtros de GET /api/addons.
type AddonListQuery struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Category string `query:"category"`
}

// Pagination devuelve la página solicitada con defaults aplicados.
func (q AddonListQuery) Pagination() PageRequest {
	p := PageRequest{Page: q.Page, Limit: q.Limit}
	p.DefaultPage()
	return p
}

// DeviceResponse representación pública de un registro del catálogo.
// Los campos de variante se omiten cuando no aplican al tipo.
type DeviceResponse struct {
	UID                string          `json:"uid"`
	Name               string          `json:"name"`
	DeviceType         string          `json:"device_type"`
	Manufacturer       string          `json:"manufacturer,omitempty"`
	Location           string          `json:"location,omitempty"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	SalesPrice         decimal.Decimal `json:"sales_price"`
	FinalPrice         decimal.Decimal `json:"final_price"`
	Discount           decimal.Decimal `json:"discount"`
	InventoryQty       int             `json:"inventory_qty"`
	SoldQty            int             `json:"sold_qty"`
	AlsoBoughtTogether []string        `json:"also_bought_together"`

	Battery    int     `json:"battery,omitempty"`
	RAM        int     `json:"ram,omitempty"`
	Screen     string  `json:"screen,omitempty"`
	ScreenSize float64 `json:"screen_size,omitempty"`
	Color      string  `json:"color,omitempty"`

	CameraMP       *float64 `json:"camera_mp,omitempty"`
	Processor      *string  `json:"processor,omitempty"`
	HasTouchscreen *bool    `json:"has_touchscreen,omitempty"`
	StylusSupport  *bool    `json:"stylus_support,omitempty"`

	Category          string   `json:"category,omitempty"`
	Compatibility     []string `json:"compatibility,omitempty"`
	RelatedDeviceUIDs []string `json:"related_device_uids,omitempty"`
	SoldStandalone    *int     `json:"sold_standalone,omitempty"`
	SoldWithDevice    *int     `json:"sold_with_device,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceListResponse página de catálogo.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// StockAdjustRequest cuerpo de PATCH /{uid}/stock.
type StockAdjustRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Action   string `json:"action" validate:"required,oneof=add subtract"`
}

// StockAdjustResponse resultado del ajuste.
type StockAdjustResponse struct {
	Message         string         `json:"message"`
	UID             string         `json:"uid"`
	NewInventoryQty int            `json:"new_inventory_qty"`
	Device          DeviceResponse `json:"device"`
}
