package dto

import "github.com/shopspring/decimal"

// TurnaroundItemDTO relación inventario/vendido de un dispositivo.
type TurnaroundItemDTO struct {
	UID          string  `json:"uid"`
	Name         string  `json:"name"`
	DeviceType   string  `json:"device_type"`
	InventoryQty int     `json:"inventory_qty"`
	SoldQty      int     `json:"sold_qty"`
	Ratio        float64 `json:"turnaround_ratio"`
}

// TurnaroundDTO respuesta de GET /api/inventory/turnaround-times (máx 5).
type TurnaroundDTO struct {
	Turnaround []TurnaroundItemDTO `json:"turnaround"`
}

// InventoryStatsDTO resumen por tipo de dispositivo.
type InventoryStatsDTO struct {
	DeviceType     string          `json:"device_type"`
	Count          int             `json:"count"`
	TotalInventory int             `json:"total_inventory"`
	TotalSold      int             `json:"total_sold"`
	AvgDiscount    decimal.Decimal `json:"avg_discount"`
	AvgPrice       decimal.Decimal `json:"avg_price"`
	StockValue     decimal.Decimal `json:"stock_value"`
}

// InventorySummaryDTO resumen de todos los tipos.
type InventorySummaryDTO struct {
	ByType         []InventoryStatsDTO `json:"by_type"`
	TotalInventory int                 `json:"total_inventory"`
	TotalSold      int                 `json:"total_sold"`
	StockValue     decimal.Decimal     `json:"stock_value"`
}
