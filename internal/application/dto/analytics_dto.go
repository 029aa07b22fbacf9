package dto

import "github.com/shopspring/decimal"

// ── Tiempo real ───────────────────────────────────────────────────────────────

// WindowStatsDTO totales de una ventana.
type WindowStatsDTO struct {
	TotalSales     int             `json:"total_sales"`
	TotalItemsSold int             `json:"total_items_sold"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// RealtimeAnalyticsDTO respuesta de GET /api/sales/analytics/realtime.
type RealtimeAnalyticsDTO struct {
	LastHour    WindowStatsDTO `json:"last_hour"`
	Last6Hours  WindowStatsDTO `json:"last_6_hours"`
	Last24Hours WindowStatsDTO `json:"last_24_hours"`
}

// ── Ingresos y ganancias ──────────────────────────────────────────────────────

// NamedValueDTO elemento de la distribución de ingresos.
type NamedValueDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// TotalProfitDTO respuesta de /total-profit.
type TotalProfitDTO struct {
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// AvgBasketDTO respuesta de /avg-basket-value.
type AvgBasketDTO struct {
	AvgBasketValue decimal.Decimal `json:"avg_basket_value"`
}

// ProfitMakerDTO elemento del ranking de ganancia.
type ProfitMakerDTO struct {
	Name   string          `json:"name"`
	Profit decimal.Decimal `json:"profit"`
}

// TopProfitMakersDTO respuesta de /top-profit-makers (máx 10).
type TopProfitMakersDTO struct {
	Top []ProfitMakerDTO `json:"top"`
}

// TopSellerDTO elemento del ranking de unidades.
type TopSellerDTO struct {
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
}

// TopSellersDTO respuesta de /top-sellers (máx 10).
type TopSellersDTO struct {
	Top []TopSellerDTO `json:"top"`
}

// ── Correlación ───────────────────────────────────────────────────────────────

// CorrelationRowDTO porcentaje de ventas del tipo que incluyen cada accesorio.
type CorrelationRowDTO struct {
	Device    string `json:"device"`
	Charger   int    `json:"charger"`
	Earphones int    `json:"earphones"`
	Mouse     int    `json:"mouse"`
	Cover     int    `json:"cover"`
	Powerbank int    `json:"powerbank"`
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardDTO resumen combinado para la pantalla del dueño.
type DashboardDTO struct {
	Realtime       RealtimeAnalyticsDTO `json:"realtime"`
	TotalProfit    decimal.Decimal      `json:"total_profit"`
	AvgBasketValue decimal.Decimal      `json:"avg_basket_value"`
	TopSellers     []TopSellerDTO       `json:"top_sellers"`
	SalesCount     int                  `json:"sales_count"`
}
