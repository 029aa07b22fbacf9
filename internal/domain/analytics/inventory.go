package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// TurnaroundLimit cantidad de dispositivos del reporte de rotación.
const TurnaroundLimit = 5

// Turnaround es la relación inventario/vendido de un dispositivo; menor rota más rápido.
type Turnaround struct {
	UID          string
	Name         string
	Type         entity.DeviceType
	InventoryQty int
	SoldQty      int
	Ratio        float64
}

// TurnaroundRatios calcula la relación para los dispositivos con ventas, en orden ascendente.
func TurnaroundRatios(devices []*entity.Device) []Turnaround {
	out := make([]Turnaround, 0, len(devices))
	for _, d := range devices {
		if d.SoldQty <= 0 {
			continue
		}
		out = append(out, Turnaround{
			UID:          d.UID,
			Name:         d.Name,
			Type:         d.Type,
			InventoryQty: d.InventoryQty,
			SoldQty:      d.SoldQty,
			Ratio:        float64(d.InventoryQty) / float64(d.SoldQty),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio != out[j].Ratio {
			return out[i].Ratio < out[j].Ratio
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// InventoryStats resumen de un grupo de dispositivos.
type InventoryStats struct {
	Count          int
	TotalInventory int
	TotalSold      int
	AvgDiscount    decimal.Decimal
	AvgPrice       decimal.Decimal
	StockValue     decimal.Decimal // Σ costo * inventario
}

// SummarizeInventory agrega existencias, vendidos y promedios de descuento y precio final.
func SummarizeInventory(devices []*entity.Device) InventoryStats {
	st := InventoryStats{AvgDiscount: decimal.Zero, AvgPrice: decimal.Zero, StockValue: decimal.Zero}
	if len(devices) == 0 {
		return st
	}
	discounts, prices := decimal.Zero, decimal.Zero
	for _, d := range devices {
		st.Count++
		st.TotalInventory += d.InventoryQty
		st.TotalSold += d.SoldQty
		discounts = discounts.Add(d.Discount)
		prices = prices.Add(d.UnitPrice())
		st.StockValue = st.StockValue.Add(d.CostPrice.Mul(decimal.NewFromInt(int64(d.InventoryQty))))
	}
	n := decimal.NewFromInt(int64(st.Count))
	st.AvgDiscount = discounts.Div(n)
	st.AvgPrice = prices.Div(n)
	return st
}

// CostIndex indexa el costo actual por UID para el cálculo de ganancias.
func CostIndex(devices []*entity.Device) map[string]decimal.Decimal {
	idx := make(map[string]decimal.Decimal, len(devices))
	for _, d := range devices {
		idx[d.UID] = d.CostPrice
	}
	return idx
}
