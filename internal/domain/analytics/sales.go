// Package analytics contiene los cálculos puros sobre el libro de ventas y el catálogo.
// Ninguna función consulta el reloj: reciben now explícito para ser deterministas.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// Ventanas de tiempo reales.
const (
	WindowLastHour  = time.Hour
	Window6Hours    = 6 * time.Hour
	Window24Hours   = 24 * time.Hour
	TopRankingLimit = 10
)

// WindowStats resume las ventas de una ventana.
type WindowStats struct {
	TotalSales     int
	TotalItemsSold int
	TotalRevenue   decimal.Decimal
}

// Realtime agrupa las tres ventanas.
type Realtime struct {
	LastHour    WindowStats
	Last6Hours  WindowStats
	Last24Hours WindowStats
}

// NamedAmount es un par nombre → monto.
type NamedAmount struct {
	Name  string
	Value decimal.Decimal
}

// NamedCount es un par nombre → unidades.
type NamedCount struct {
	Name  string
	Units int
}

// WindowTotals suma las ventas con CreatedAt >= since.
func WindowTotals(sales []*entity.Sale, since time.Time) WindowStats {
	st := WindowStats{TotalRevenue: decimal.Zero}
	for _, s := range sales {
		if s.CreatedAt.Before(since) {
			continue
		}
		st.TotalSales++
		for _, it := range s.Items {
			st.TotalItemsSold += it.QuantitySold
			st.TotalRevenue = st.TotalRevenue.Add(it.TotalPrice)
		}
	}
	return st
}

// RealtimeStats calcula las ventanas de 1h, 6h y 24h respecto a now.
func RealtimeStats(sales []*entity.Sale, now time.Time) Realtime {
	return Realtime{
		LastHour:    WindowTotals(sales, now.Add(-WindowLastHour)),
		Last6Hours:  WindowTotals(sales, now.Add(-Window6Hours)),
		Last24Hours: WindowTotals(sales, now.Add(-Window24Hours)),
	}
}

// RevenueByItem suma total_price por nombre de línea, de mayor a menor.
func RevenueByItem(sales []*entity.Sale) []NamedAmount {
	acc := map[string]decimal.Decimal{}
	for _, s := range sales {
		for _, it := range s.Items {
			acc[it.Name] = acc[it.Name].Add(it.TotalPrice)
		}
	}
	return sortAmounts(acc)
}

// ProfitByItem suma (precio aplicado - costo actual) * cantidad por nombre.
// Las líneas cuyo UID no está en costs se omiten.
func ProfitByItem(sales []*entity.Sale, costs map[string]decimal.Decimal) []NamedAmount {
	acc := map[string]decimal.Decimal{}
	for _, s := range sales {
		for _, it := range s.Items {
			cost, ok := costs[it.UID]
			if !ok {
				continue
			}
			acc[it.Name] = acc[it.Name].Add(lineProfit(it, cost))
		}
	}
	return sortAmounts(acc)
}

// TotalProfit es la suma de la ganancia de todas las líneas con dispositivo conocido.
func TotalProfit(sales []*entity.Sale, costs map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		for _, it := range s.Items {
			if cost, ok := costs[it.UID]; ok {
				total = total.Add(lineProfit(it, cost))
			}
		}
	}
	return total
}

func lineProfit(it entity.SaleItem, cost decimal.Decimal) decimal.Decimal {
	return it.FinalPrice.Sub(cost).Mul(decimal.NewFromInt(int64(it.QuantitySold)))
}

// UnitsByItem suma unidades por nombre, de mayor a menor.
func UnitsByItem(sales []*entity.Sale) []NamedCount {
	acc := map[string]int{}
	for _, s := range sales {
		for _, it := range s.Items {
			acc[it.Name] += it.QuantitySold
		}
	}
	out := make([]NamedCount, 0, len(acc))
	for name, units := range acc {
		out = append(out, NamedCount{Name: name, Units: units})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AverageBasket es el promedio de total_price por venta; 0 sin ventas.
func AverageBasket(sales []*entity.Sale) decimal.Decimal {
	if len(sales) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalPrice)
	}
	return total.Div(decimal.NewFromInt(int64(len(sales))))
}

// Top recorta list a los primeros n elementos.
func Top[T any](list []T, n int) []T {
	if n >= 0 && len(list) > n {
		return list[:n]
	}
	return list
}

func sortAmounts(acc map[string]decimal.Decimal) []NamedAmount {
	out := make([]NamedAmount, 0, len(acc))
	for name, v := range acc {
		out = append(out, NamedAmount{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
