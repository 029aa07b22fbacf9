package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devicepos-api/internal/application/analytics"
	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/infrastructure/memory"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedSale(t *testing.T, store *memory.Store, ago time.Duration, items ...entity.SaleItem) {
	t.Helper()
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	require.NoError(t, store.Sales().Create(context.Background(), &entity.Sale{
		ID: time.Now().Add(-ago).String(), Items: items, TotalPrice: total,
		PaymentMethod: "Cash", CreatedAt: time.Now().UTC().Add(-ago),
	}))
}

func line(uid, name string, t entity.DeviceType, qty int, price int64) entity.SaleItem {
	return entity.SaleItem{
		UID: uid, Name: name, DeviceType: t, QuantitySold: qty,
		FinalPrice: dec(price), TotalPrice: dec(price * int64(qty)),
	}
}

func seedDevice(t *testing.T, store *memory.Store, d *entity.Device) {
	t.Helper()
	require.NoError(t, store.Devices().Create(context.Background(), d))
}

// ──────────────────────────────────────────────────────────────────────────────
// AnalyticsUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestRealtime_EjemploDeVentanas(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store, 30*time.Minute, line("D1", "iPhone", entity.DeviceTypeMobile, 1, 50))
	seedSale(t, store, 3*time.Hour, line("D1", "iPhone", entity.DeviceTypeMobile, 1, 60))
	seedSale(t, store, 20*time.Hour, line("D1", "iPhone", entity.DeviceTypeMobile, 1, 70))
	seedSale(t, store, 48*time.Hour, line("D1", "iPhone", entity.DeviceTypeMobile, 1, 1000))

	uc := analytics.NewAnalyticsUseCase(store.Sales(), store.Devices())
	rt, err := uc.Realtime(context.Background())
	require.NoError(t, err)

	assert.True(t, rt.LastHour.TotalRevenue.Equal(dec(50)))
	assert.True(t, rt.Last6Hours.TotalRevenue.Equal(dec(110)))
	assert.True(t, rt.Last24Hours.TotalRevenue.Equal(dec(180)))
	assert.Equal(t, 3, rt.Last24Hours.TotalSales)
}

func TestProfitYRankings(t *testing.T) {
	store := memory.NewStore()
	seedDevice(t, store, &entity.Device{UID: "D1", Name: "iPhone", Type: entity.DeviceTypeMobile, CostPrice: dec(60), Variant: entity.MobileSpec{}})
	seedDevice(t, store, &entity.Device{UID: "A1", Name: "Cargador", Type: entity.DeviceTypeAddon, CostPrice: dec(5),
		Variant: entity.AddonSpec{Category: entity.AddonCharger}})

	charger := line("A1", "Cargador", entity.DeviceTypeAddon, 4, 20)
	charger.Category = entity.AddonCharger
	seedSale(t, store, time.Hour, line("D1", "iPhone", entity.DeviceTypeMobile, 2, 100), charger)
	seedSale(t, store, 2*time.Hour, line("GONE", "Borrado", entity.DeviceTypeTablet, 1, 500))

	uc := analytics.NewAnalyticsUseCase(store.Sales(), store.Devices())
	ctx := context.Background()

	profit, err := uc.TotalProfit(ctx)
	require.NoError(t, err)
	assert.True(t, profit.TotalProfit.Equal(dec(140)), "80 del iPhone + 60 del cargador; Borrado se omite")

	makers, err := uc.TopProfitMakers(ctx)
	require.NoError(t, err)
	require.Len(t, makers.Top, 2)
	assert.Equal(t, "iPhone", makers.Top[0].Name)

	sellers, err := uc.TopSellers(ctx)
	require.NoError(t, err)
	require.Len(t, sellers.Top, 3)
	assert.Equal(t, "Cargador", sellers.Top[0].Name)
	assert.Equal(t, 4, sellers.Top[0].UnitsSold)

	dist, err := uc.RevenueDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, dist, 3)
	assert.Equal(t, "Borrado", dist[0].Name)

	basket, err := uc.AvgBasketValue(ctx)
	require.NoError(t, err)
	assert.True(t, basket.AvgBasketValue.Equal(dec(390)), "(280 + 500) / 2")

	corr, err := uc.AccessoryCorrelation(ctx)
	require.NoError(t, err)
	require.Len(t, corr, 3)
	assert.Equal(t, "Mobile", corr[0].Device)
	assert.Equal(t, 100, corr[0].Charger)
	assert.Equal(t, 0, corr[2].Charger)
}

func TestTotalProfit_RedondeoIgualAlDashboard(t *testing.T) {
	store := memory.NewStore()
	seedDevice(t, store, &entity.Device{UID: "D1", Name: "iPhone", Type: entity.DeviceTypeMobile,
		CostPrice: decimal.RequireFromString("0.001"), Variant: entity.MobileSpec{}})
	price := decimal.RequireFromString("10.5")
	seedSale(t, store, time.Minute, entity.SaleItem{
		UID: "D1", Name: "iPhone", DeviceType: entity.DeviceTypeMobile, QuantitySold: 1,
		FinalPrice: price, TotalPrice: price,
	})
	ctx := context.Background()

	profit, err := analytics.NewAnalyticsUseCase(store.Sales(), store.Devices()).TotalProfit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10.5", profit.TotalProfit.String(), "10.5 - 0.001 redondeado a 2 decimales")

	summary, err := analytics.NewDashboardUseCase(store.Sales(), store.Devices()).GetSummary(ctx)
	require.NoError(t, err)
	assert.True(t, profit.TotalProfit.Equal(summary.TotalProfit), "total-profit y dashboard coinciden")
}

func TestAvgBasket_SinVentasEsCero(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewAnalyticsUseCase(store.Sales(), store.Devices())

	basket, err := uc.AvgBasketValue(context.Background())
	require.NoError(t, err)
	assert.True(t, basket.AvgBasketValue.IsZero())
}

func TestAnalytics_Idempotente(t *testing.T) {
	store := memory.NewStore()
	seedDevice(t, store, &entity.Device{UID: "D1", Name: "iPhone", Type: entity.DeviceTypeMobile, CostPrice: dec(60), Variant: entity.MobileSpec{}})
	seedDevice(t, store, &entity.Device{UID: "D2", Name: "Galaxy", Type: entity.DeviceTypeMobile, CostPrice: dec(60), Variant: entity.MobileSpec{}})
	seedSale(t, store, time.Hour, line("D1", "iPhone", entity.DeviceTypeMobile, 1, 100), line("D2", "Galaxy", entity.DeviceTypeMobile, 1, 100))

	uc := analytics.NewAnalyticsUseCase(store.Sales(), store.Devices())
	ctx := context.Background()

	first, err := uc.TopProfitMakers(ctx)
	require.NoError(t, err)
	second, err := uc.TopProfitMakers(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Galaxy", first.Top[0].Name, "empate se ordena por nombre")

	d1, err := uc.RevenueDistribution(ctx)
	require.NoError(t, err)
	d2, err := uc.RevenueDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

// ──────────────────────────────────────────────────────────────────────────────
// DashboardUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Resumen(t *testing.T) {
	store := memory.NewStore()
	seedDevice(t, store, &entity.Device{UID: "D1", Name: "iPhone", Type: entity.DeviceTypeMobile, CostPrice: dec(60), Variant: entity.MobileSpec{}})
	seedSale(t, store, 10*time.Minute, line("D1", "iPhone", entity.DeviceTypeMobile, 2, 100))
	seedSale(t, store, 30*time.Hour, line("D1", "iPhone", entity.DeviceTypeMobile, 1, 100))

	uc := analytics.NewDashboardUseCase(store.Sales(), store.Devices())
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.SalesCount)
	assert.Equal(t, 1, out.Realtime.Last24Hours.TotalSales)
	assert.True(t, out.TotalProfit.Equal(dec(120)))
	assert.True(t, out.AvgBasketValue.Equal(dec(150)))
	require.Len(t, out.TopSellers, 1)
	assert.Equal(t, 3, out.TopSellers[0].UnitsSold)
}

// ──────────────────────────────────────────────────────────────────────────────
// InventoryReportUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestTurnaround_EjemploYLimite(t *testing.T) {
	store := memory.NewStore()
	seedDevice(t, store, &entity.Device{UID: "A", Name: "A", Type: entity.DeviceTypeMobile, InventoryQty: 10, SoldQty: 5, Variant: entity.MobileSpec{}})
	seedDevice(t, store, &entity.Device{UID: "B", Name: "B", Type: entity.DeviceTypeMobile, InventoryQty: 10, SoldQty: 0, Variant: entity.MobileSpec{}})
	for i, name := range []string{"C", "D", "E", "F", "G"} {
		seedDevice(t, store, &entity.Device{UID: name, Name: name, Type: entity.DeviceTypeLaptop,
			InventoryQty: i, SoldQty: 10, Variant: entity.LaptopSpec{}})
	}

	uc := analytics.NewInventoryReportUseCase(store.Devices())
	out, err := uc.Turnaround(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Turnaround, 5)
	for _, r := range out.Turnaround {
		assert.NotEqual(t, "B", r.Name, "sin ventas se excluye")
		assert.NotEqual(t, "A", r.Name, "ratio 2.0 queda fuera del top 5")
	}
	assert.Equal(t, "C", out.Turnaround[0].Name)

	only := memory.NewStore()
	seedDevice(t, only, &entity.Device{UID: "A", Name: "A", Type: entity.DeviceTypeMobile, InventoryQty: 10, SoldQty: 5, Variant: entity.MobileSpec{}})
	single, err := analytics.NewInventoryReportUseCase(only.Devices()).Turnaround(context.Background())
	require.NoError(t, err)
	require.Len(t, single.Turnaround, 1)
	assert.Equal(t, 2.0, single.Turnaround[0].Ratio)
}

func TestInventoryByTypeYSummary(t *testing.T) {
	store := memory.NewStore()
	seedDevice(t, store, &entity.Device{UID: "m1", Name: "m1", Type: entity.DeviceTypeMobile, InventoryQty: 3, SoldQty: 1,
		FinalPrice: dec(100), Discount: dec(10), CostPrice: dec(50), Variant: entity.MobileSpec{}})
	seedDevice(t, store, &entity.Device{UID: "t1", Name: "t1", Type: entity.DeviceTypeTablet, InventoryQty: 2,
		CostPrice: dec(200), Variant: entity.TabletSpec{}})
	seedDevice(t, store, &entity.Device{UID: "a1", Name: "a1", Type: entity.DeviceTypeAddon, InventoryQty: 10, SoldQty: 4,
		CostPrice: dec(5), Variant: entity.AddonSpec{Category: entity.AddonCharger}})

	uc := analytics.NewInventoryReportUseCase(store.Devices())
	ctx := context.Background()

	mobile, err := uc.ByType(ctx, "mobile")
	require.NoError(t, err)
	assert.Equal(t, 3, mobile.TotalInventory)
	assert.True(t, mobile.AvgDiscount.Equal(dec(10)))

	_, err = uc.ByType(ctx, "watch")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sum, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, sum.ByType, 4, "los accesorios se listan por tipo")
	assert.Equal(t, 10, sum.ByType[3].TotalInventory)
	assert.Equal(t, 5, sum.TotalInventory, "los totales solo suman mobile, laptop y tablet")
	assert.Equal(t, 1, sum.TotalSold)
	assert.True(t, sum.StockValue.Equal(dec(550)), "valor sin accesorios: %s", sum.StockValue)
}
