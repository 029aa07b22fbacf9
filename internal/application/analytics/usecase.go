// Package analytics contiene los casos de uso de reportes sobre el libro de ventas y el catálogo.
// Todas las operaciones son de solo lectura.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	domainanalytics "github.com/jhoicas/devicepos-api/internal/domain/analytics"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// AnalyticsUseCase reportes de ventas: ventanas, ingresos, ganancias, rankings y correlación.
type AnalyticsUseCase struct {
	sales   repository.SaleRepository
	devices repository.DeviceRepository
	now     func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(sales repository.SaleRepository, devices repository.DeviceRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{sales: sales, devices: devices, now: time.Now}
}

// Realtime calcula las ventanas 1h/6h/24h a partir de una sola lectura de las últimas 24h.
func (uc *AnalyticsUseCase) Realtime(ctx context.Context) (*dto.RealtimeAnalyticsDTO, error) {
	now := uc.now()
	recent, err := uc.sales.ListSince(ctx, now.Add(-domainanalytics.Window24Hours))
	if err != nil {
		return nil, fmt.Errorf("realtime: %w", err)
	}
	rt := domainanalytics.RealtimeStats(recent, now)
	out := toRealtimeDTO(rt)
	return &out, nil
}

// RevenueDistribution ingresos agrupados por nombre de artículo, de mayor a menor.
func (uc *AnalyticsUseCase) RevenueDistribution(ctx context.Context) ([]dto.NamedValueDTO, error) {
	all, err := uc.allSales(ctx)
	if err != nil {
		return nil, err
	}
	rows := domainanalytics.RevenueByItem(all)
	out := make([]dto.NamedValueDTO, len(rows))
	for i, r := range rows {
		out[i] = dto.NamedValueDTO{Name: r.Name, Value: r.Value}
	}
	return out, nil
}

// TotalProfit ganancia histórica contra el costo actual del catálogo.
func (uc *AnalyticsUseCase) TotalProfit(ctx context.Context) (*dto.TotalProfitDTO, error) {
	all, costs, err := uc.salesAndCosts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TotalProfitDTO{TotalProfit: domainanalytics.TotalProfit(all, costs).Round(2)}, nil
}

// AvgBasketValue promedio de total_price por venta.
func (uc *AnalyticsUseCase) AvgBasketValue(ctx context.Context) (*dto.AvgBasketDTO, error) {
	all, err := uc.allSales(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AvgBasketDTO{AvgBasketValue: domainanalytics.AverageBasket(all).Round(2)}, nil
}

// TopProfitMakers los 10 artículos con mayor ganancia.
func (uc *AnalyticsUseCase) TopProfitMakers(ctx context.Context) (*dto.TopProfitMakersDTO, error) {
	all, costs, err := uc.salesAndCosts(ctx)
	if err != nil {
		return nil, err
	}
	rows := domainanalytics.Top(domainanalytics.ProfitByItem(all, costs), domainanalytics.TopRankingLimit)
	out := &dto.TopProfitMakersDTO{Top: make([]dto.ProfitMakerDTO, len(rows))}
	for i, r := range rows {
		out.Top[i] = dto.ProfitMakerDTO{Name: r.Name, Profit: r.Value}
	}
	return out, nil
}

// TopSellers los 10 artículos con más unidades vendidas.
func (uc *AnalyticsUseCase) TopSellers(ctx context.Context) (*dto.TopSellersDTO, error) {
	all, err := uc.allSales(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TopSellersDTO{Top: toTopSellers(all)}, nil
}

// AccessoryCorrelation porcentaje de ventas de cada tipo principal que incluyen cada accesorio.
func (uc *AnalyticsUseCase) AccessoryCorrelation(ctx context.Context) ([]dto.CorrelationRowDTO, error) {
	all, err := uc.allSales(ctx)
	if err != nil {
		return nil, err
	}
	rows := domainanalytics.AccessoryCorrelation(all)
	out := make([]dto.CorrelationRowDTO, len(rows))
	for i, r := range rows {
		out[i] = dto.CorrelationRowDTO{
			Device:    string(r.Device),
			Charger:   r.Percentages[domainanalytics.AccessoryCharger],
			Earphones: r.Percentages[domainanalytics.AccessoryEarphones],
			Mouse:     r.Percentages[domainanalytics.AccessoryMouse],
			Cover:     r.Percentages[domainanalytics.AccessoryCover],
			Powerbank: r.Percentages[domainanalytics.AccessoryPowerbank],
		}
	}
	return out, nil
}

func (uc *AnalyticsUseCase) allSales(ctx context.Context) ([]*entity.Sale, error) {
	all, err := uc.sales.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("leer libro de ventas: %w", err)
	}
	return all, nil
}

// salesAndCosts lee el libro y el costo actual de todo el catálogo en paralelo.
func (uc *AnalyticsUseCase) salesAndCosts(ctx context.Context) ([]*entity.Sale, map[string]decimal.Decimal, error) {
	type devicesResult struct {
		list []*entity.Device
		err  error
	}
	devCh := make(chan devicesResult, 1)
	go func() {
		list, err := uc.devices.List(ctx, repository.DeviceFilter{})
		devCh <- devicesResult{list, err}
	}()

	all, salesErr := uc.allSales(ctx)
	devs := <-devCh

	if salesErr != nil {
		return nil, nil, salesErr
	}
	if devs.err != nil {
		return nil, nil, fmt.Errorf("leer catálogo: %w", devs.err)
	}
	return all, domainanalytics.CostIndex(devs.list), nil
}

func toWindowDTO(w domainanalytics.WindowStats) dto.WindowStatsDTO {
	return dto.WindowStatsDTO{
		TotalSales:     w.TotalSales,
		TotalItemsSold: w.TotalItemsSold,
		TotalRevenue:   w.TotalRevenue,
	}
}

func toRealtimeDTO(rt domainanalytics.Realtime) dto.RealtimeAnalyticsDTO {
	return dto.RealtimeAnalyticsDTO{
		LastHour:    toWindowDTO(rt.LastHour),
		Last6Hours:  toWindowDTO(rt.Last6Hours),
		Last24Hours: toWindowDTO(rt.Last24Hours),
	}
}

func toTopSellers(all []*entity.Sale) []dto.TopSellerDTO {
	rows := domainanalytics.Top(domainanalytics.UnitsByItem(all), domainanalytics.TopRankingLimit)
	out := make([]dto.TopSellerDTO, len(rows))
	for i, r := range rows {
		out[i] = dto.TopSellerDTO{Name: r.Name, UnitsSold: r.Units}
	}
	return out
}
