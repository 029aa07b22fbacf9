package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	domainanalytics "github.com/jhoicas/devicepos-api/internal/domain/analytics"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen de la pantalla del dueño.
//
// Tres lecturas en paralelo:
//  1. ListSince(now-24h) → ventanas en tiempo real
//  2. List(todo)         → ganancia, canasta promedio, top sellers
//  3. Catálogo completo  → costos actuales
type DashboardUseCase struct {
	sales   repository.SaleRepository
	devices repository.DeviceRepository
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sales repository.SaleRepository, devices repository.DeviceRepository) *DashboardUseCase {
	return &DashboardUseCase{sales: sales, devices: devices, now: time.Now}
}

// GetSummary construye el DashboardDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	now := uc.now()

	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	type devicesResult struct {
		list []*entity.Device
		err  error
	}

	recentCh := make(chan salesResult, 1)
	allCh := make(chan salesResult, 1)
	devCh := make(chan devicesResult, 1)

	go func() {
		list, err := uc.sales.ListSince(ctx, now.Add(-domainanalytics.Window24Hours))
		recentCh <- salesResult{list, err}
	}()
	go func() {
		list, err := uc.sales.List(ctx, 0, 0)
		allCh <- salesResult{list, err}
	}()
	go func() {
		list, err := uc.devices.List(ctx, repository.DeviceFilter{})
		devCh <- devicesResult{list, err}
	}()

	recent := <-recentCh
	all := <-allCh
	devs := <-devCh

	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}
	if all.err != nil {
		return nil, fmt.Errorf("dashboard: libro de ventas: %w", all.err)
	}
	if devs.err != nil {
		return nil, fmt.Errorf("dashboard: catálogo: %w", devs.err)
	}

	costs := domainanalytics.CostIndex(devs.list)
	return &dto.DashboardDTO{
		Realtime:       toRealtimeDTO(domainanalytics.RealtimeStats(recent.list, now)),
		TotalProfit:    domainanalytics.TotalProfit(all.list, costs).Round(2),
		AvgBasketValue: domainanalytics.AverageBasket(all.list).Round(2),
		TopSellers:     toTopSellers(all.list),
		SalesCount:     len(all.list),
	}, nil
}
