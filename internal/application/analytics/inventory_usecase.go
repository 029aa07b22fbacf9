package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/domain"
	domainanalytics "github.com/jhoicas/devicepos-api/internal/domain/analytics"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// InventoryReportUseCase reportes de existencias y rotación.
type InventoryReportUseCase struct {
	devices repository.DeviceRepository
}

// NewInventoryReportUseCase construye el caso de uso.
func NewInventoryReportUseCase(devices repository.DeviceRepository) *InventoryReportUseCase {
	return &InventoryReportUseCase{devices: devices}
}

// Turnaround los 5 dispositivos de rotación más rápida (menor inventario/vendido).
func (uc *InventoryReportUseCase) Turnaround(ctx context.Context) (*dto.TurnaroundDTO, error) {
	list, err := uc.devices.List(ctx, repository.DeviceFilter{})
	if err != nil {
		return nil, fmt.Errorf("turnaround: %w", err)
	}
	rows := domainanalytics.Top(domainanalytics.TurnaroundRatios(list), domainanalytics.TurnaroundLimit)
	out := &dto.TurnaroundDTO{Turnaround: make([]dto.TurnaroundItemDTO, len(rows))}
	for i, r := range rows {
		out.Turnaround[i] = dto.TurnaroundItemDTO{
			UID: r.UID, Name: r.Name, DeviceType: string(r.Type),
			InventoryQty: r.InventoryQty, SoldQty: r.SoldQty, Ratio: r.Ratio,
		}
	}
	return out, nil
}

// ByType resumen de existencias de un tipo (mobile, laptop, tablet, addon).
func (uc *InventoryReportUseCase) ByType(ctx context.Context, deviceType string) (*dto.InventoryStatsDTO, error) {
	t, ok := entity.ParseDeviceType(deviceType)
	if !ok {
		return nil, fmt.Errorf("%w: device_type %q no válido", domain.ErrInvalidInput, deviceType)
	}
	list, err := uc.devices.List(ctx, repository.DeviceFilter{Types: []entity.DeviceType{t}})
	if err != nil {
		return nil, fmt.Errorf("inventario %s: %w", t, err)
	}
	out := toStatsDTO(t, domainanalytics.SummarizeInventory(list))
	return &out, nil
}

// Summary resumen de todos los tipos; los totales cubren solo mobile, laptop y tablet.
func (uc *InventoryReportUseCase) Summary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	list, err := uc.devices.List(ctx, repository.DeviceFilter{})
	if err != nil {
		return nil, fmt.Errorf("resumen de inventario: %w", err)
	}
	byType := map[entity.DeviceType][]*entity.Device{}
	for _, d := range list {
		byType[d.Type] = append(byType[d.Type], d)
	}
	out := &dto.InventorySummaryDTO{StockValue: decimal.Zero}
	for _, t := range entity.MainDeviceTypes {
		st := domainanalytics.SummarizeInventory(byType[t])
		out.ByType = append(out.ByType, toStatsDTO(t, st))
		out.TotalInventory += st.TotalInventory
		out.TotalSold += st.TotalSold
		out.StockValue = out.StockValue.Add(st.StockValue)
	}
	// accesorios: se listan pero no entran en los totales
	addons := domainanalytics.SummarizeInventory(byType[entity.DeviceTypeAddon])
	out.ByType = append(out.ByType, toStatsDTO(entity.DeviceTypeAddon, addons))
	return out, nil
}

func toStatsDTO(t entity.DeviceType, st domainanalytics.InventoryStats) dto.InventoryStatsDTO {
	return dto.InventoryStatsDTO{
		DeviceType:     string(t),
		Count:          st.Count,
		TotalInventory: st.TotalInventory,
		TotalSold:      st.TotalSold,
		AvgDiscount:    st.AvgDiscount.Round(2),
		AvgPrice:       st.AvgPrice.Round(2),
		StockValue:     st.StockValue,
	}
}
