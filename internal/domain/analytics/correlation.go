package analytics

import (
	"math"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// Claves de accesorio del reporte de correlación, en orden de salida.
const (
	AccessoryCharger   = "charger"
	AccessoryEarphones = "earphones"
	AccessoryMouse     = "mouse"
	AccessoryCover     = "cover"
	AccessoryPowerbank = "powerbank"
)

// AccessoryKeys en el orden en que se reportan.
var AccessoryKeys = []string{AccessoryCharger, AccessoryEarphones, AccessoryMouse, AccessoryCover, AccessoryPowerbank}

// AccessoryKey mapea la categoría de accesorio a su clave de correlación.
func AccessoryKey(c entity.AddonCategory) (string, bool) {
	switch c {
	case entity.AddonCharger:
		return AccessoryCharger, true
	case entity.AddonHeadphone:
		return AccessoryEarphones, true
	case entity.AddonMouse:
		return AccessoryMouse, true
	case entity.AddonScreenGuard:
		return AccessoryCover, true
	case entity.AddonPowerBank:
		return AccessoryPowerbank, true
	}
	return "", false
}

// CorrelationRow porcentajes (0..100) de ventas del tipo que incluyen cada accesorio.
type CorrelationRow struct {
	Device      entity.DeviceType
	SalesCount  int
	Percentages map[string]int
}

// AccessoryCorrelation calcula, por cada tipo principal, el porcentaje de sus ventas que
// incluyen cada clave de accesorio. Sin ventas del tipo, todos los porcentajes son 0.
func AccessoryCorrelation(sales []*entity.Sale) []CorrelationRow {
	rows := make([]CorrelationRow, 0, len(entity.MainDeviceTypes))
	for _, t := range entity.MainDeviceTypes {
		hits := map[string]int{}
		total := 0
		for _, s := range sales {
			if !s.HasType(t) {
				continue
			}
			total++
			for key := range accessoriesIn(s) {
				hits[key]++
			}
		}
		row := CorrelationRow{Device: t, SalesCount: total, Percentages: make(map[string]int, len(AccessoryKeys))}
		for _, key := range AccessoryKeys {
			row.Percentages[key] = percent(hits[key], total)
		}
		rows = append(rows, row)
	}
	return rows
}

func accessoriesIn(s *entity.Sale) map[string]struct{} {
	set := map[string]struct{}{}
	for _, it := range s.Items {
		if it.DeviceType != entity.DeviceTypeAddon {
			continue
		}
		if key, ok := AccessoryKey(it.Category); ok {
			set[key] = struct{}{}
		}
	}
	return set
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}
