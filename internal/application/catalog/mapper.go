package catalog

import (
	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// ToDeviceResponse aplana base y variante en la respuesta pública.
func ToDeviceResponse(d *entity.Device) dto.DeviceResponse {
	out := dto.DeviceResponse{
		UID:                d.UID,
		Name:               d.Name,
		DeviceType:         string(d.Type),
		Manufacturer:       d.Manufacturer,
		Location:           d.Location,
		CostPrice:          d.CostPrice,
		SalesPrice:         d.SalesPrice,
		FinalPrice:         d.FinalPrice,
		Discount:           d.Discount,
		InventoryQty:       d.InventoryQty,
		SoldQty:            d.SoldQty,
		AlsoBoughtTogether: d.AlsoBoughtTogether,
		Battery:            d.Hardware.Battery,
		RAM:                d.Hardware.RAM,
		Screen:             d.Hardware.Screen,
		ScreenSize:         d.Hardware.ScreenSize,
		Color:              d.Hardware.Color,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if out.AlsoBoughtTogether == nil {
		out.AlsoBoughtTogether = []string{}
	}
	switch v := d.Variant.(type) {
	case entity.MobileSpec:
		out.CameraMP = &v.CameraMP
	case entity.LaptopSpec:
		out.Processor = &v.Processor
		out.HasTouchscreen = &v.HasTouchscreen
	case entity.TabletSpec:
		out.StylusSupport = &v.StylusSupport
	case entity.AddonSpec:
		out.Category = string(v.Category)
		out.Compatibility = v.Compatibility
		out.RelatedDeviceUIDs = v.RelatedDeviceUIDs
		standalone, withDevice := d.SoldStandalone, d.SoldWithDevice
		out.SoldStandalone = &standalone
		out.SoldWithDevice = &withDevice
	}
	return out
}
