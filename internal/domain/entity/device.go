package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeviceType discrimina la variante de un Device.
type DeviceType string

const (
	DeviceTypeMobile DeviceType = "Mobile"
	DeviceTypeLaptop DeviceType = "Laptop"
	DeviceTypeTablet DeviceType = "Tablet"
	DeviceTypeAddon  DeviceType = "Addon"
)

// MainDeviceTypes son los tipos que cuentan como "dispositivo principal" en una canasta.
var MainDeviceTypes = []DeviceType{DeviceTypeMobile, DeviceTypeLaptop, DeviceTypeTablet}

// ParseDeviceType acepta el nombre sin distinguir mayúsculas ("mobile", "MOBILE", "Mobile").
func ParseDeviceType(s string) (DeviceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mobile":
		return DeviceTypeMobile, true
	case "laptop":
		return DeviceTypeLaptop, true
	case "tablet":
		return DeviceTypeTablet, true
	case "addon":
		return DeviceTypeAddon, true
	}
	return "", false
}

// IsMain indica si el tipo es Mobile, Laptop o Tablet.
func (t DeviceType) IsMain() bool {
	return t == DeviceTypeMobile || t == DeviceTypeLaptop || t == DeviceTypeTablet
}

// AddonCategory clasifica los accesorios.
type AddonCategory string

const (
	AddonHeadphone   AddonCategory = "Headphone"
	AddonCharger     AddonCategory = "Charger"
	AddonPowerBank   AddonCategory = "Power Bank"
	AddonMouse       AddonCategory = "Mouse"
	AddonScreenGuard AddonCategory = "Screen Guard"
)

// ParseAddonCategory normaliza la categoría sin distinguir mayúsculas.
func ParseAddonCategory(s string) (AddonCategory, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range []AddonCategory{AddonHeadphone, AddonCharger, AddonPowerBank, AddonMouse, AddonScreenGuard} {
		if strings.ToLower(string(c)) == norm {
			return c, true
		}
	}
	return "", false
}

// BasketKind indica si un accesorio se vendió solo o junto a un dispositivo principal.
type BasketKind int

const (
	BasketStandalone BasketKind = iota
	BasketWithDevice
)

// Variant es la parte específica de cada tipo de dispositivo.
type Variant interface {
	Kind() DeviceType
}

type MobileSpec struct {
	CameraMP float64 `json:"camera_mp,omitempty"`
}

type LaptopSpec struct {
	Processor      string `json:"processor,omitempty"`
	HasTouchscreen bool   `json:"has_touchscreen"`
}

type TabletSpec struct {
	StylusSupport bool `json:"stylus_support"`
}

type AddonSpec struct {
	Category          AddonCategory `json:"category"`
	Compatibility     []string      `json:"compatibility,omitempty"`
	RelatedDeviceUIDs []string      `json:"related_device_uids,omitempty"`
}

func (MobileSpec) Kind() DeviceType { return DeviceTypeMobile }
func (LaptopSpec) Kind() DeviceType { return DeviceTypeLaptop }
func (TabletSpec) Kind() DeviceType { return DeviceTypeTablet }
func (AddonSpec) Kind() DeviceType  { return DeviceTypeAddon }

// Hardware agrupa atributos comunes opcionales.
type Hardware struct {
	Battery    int     `json:"battery,omitempty"`
	RAM        int     `json:"ram,omitempty"`
	Screen     string  `json:"screen,omitempty"`
	ScreenSize float64 `json:"screen_size,omitempty"`
	Color      string  `json:"color,omitempty"`
}

// Device es un artículo vendible del catálogo: base común más Variant.
// SoldStandalone y SoldWithDevice solo se usan en accesorios.
type Device struct {
	UID                string
	Name               string
	Type               DeviceType
	Manufacturer       string
	Location           string
	Hardware           Hardware
	CostPrice          decimal.Decimal
	SalesPrice         decimal.Decimal
	FinalPrice         decimal.Decimal
	Discount           decimal.Decimal
	InventoryQty       int
	SoldQty            int
	SoldStandalone     int
	SoldWithDevice     int
	AlsoBoughtTogether []string
	Variant            Variant
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UnitPrice resuelve el precio unitario de venta: final, si no de lista, si no costo.
func (d *Device) UnitPrice() decimal.Decimal {
	if d.FinalPrice.IsPositive() {
		return d.FinalPrice
	}
	if d.SalesPrice.IsPositive() {
		return d.SalesPrice
	}
	return d.CostPrice
}

// Addon devuelve la variante de accesorio si el dispositivo lo es.
func (d *Device) Addon() (AddonSpec, bool) {
	a, ok := d.Variant.(AddonSpec)
	return a, ok
}

// Validate comprueba las invariantes de un registro de catálogo.
func (d *Device) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name es obligatorio")
	}
	if d.Variant == nil || d.Variant.Kind() != d.Type {
		return fmt.Errorf("variante incompatible con device_type %q", d.Type)
	}
	for field, v := range map[string]decimal.Decimal{
		"cost_price": d.CostPrice, "sales_price": d.SalesPrice, "final_price": d.FinalPrice, "discount": d.Discount,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s no puede ser negativo", field)
		}
	}
	if d.InventoryQty < 0 || d.SoldQty < 0 {
		return fmt.Errorf("inventory_qty y sold_qty no pueden ser negativos")
	}
	return nil
}

// Clone copia profunda; los repositorios en memoria la usan para no compartir slices.
func (d *Device) Clone() *Device {
	c := *d
	c.AlsoBoughtTogether = append([]string(nil), d.AlsoBoughtTogether...)
	if a, ok := d.Variant.(AddonSpec); ok {
		a.Compatibility = append([]string(nil), a.Compatibility...)
		a.RelatedDeviceUIDs = append([]string(nil), a.RelatedDeviceUIDs...)
		c.Variant = a
	}
	return &c
}

// EncodeVariant serializa la variante (y los atributos comunes) para columnas JSONB.
func EncodeVariant(hw Hardware, v Variant) ([]byte, error) {
	payload := struct {
		Hardware
		Variant Variant `json:"variant"`
	}{Hardware: hw, Variant: v}
	return json.Marshal(payload)
}

// DecodeVariant reconstruye Hardware y Variant a partir del tipo discriminador.
func DecodeVariant(t DeviceType, raw []byte) (Hardware, Variant, error) {
	var envelope struct {
		Hardware
		Variant json.RawMessage `json:"variant"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return Hardware{}, nil, fmt.Errorf("decode attributes: %w", err)
		}
	}
	var (
		v   Variant
		err error
	)
	switch t {
	case DeviceTypeMobile:
		var s MobileSpec
		err = unmarshalOptional(envelope.Variant, &s)
		v = s
	case DeviceTypeLaptop:
		var s LaptopSpec
		err = unmarshalOptional(envelope.Variant, &s)
		v = s
	case DeviceTypeTablet:
		var s TabletSpec
		err = unmarshalOptional(envelope.Variant, &s)
		v = s
	case DeviceTypeAddon:
		var s AddonSpec
		err = unmarshalOptional(envelope.Variant, &s)
		v = s
	default:
		return Hardware{}, nil, fmt.Errorf("device_type desconocido %q", t)
	}
	if err != nil {
		return Hardware{}, nil, fmt.Errorf("decode variant %s: %w", t, err)
	}
	return envelope.Hardware, v, nil
}

func unmarshalOptional(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
