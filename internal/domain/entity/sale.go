package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem es la foto de una línea en el momento de la venta; no cambia si el catálogo cambia.
type SaleItem struct {
	UID          string
	DeviceType   DeviceType
	Name         string
	Category     AddonCategory // solo accesorios
	Manufacturer string
	QuantitySold int
	FinalPrice   decimal.Decimal // precio unitario aplicado
	TotalPrice   decimal.Decimal // FinalPrice * QuantitySold
	Discount     decimal.Decimal
}

// Sale es una entrada inmutable del libro de ventas.
type Sale struct {
	ID            string
	Items         []SaleItem
	TotalPrice    decimal.Decimal
	PaymentMethod string
	Location      string
	CreatedAt     time.Time
}

// Units suma las unidades de todas las líneas.
func (s *Sale) Units() int {
	n := 0
	for _, it := range s.Items {
		n += it.QuantitySold
	}
	return n
}

// HasType indica si alguna línea es del tipo dado.
func (s *Sale) HasType(t DeviceType) bool {
	for _, it := range s.Items {
		if it.DeviceType == t {
			return true
		}
	}
	return false
}

// Clone copia la venta con su propio slice de líneas.
func (s *Sale) Clone() *Sale {
	c := *s
	c.Items = append([]SaleItem(nil), s.Items...)
	return &c
}
