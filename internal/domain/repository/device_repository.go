package repository

import (
	"context"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// DeviceFilter restringe List. Types vacío significa cualquier tipo; Limit 0 significa sin límite.
type DeviceFilter struct {
	Types        []entity.DeviceType
	Manufacturer string
	Category     entity.AddonCategory
	Limit        int
	Offset       int
}

// DeviceRepository define el puerto de persistencia del catálogo.
// GetByUID devuelve (nil, nil) si no existe.
type DeviceRepository interface {
	Create(ctx context.Context, d *entity.Device) error
	GetByUID(ctx context.Context, uid string) (*entity.Device, error)
	List(ctx context.Context, f DeviceFilter) ([]*entity.Device, error)
	Delete(ctx context.Context, uid string) error

	// DecrementStock resta qty de inventory_qty y suma qty a sold_qty solo si inventory_qty >= qty.
	// En accesorios suma qty también al contador de canasta indicado.
	// Devuelve domain.ErrNotFound o domain.ErrInsufficientStock sin envolver.
	DecrementStock(ctx context.Context, uid string, qty int, basket entity.BasketKind) (*entity.Device, error)

	// AdjustStock aplica delta a inventory_qty solo si el resultado no es negativo.
	AdjustStock(ctx context.Context, uid string, delta int) (*entity.Device, error)

	// AddAlsoBoughtTogether une names al conjunto also_bought_together del dispositivo con ese nombre.
	AddAlsoBoughtTogether(ctx context.Context, name string, names []string) error
}
