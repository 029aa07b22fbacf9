package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// DeviceRepo implementa repository.DeviceRepository en memoria.
type DeviceRepo struct {
	with access
}

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

func (r *DeviceRepo) Create(_ context.Context, d *entity.Device) error {
	return r.with(func(st *state) error {
		if _, ok := st.devices[d.UID]; ok {
			return fmt.Errorf("%w: uid %s", domain.ErrDuplicate, d.UID)
		}
		for _, other := range st.devices {
			if other.Name == d.Name {
				return fmt.Errorf("%w: name %s", domain.ErrDuplicate, d.Name)
			}
		}
		now := time.Now().UTC()
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		d.UpdatedAt = now
		st.devices[d.UID] = d.Clone()
		st.order = append(st.order, d.UID)
		return nil
	})
}

func (r *DeviceRepo) GetByUID(_ context.Context, uid string) (*entity.Device, error) {
	var out *entity.Device
	err := r.with(func(st *state) error {
		if d, ok := st.devices[uid]; ok {
			out = d.Clone()
		}
		return nil
	})
	return out, err
}

func (r *DeviceRepo) List(_ context.Context, f repository.DeviceFilter) ([]*entity.Device, error) {
	var out []*entity.Device
	err := r.with(func(st *state) error {
		skipped := 0
		for _, uid := range st.order {
			d := st.devices[uid]
			if !matches(d, f) {
				continue
			}
			if skipped < f.Offset {
				skipped++
				continue
			}
			out = append(out, d.Clone())
			if f.Limit > 0 && len(out) == f.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func matches(d *entity.Device, f repository.DeviceFilter) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, d.Type) {
		return false
	}
	if f.Manufacturer != "" && d.Manufacturer != f.Manufacturer {
		return false
	}
	if f.Category != "" {
		a, ok := d.Addon()
		if !ok || a.Category != f.Category {
			return false
		}
	}
	return true
}

func (r *DeviceRepo) Delete(_ context.Context, uid string) error {
	return r.with(func(st *state) error {
		if _, ok := st.devices[uid]; !ok {
			return domain.ErrNotFound
		}
		delete(st.devices, uid)
		st.order = slices.DeleteFunc(st.order, func(u string) bool { return u == uid })
		return nil
	})
}

func (r *DeviceRepo) DecrementStock(_ context.Context, uid string, qty int, basket entity.BasketKind) (*entity.Device, error) {
	var out *entity.Device
	err := r.with(func(st *state) error {
		d, ok := st.devices[uid]
		if !ok {
			return domain.ErrNotFound
		}
		if d.InventoryQty < qty {
			return domain.ErrInsufficientStock
		}
		d.InventoryQty -= qty
		d.SoldQty += qty
		if d.Type == entity.DeviceTypeAddon {
			if basket == entity.BasketWithDevice {
				d.SoldWithDevice += qty
			} else {
				d.SoldStandalone += qty
			}
		}
		d.UpdatedAt = time.Now().UTC()
		out = d.Clone()
		return nil
	})
	return out, err
}

func (r *DeviceRepo) AdjustStock(_ context.Context, uid string, delta int) (*entity.Device, error) {
	var out *entity.Device
	err := r.with(func(st *state) error {
		d, ok := st.devices[uid]
		if !ok {
			return domain.ErrNotFound
		}
		if d.InventoryQty+delta < 0 {
			return domain.ErrInsufficientStock
		}
		d.InventoryQty += delta
		d.UpdatedAt = time.Now().UTC()
		out = d.Clone()
		return nil
	})
	return out, err
}

func (r *DeviceRepo) AddAlsoBoughtTogether(_ context.Context, name string, names []string) error {
	return r.with(func(st *state) error {
		for _, d := range st.devices {
			if d.Name != name {
				continue
			}
			for _, n := range names {
				if !slices.Contains(d.AlsoBoughtTogether, n) {
					d.AlsoBoughtTogether = append(d.AlsoBoughtTogether, n)
				}
			}
		}
		return nil
	})
}
