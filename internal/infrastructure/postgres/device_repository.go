package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

const deviceColumns = `uid, name, device_type, manufacturer, location, cost_price, sales_price, final_price, discount,
	inventory_qty, sold_qty, sold_standalone, sold_with_device, also_bought_together, attributes, created_at, updated_at`

// DeviceRepo implementación del catálogo sobre PostgreSQL (usable con pool o tx).
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	attrs, err := entity.EncodeVariant(d.Hardware, d.Variant)
	if err != nil {
		return err
	}
	if d.AlsoBoughtTogether == nil {
		d.AlsoBoughtTogether = []string{}
	}
	query := `
		INSERT INTO devices (uid, name, device_type, manufacturer, location, cost_price, sales_price, final_price, discount,
			inventory_qty, sold_qty, sold_standalone, sold_with_device, also_bought_together, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		d.UID, d.Name, string(d.Type), d.Manufacturer, d.Location, d.CostPrice, d.SalesPrice, d.FinalPrice, d.Discount,
		d.InventoryQty, d.SoldQty, d.SoldStandalone, d.SoldWithDevice, d.AlsoBoughtTogether, attrs,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateDeviceError(err, d)
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

func (r *DeviceRepo) GetByUID(ctx context.Context, uid string) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE uid = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

func (r *DeviceRepo) List(ctx context.Context, f repository.DeviceFilter) ([]*entity.Device, error) {
	var (
		where []string
		args  []any
	)
	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		where = append(where, "device_type = ANY($"+strconv.Itoa(len(args))+")")
	}
	if f.Manufacturer != "" {
		args = append(args, f.Manufacturer)
		where = append(where, "manufacturer = $"+strconv.Itoa(len(args)))
	}
	if f.Category != "" {
		args = append(args, string(f.Category))
		where = append(where, "device_type = 'Addon' AND attributes -> 'variant' ->> 'category' = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + deviceColumns + ` FROM devices`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, uid"
	page, args := pageClause(args, f.Limit, f.Offset)
	query += page

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DeviceRepo) Delete(ctx context.Context, uid string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM devices WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock usa un UPDATE condicional: dos ventas concurrentes no pueden dejar inventario negativo.
func (r *DeviceRepo) DecrementStock(ctx context.Context, uid string, qty int, basket entity.BasketKind) (*entity.Device, error) {
	query := `
		UPDATE devices SET
			inventory_qty = inventory_qty - $2,
			sold_qty = sold_qty + $2,
			sold_with_device = sold_with_device + CASE WHEN device_type = 'Addon' AND $3 THEN $2 ELSE 0 END,
			sold_standalone = sold_standalone + CASE WHEN device_type = 'Addon' AND NOT $3 THEN $2 ELSE 0 END,
			updated_at = now()
		WHERE uid = $1 AND inventory_qty >= $2
		RETURNING ` + deviceColumns
	d, err := scanDevice(r.q.QueryRow(ctx, query, uid, qty, basket == entity.BasketWithDevice))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	return nil, r.missOrShort(ctx, uid)
}

func (r *DeviceRepo) AdjustStock(ctx context.Context, uid string, delta int) (*entity.Device, error) {
	query := `
		UPDATE devices SET inventory_qty = inventory_qty + $2, updated_at = now()
		WHERE uid = $1 AND inventory_qty + $2 >= 0
		RETURNING ` + deviceColumns
	d, err := scanDevice(r.q.QueryRow(ctx, query, uid, delta))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return nil, r.missOrShort(ctx, uid)
}

// missOrShort distingue por qué un UPDATE condicional no afectó filas.
func (r *DeviceRepo) missOrShort(ctx context.Context, uid string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM devices WHERE uid = $1)`, uid).Scan(&exists); err != nil {
		return fmt.Errorf("check device: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

func (r *DeviceRepo) AddAlsoBoughtTogether(ctx context.Context, name string, names []string) error {
	query := `
		UPDATE devices SET
			also_bought_together = ARRAY(
				SELECT x FROM unnest(also_bought_together || $2::text[]) WITH ORDINALITY AS t(x, n)
				GROUP BY x ORDER BY min(n)
			),
			updated_at = now()
		WHERE name = $1`
	if _, err := r.q.Exec(ctx, query, name, names); err != nil {
		return fmt.Errorf("update also_bought_together: %w", err)
	}
	return nil
}

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var (
		d     entity.Device
		typ   string
		attrs []byte
	)
	err := row.Scan(
		&d.UID, &d.Name, &typ, &d.Manufacturer, &d.Location, &d.CostPrice, &d.SalesPrice, &d.FinalPrice, &d.Discount,
		&d.InventoryQty, &d.SoldQty, &d.SoldStandalone, &d.SoldWithDevice, &d.AlsoBoughtTogether, &attrs,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Type = entity.DeviceType(typ)
	d.Hardware, d.Variant, err = entity.DecodeVariant(d.Type, attrs)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
