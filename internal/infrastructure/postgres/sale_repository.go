package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// saleItemDoc es la forma JSONB de una línea de venta.
type saleItemDoc struct {
	UID          string          `json:"uid"`
	DeviceType   string          `json:"device_type"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	QuantitySold int             `json:"quantity_sold"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Discount     decimal.Decimal `json:"discount"`
}

// SaleRepo libro de ventas sobre PostgreSQL; las líneas viajan como JSONB.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	docs := make([]saleItemDoc, len(s.Items))
	for i, it := range s.Items {
		docs[i] = saleItemDoc{
			UID: it.UID, DeviceType: string(it.DeviceType), Name: it.Name, Category: string(it.Category),
			Manufacturer: it.Manufacturer, QuantitySold: it.QuantitySold,
			FinalPrice: it.FinalPrice, TotalPrice: it.TotalPrice, Discount: it.Discount,
		}
	}
	items, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode sale items: %w", err)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO sales (id, items, total_price, payment_method, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, s.ID, items, s.TotalPrice, s.PaymentMethod, s.Location, s.CreatedAt); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	page, args := pageClause(nil, limit, offset)
	return r.query(ctx, `SELECT id, items, total_price, payment_method, location, created_at
		FROM sales ORDER BY created_at DESC, id`+page, args...)
}

func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	return r.query(ctx, `SELECT id, items, total_price, payment_method, location, created_at
		FROM sales WHERE created_at >= $1 ORDER BY created_at DESC, id`, since)
}

func (r *SaleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func (r *SaleRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var (
			s   entity.Sale
			raw []byte
		)
		if err := rows.Scan(&s.ID, &raw, &s.TotalPrice, &s.PaymentMethod, &s.Location, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		var docs []saleItemDoc
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, fmt.Errorf("decode sale items %s: %w", s.ID, err)
		}
		s.Items = make([]entity.SaleItem, len(docs))
		for i, doc := range docs {
			s.Items[i] = entity.SaleItem{
				UID: doc.UID, DeviceType: entity.DeviceType(doc.DeviceType), Name: doc.Name,
				Category: entity.AddonCategory(doc.Category), Manufacturer: doc.Manufacturer,
				QuantitySold: doc.QuantitySold, FinalPrice: doc.FinalPrice, TotalPrice: doc.TotalPrice, Discount: doc.Discount,
			}
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
