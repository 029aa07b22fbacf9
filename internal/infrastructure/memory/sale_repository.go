package memory

import (
	"context"
	"time"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// SaleRepo implementa repository.SaleRepository en memoria.
type SaleRepo struct {
	with access
}

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.with(func(st *state) error {
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
		st.sales = append(st.sales, s.Clone())
		return nil
	})
}

// List devuelve las ventas de la más reciente a la más antigua.
func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.with(func(st *state) error {
		skipped := 0
		for i := len(st.sales) - 1; i >= 0; i-- {
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, st.sales[i].Clone())
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) ListSince(_ context.Context, since time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.with(func(st *state) error {
		for i := len(st.sales) - 1; i >= 0; i-- {
			if s := st.sales[i]; !s.CreatedAt.Before(since) {
				out = append(out, s.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) Count(_ context.Context) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		n = len(st.sales)
		return nil
	})
	return n, err
}
