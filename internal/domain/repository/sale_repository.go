package repository

import (
	"context"
	"time"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// SaleRepository es el libro de ventas: solo se agrega y se lee, más recientes primero.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error)
	Count(ctx context.Context) (int, error)
}
