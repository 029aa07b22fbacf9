package repository

import (
	"context"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// GetByUsername devuelve (nil, nil) si no existe; Update y Delete devuelven domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, role string) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, username string) error
}
