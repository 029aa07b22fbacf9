package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// UserRepo implementa repository.UserRepository en memoria.
type UserRepo struct {
	with access
}

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.with(func(st *state) error {
		if _, ok := st.users[u.Username]; ok {
			return domain.ErrUsernameTaken
		}
		now := time.Now().UTC()
		u.CreatedAt, u.UpdatedAt = now, now
		cp := *u
		st.users[u.Username] = &cp
		return nil
	})
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		if u, ok := st.users[username]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.with(func(st *state) error {
		for _, u := range st.users {
			if role != "" && u.Role != role {
				continue
			}
			cp := *u
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.with(func(st *state) error {
		if _, ok := st.users[u.Username]; !ok {
			return domain.ErrUserNotFound
		}
		u.UpdatedAt = time.Now().UTC()
		cp := *u
		st.users[u.Username] = &cp
		return nil
	})
}

func (r *UserRepo) Delete(_ context.Context, username string) error {
	return r.with(func(st *state) error {
		if _, ok := st.users[username]; !ok {
			return domain.ErrUserNotFound
		}
		delete(st.users, username)
		return nil
	})
}
