// Package memory implementa los repositorios en proceso (STORAGE_DRIVER=memory).
// Un único mutex serializa todas las operaciones; TxRunner trabaja sobre una copia
// del estado y la publica solo si el callback termina sin error.
package memory

import (
	"sync"

	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

type state struct {
	devices map[string]*entity.Device
	order   []string // orden de inserción de devices
	sales   []*entity.Sale
	users   map[string]*entity.User
}

func newState() *state {
	return &state{
		devices: map[string]*entity.Device{},
		users:   map[string]*entity.User{},
	}
}

func (s *state) clone() *state {
	c := &state{
		devices: make(map[string]*entity.Device, len(s.devices)),
		order:   append([]string(nil), s.order...),
		sales:   append([]*entity.Sale(nil), s.sales...), // las ventas son inmutables
		users:   make(map[string]*entity.User, len(s.users)),
	}
	for k, d := range s.devices {
		c.devices[k] = d.Clone()
	}
	for k, u := range s.users {
		cp := *u
		c.users[k] = &cp
	}
	return c
}

// access ejecuta fn con acceso exclusivo al estado.
type access func(fn func(*state) error) error

// Store contiene el estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) locked(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Devices devuelve el repositorio de catálogo fuera de transacción.
func (s *Store) Devices() *DeviceRepo { return &DeviceRepo{with: s.locked} }

// Sales devuelve el libro de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{with: s.locked} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{with: s.locked} }
