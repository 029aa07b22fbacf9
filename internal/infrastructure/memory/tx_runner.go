package memory

import (
	"context"

	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// TxRunner ejecuta el callback sobre una copia del estado con el lock tomado.
// Satisface sales.TxRunner.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea un TxRunner sobre store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run publica la copia solo si fn retorna nil; ante error el estado queda intacto.
func (r *TxRunner) Run(ctx context.Context, fn func(devices repository.DeviceRepository, sales repository.SaleRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	direct := func(f func(*state) error) error { return f(work) }

	if err := fn(&DeviceRepo{with: direct}, &SaleRepo{with: direct}); err != nil {
		return err
	}
	r.store.st = work
	return nil
}
