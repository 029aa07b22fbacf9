package sales

import (
	"context"

	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn retorna error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(devices repository.DeviceRepository, sales repository.SaleRepository) error) error
}
