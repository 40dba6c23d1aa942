package inventory

import (
	"context"

	"github.com/bersacloud/consumo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para los lotes de movimientos: o se insertan
// todos o ninguno, y el recurso transaccional se libera en cualquier salida.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		reconRepo repository.ReconciliationRepository,
	) error) error
}
