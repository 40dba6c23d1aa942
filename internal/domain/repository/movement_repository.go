package repository

import (
	"context"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
)

// MovementRepository puerto de escritura del libro de movimientos (append-only).
type MovementRepository interface {
	// Create inserta un movimiento. Dentro de una transacción, cualquier fallo
	// debe provocar el rollback del lote completo.
	Create(ctx context.Context, movement *entity.MovementRecord) error
}
