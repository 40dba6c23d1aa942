package repository

import (
	"context"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
)

// ReconciliationRepository puerto de lectura sobre la vista de cálculo de consumo.
type ReconciliationRepository interface {
	// Discrepancies devuelve las filas del almacén donde al menos uno de los dos
	// stocks es distinto de cero, ordenadas por descripción y código de artículo.
	// Almacén sin actividad devuelve lista vacía, no error.
	Discrepancies(ctx context.Context, warehouseKey string) ([]entity.ReconciliationRow, error)
	// NonZeroDifferences devuelve solo las filas con diferencia != 0 (base del modo delta).
	NonZeroDifferences(ctx context.Context, warehouseKey string) ([]entity.ReconciliationRow, error)
}
