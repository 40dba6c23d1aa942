package inventory

import (
	"context"
	"fmt"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/internal/domain/repository"
)

// ReconciliationUseCase lectura de discrepancias entre stock teórico y físico.
type ReconciliationUseCase struct {
	recon repository.ReconciliationRepository
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(recon repository.ReconciliationRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{recon: recon}
}

// Discrepancies devuelve las filas de conciliación del almacén, ordenadas por
// descripción de artículo. Un almacén sin actividad devuelve lista vacía, no error.
func (uc *ReconciliationUseCase) Discrepancies(ctx context.Context, warehouseKey string) ([]entity.ReconciliationRow, error) {
	rows, err := uc.recon.Discrepancies(ctx, warehouseKey)
	if err != nil {
		return nil, fmt.Errorf("discrepancias de %s: %w", warehouseKey, err)
	}
	if rows == nil {
		rows = []entity.ReconciliationRow{}
	}
	return rows, nil
}
