package postgres

import (
	"context"
	"fmt"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/internal/domain/repository"
)

var _ repository.ReconciliationRepository = (*ReconciliationRepo)(nil)

// ReconciliationRepo lectura sobre la vista vista_calculo_consumo (usable con pool o tx).
type ReconciliationRepo struct {
	q Querier
}

// NewReconciliationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReconciliationRepository(q Querier) *ReconciliationRepo {
	return &ReconciliationRepo{q: q}
}

// Discrepancies devuelve las filas del almacén donde al menos un stock es distinto
// de cero, ordenadas por producto y código.
func (r *ReconciliationRepo) Discrepancies(ctx context.Context, warehouseKey string) ([]entity.ReconciliationRow, error) {
	query := `
		SELECT codigo_general, producto, unidad, stock_teorico, stock_fisico, diferencia
		FROM vista_calculo_consumo
		WHERE codigo_almacen = $1
		AND (stock_teorico != 0 OR stock_fisico != 0)
		ORDER BY producto ASC, codigo_general ASC`
	return r.queryRows(ctx, query, warehouseKey)
}

// NonZeroDifferences devuelve solo las filas con diferencia != 0 (modo delta del ajuste).
func (r *ReconciliationRepo) NonZeroDifferences(ctx context.Context, warehouseKey string) ([]entity.ReconciliationRow, error) {
	query := `
		SELECT codigo_general, producto, unidad, stock_teorico, stock_fisico, diferencia
		FROM vista_calculo_consumo
		WHERE codigo_almacen = $1
		AND diferencia != 0
		ORDER BY producto ASC, codigo_general ASC`
	return r.queryRows(ctx, query, warehouseKey)
}

func (r *ReconciliationRepo) queryRows(ctx context.Context, query, warehouseKey string) ([]entity.ReconciliationRow, error) {
	rows, err := r.q.Query(ctx, query, warehouseKey)
	if err != nil {
		return nil, fmt.Errorf("query reconciliation view: %w", err)
	}
	defer rows.Close()
	var list []entity.ReconciliationRow
	for rows.Next() {
		var row entity.ReconciliationRow
		if err := rows.Scan(&row.ArticleCode, &row.Description, &row.Unit,
			&row.Theoretical, &row.Physical, &row.Difference); err != nil {
			return nil, fmt.Errorf("scan reconciliation row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
