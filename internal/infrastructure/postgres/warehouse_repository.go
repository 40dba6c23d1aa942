package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de lectura de almacenes. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// ListAll devuelve todos los almacenes ordenados por nombre.
func (r *WarehouseRepo) ListAll(ctx context.Context) ([]entity.Warehouse, error) {
	query := `SELECT clave_sap, nombre FROM almacenes ORDER BY nombre ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.Key, &w.Name); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// ListByEmail devuelve los almacenes con permiso explícito para el email,
// vía la tabla de permisos usuario_almacenes, ordenados por nombre.
func (r *WarehouseRepo) ListByEmail(ctx context.Context, email string) ([]entity.Warehouse, error) {
	query := `
		SELECT a.clave_sap, a.nombre
		FROM almacenes a
		JOIN usuario_almacenes ua ON a.clave_sap = ua.codigo_almacen
		WHERE LOWER(ua.email) = $1
		ORDER BY a.nombre ASC`
	rows, err := r.q.Query(ctx, query, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("list warehouses by email: %w", err)
	}
	defer rows.Close()
	var list []entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.Key, &w.Name); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
