package repository

import (
	"context"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
)

// WarehouseRepository puerto de lectura de almacenes y de sus permisos por usuario.
// Ambas listas llegan ordenadas por nombre ascendente.
type WarehouseRepository interface {
	// ListAll devuelve todos los almacenes del sistema (perfil corporativo).
	ListAll(ctx context.Context) ([]entity.Warehouse, error)
	// ListByEmail devuelve los almacenes con permiso explícito para el email (perfil estándar).
	// El email se compara en minúsculas. Sin permisos devuelve lista vacía, no error.
	ListByEmail(ctx context.Context, email string) ([]entity.Warehouse, error)
}
