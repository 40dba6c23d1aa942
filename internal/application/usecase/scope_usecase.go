package usecase

import (
	"context"
	"fmt"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/internal/domain/repository"
)

// WarehouseScope conjunto ordenado de almacenes autorizados y la selección activa.
// Active vacío significa "sin almacenes": no hay datos que mostrar.
type WarehouseScope struct {
	Warehouses []entity.Warehouse
	Active     string
}

// Contains indica si la clave pertenece al conjunto autorizado.
func (s *WarehouseScope) Contains(key string) bool {
	for _, w := range s.Warehouses {
		if w.Key == key {
			return true
		}
	}
	return false
}

// ScopeUseCase resuelve qué almacenes puede ver una identidad.
// Se re-resuelve en cada petición: los permisos pueden cambiar entre peticiones
// y cachear la decisión sería un defecto de seguridad.
type ScopeUseCase struct {
	warehouses repository.WarehouseRepository
}

// NewScopeUseCase construye el caso de uso.
func NewScopeUseCase(warehouses repository.WarehouseRepository) *ScopeUseCase {
	return &ScopeUseCase{warehouses: warehouses}
}

// Resolve devuelve los almacenes autorizados (ordenados por nombre) y la selección activa.
// Perfil corporativo: todos los almacenes. Perfil estándar: solo los del permiso por email.
// Una clave solicitada fuera del conjunto autorizado se trata como ausente, nunca se
// concede en silencio: cae al primer almacén autorizado.
func (uc *ScopeUseCase) Resolve(ctx context.Context, identity *entity.Identity, requestedKey string) (*WarehouseScope, error) {
	var (
		list []entity.Warehouse
		err  error
	)
	if identity.IsCorporate() {
		list, err = uc.warehouses.ListAll(ctx)
	} else {
		list, err = uc.warehouses.ListByEmail(ctx, identity.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("listar almacenes para %s: %w", identity.Email, err)
	}

	scope := &WarehouseScope{Warehouses: list}
	switch {
	case requestedKey != "" && scope.Contains(requestedKey):
		scope.Active = requestedKey
	case len(list) > 0:
		scope.Active = list[0].Key
	}
	return scope, nil
}
