package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bersacloud/consumo-api/internal/application/usecase"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
)

// fakeWarehouseRepo repositorio de almacenes en memoria para los tests.
type fakeWarehouseRepo struct {
	all      []entity.Warehouse
	byEmail  map[string][]entity.Warehouse
	err      error
	askedFor string
}

func (f *fakeWarehouseRepo) ListAll(_ context.Context) ([]entity.Warehouse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

func (f *fakeWarehouseRepo) ListByEmail(_ context.Context, email string) ([]entity.Warehouse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.askedFor = email
	return f.byEmail[email], nil
}

var (
	whCentro = entity.Warehouse{Key: "WH1", Name: "Almacén Centro"}
	whNorte  = entity.Warehouse{Key: "WH2", Name: "Almacén Norte"}
	whSur    = entity.Warehouse{Key: "WH3", Name: "Almacén Sur"}
)

// Perfil corporativo → lista completa de almacenes, en el orden del repo.
func TestResolve_Corporativo_TodosLosAlmacenes(t *testing.T) {
	repo := &fakeWarehouseRepo{all: []entity.Warehouse{whCentro, whNorte, whSur}}
	uc := usecase.NewScopeUseCase(repo)
	identity := &entity.Identity{Email: "a@co.com", Tier: entity.TierCorporate}

	scope, err := uc.Resolve(context.Background(), identity, "")

	require.NoError(t, err)
	assert.Equal(t, []entity.Warehouse{whCentro, whNorte, whSur}, scope.Warehouses)
	assert.Equal(t, "WH1", scope.Active, "sin selección explícita se activa el primero")
}

// Perfil estándar → solo los almacenes del permiso por email.
func TestResolve_Estandar_SoloPermisosExplicitos(t *testing.T) {
	repo := &fakeWarehouseRepo{
		all:     []entity.Warehouse{whCentro, whNorte, whSur},
		byEmail: map[string][]entity.Warehouse{"b@co.com": {whNorte}},
	}
	uc := usecase.NewScopeUseCase(repo)
	identity := &entity.Identity{Email: "b@co.com", Tier: entity.TierStandard}

	scope, err := uc.Resolve(context.Background(), identity, "")

	require.NoError(t, err)
	assert.Equal(t, []entity.Warehouse{whNorte}, scope.Warehouses)
	assert.Equal(t, "WH2", scope.Active)
	assert.Equal(t, "b@co.com", repo.askedFor)
}

// Selección explícita dentro del conjunto autorizado se respeta.
func TestResolve_SeleccionAutorizada(t *testing.T) {
	repo := &fakeWarehouseRepo{all: []entity.Warehouse{whCentro, whNorte}}
	uc := usecase.NewScopeUseCase(repo)
	identity := &entity.Identity{Email: "a@co.com", Tier: entity.TierCorporate}

	scope, err := uc.Resolve(context.Background(), identity, "WH2")

	require.NoError(t, err)
	assert.Equal(t, "WH2", scope.Active)
}

// Frontera de autorización: una clave fuera del conjunto se trata como ausente,
// nunca se concede; cae al primer almacén autorizado.
func TestResolve_SeleccionNoAutorizada_SeRechaza(t *testing.T) {
	repo := &fakeWarehouseRepo{
		byEmail: map[string][]entity.Warehouse{"b@co.com": {whNorte}},
	}
	uc := usecase.NewScopeUseCase(repo)
	identity := &entity.Identity{Email: "b@co.com", Tier: entity.TierStandard}

	scope, err := uc.Resolve(context.Background(), identity, "WH1")

	require.NoError(t, err)
	assert.False(t, scope.Contains("WH1"))
	assert.Equal(t, "WH2", scope.Active, "la clave no autorizada no debe activarse jamás")
}

// Sin almacenes autorizados → estado vacío: sin activo y sin datos.
func TestResolve_SinPermisos_EstadoVacio(t *testing.T) {
	repo := &fakeWarehouseRepo{byEmail: map[string][]entity.Warehouse{}}
	uc := usecase.NewScopeUseCase(repo)
	identity := &entity.Identity{Email: "nadie@co.com", Tier: entity.TierStandard}

	scope, err := uc.Resolve(context.Background(), identity, "WH1")

	require.NoError(t, err)
	assert.Empty(t, scope.Warehouses)
	assert.Empty(t, scope.Active)
}

// El error del repositorio se propaga con contexto.
func TestResolve_ErrorDeRepositorio(t *testing.T) {
	repo := &fakeWarehouseRepo{err: errors.New("bd caída")}
	uc := usecase.NewScopeUseCase(repo)
	identity := &entity.Identity{Email: "a@co.com", Tier: entity.TierCorporate}

	_, err := uc.Resolve(context.Background(), identity, "")
	assert.Error(t, err)
}
