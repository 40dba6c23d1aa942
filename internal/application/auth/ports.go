package auth

import (
	"context"

	"github.com/bersacloud/consumo-api/internal/domain/entity"
)

// IdentityVerifier valida un bearer token contra el proveedor de identidad externo
// y devuelve la identidad canónica. Un token rechazado no se reintenta: el
// proveedor ya dijo que la credencial no sirve.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}
