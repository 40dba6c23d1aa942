package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bersacloud/consumo-api/internal/application/auth"
	"github.com/bersacloud/consumo-api/internal/domain"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/pkg/config"
)

// fakeVerifier verificador de identidad controlable desde el test.
type fakeVerifier struct {
	identity *entity.Identity
	err      error
	calls    int
	lastTok  string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*entity.Identity, error) {
	f.calls++
	f.lastTok = token
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName:    "azure_token",
		TrustedDomain: "bersacloud.app",
		PortalURL:     "https://bersacloud.app",
		TTLSeconds:    3600,
	}
}

func testIdentity() *entity.Identity {
	return &entity.Identity{
		Name:   "Ana Prueba",
		Email:  "ana@co.com",
		Office: "Oficina General",
		Tier:   entity.TierStandard,
	}
}

// Sin token en ninguna de las tres fuentes → ErrUnauthenticated, sin verificar nada.
func TestAuthenticate_SinToken_Unauthenticated(t *testing.T) {
	verifier := &fakeVerifier{}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	res, err := gate.Authenticate(context.Background(), auth.Request{
		Host: "consumos.bersacloud.app",
		Path: "/api/consumo",
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Zero(t, verifier.calls, "sin token no debe llamarse al proveedor")
}

// Token en la URL → cookie nueva + redirect a la ruta limpia, sin verificación en este paso.
func TestAuthenticate_TokenEnQuery_EmiteCookieYRedirect(t *testing.T) {
	verifier := &fakeVerifier{identity: testIdentity()}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	res, err := gate.Authenticate(context.Background(), auth.Request{
		QueryToken: "tok-fresco",
		Host:       "consumos.bersacloud.app",
		Path:       "/api/consumo",
	})

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Identity, "en el paso de re-alojo no hay identidad todavía")
	assert.Equal(t, "/api/consumo", res.RedirectTo)

	require.NotNil(t, res.SetCookie)
	assert.Equal(t, "azure_token", res.SetCookie.Name)
	assert.Equal(t, "tok-fresco", res.SetCookie.Value)
	assert.Equal(t, 3600, res.SetCookie.MaxAge)
	assert.False(t, res.SetCookie.Clear)

	assert.Zero(t, verifier.calls, "el token de la URL no se verifica hasta la vuelta del redirect")
}

// Precedencia: con token en query, header y cookie a la vez gana la query
// y se dispara el re-alojo en cookie, no la verificación directa.
func TestAuthenticate_PrecedenciaQuerySobreHeaderYCookie(t *testing.T) {
	verifier := &fakeVerifier{identity: testIdentity()}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	res, err := gate.Authenticate(context.Background(), auth.Request{
		QueryToken:  "tok-query",
		AuthHeader:  "Bearer tok-header",
		CookieToken: "tok-cookie",
		Host:        "consumos.bersacloud.app",
		Path:        "/api/consumo",
	})

	require.NoError(t, err)
	require.NotNil(t, res.SetCookie)
	assert.Equal(t, "tok-query", res.SetCookie.Value, "la query siempre gana (refresco de sesión)")
	assert.NotEmpty(t, res.RedirectTo)
	assert.Zero(t, verifier.calls)
}

// Token por header Authorization → se verifica y se devuelve la identidad.
func TestAuthenticate_TokenEnHeader_Verifica(t *testing.T) {
	verifier := &fakeVerifier{identity: testIdentity()}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	res, err := gate.Authenticate(context.Background(), auth.Request{
		AuthHeader: "Bearer tok-header",
		Host:       "consumos.bersacloud.app",
		Path:       "/api/consumo",
	})

	require.NoError(t, err)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "ana@co.com", res.Identity.Email)
	assert.Empty(t, res.RedirectTo)
	assert.Nil(t, res.SetCookie)
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, "tok-header", verifier.lastTok)
}

// Header malformado (sin esquema Bearer) no cuenta como token; se usa la cookie.
func TestAuthenticate_HeaderMalformado_UsaCookie(t *testing.T) {
	verifier := &fakeVerifier{identity: testIdentity()}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	_, err := gate.Authenticate(context.Background(), auth.Request{
		AuthHeader:  "Basic abc123",
		CookieToken: "tok-cookie",
		Host:        "consumos.bersacloud.app",
		Path:        "/api/consumo",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-cookie", verifier.lastTok)
}

// Cookie con token que el proveedor ya rechaza → sesión expirada
// y la instrucción de limpiar la cookie con el mismo criterio de dominio.
func TestAuthenticate_CookieRechazada_LimpiaCookie(t *testing.T) {
	verifier := &fakeVerifier{err: domain.ErrSessionExpired}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	res, err := gate.Authenticate(context.Background(), auth.Request{
		CookieToken: "tok-viejo",
		Host:        "consumos.bersacloud.app",
		Path:        "/api/consumo",
	})

	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	require.NotNil(t, res)
	require.NotNil(t, res.SetCookie)
	assert.True(t, res.SetCookie.Clear)
	assert.Equal(t, ".bersacloud.app", res.SetCookie.Domain)
	assert.Nil(t, res.Identity)
}

// El atributo Domain solo se emite cuando el host pertenece al dominio confiable.
func TestAuthenticate_DominioCookieSegunHost(t *testing.T) {
	cases := []struct {
		name   string
		host   string
		domain string
	}{
		{"subdominio confiable", "consumos.bersacloud.app", ".bersacloud.app"},
		{"dominio raíz", "bersacloud.app", ".bersacloud.app"},
		{"host ajeno", "localhost", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := auth.NewSessionGate(&fakeVerifier{}, testSessionConfig())
			res, err := gate.Authenticate(context.Background(), auth.Request{
				QueryToken: "tok",
				Host:       tc.host,
				Path:       "/api/consumo",
			})
			require.NoError(t, err)
			require.NotNil(t, res.SetCookie)
			assert.Equal(t, tc.domain, res.SetCookie.Domain)
		})
	}
}

// Un fallo genérico del verificador también expira la sesión hacia afuera.
func TestAuthenticate_FalloDeVerificacion_PropagaError(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("proveedor caído")}
	gate := auth.NewSessionGate(verifier, testSessionConfig())

	res, err := gate.Authenticate(context.Background(), auth.Request{
		CookieToken: "tok",
		Host:        "localhost",
		Path:        "/api/consumo",
	})

	assert.Error(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.SetCookie)
	assert.True(t, res.SetCookie.Clear)
	assert.Empty(t, res.SetCookie.Domain, "fuera del dominio confiable la limpieza es host-only")
}
