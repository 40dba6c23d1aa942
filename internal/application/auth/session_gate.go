package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/bersacloud/consumo-api/internal/domain"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/pkg/config"
)

// Fuente del token dentro de la petición, en orden de prioridad.
type tokenSource int

const (
	sourceNone tokenSource = iota
	sourceQuery
	sourceHeader
	sourceCookie
)

// Request campos de la petición entrante que interesan a la puerta de sesión.
// El adaptador HTTP la construye; la lógica no depende del framework.
type Request struct {
	QueryToken  string // query param "token"
	AuthHeader  string // header Authorization completo ("Bearer <token>")
	CookieToken string // valor de la cookie de sesión, si existe
	Host        string // hostname de la petición, sin puerto
	Path        string // path actual, sin query string
}

// CookieInstruction instrucción de cookie que el transporte debe aplicar.
// Clear en true indica borrar la cookie (mismo criterio de Domain).
type CookieInstruction struct {
	Name   string
	Value  string
	Domain string // vacío = sin atributo Domain
	MaxAge int    // segundos
	Clear  bool
}

// Result resultado de Authenticate. Exactamente uno de estos dos estados:
//   - Identity != nil: sesión válida, continuar con la petición.
//   - RedirectTo != "": re-alojar el token de la URL en cookie y redirigir
//     a la misma ruta limpia; en este paso NO se verifica el token, la
//     vuelta del redirect entra ya con la cookie puesta.
//
// Cuando Authenticate devuelve error junto con un Result, el Result solo
// contiene la instrucción de limpiar la cookie.
type Result struct {
	Identity   *entity.Identity
	SetCookie  *CookieInstruction
	RedirectTo string
}

// SessionGate orquesta el descubrimiento del token, la cookie de sesión y la
// verificación contra el proveedor de identidad. No guarda estado de sesión
// en servidor: la cookie ES la sesión.
type SessionGate struct {
	verifier IdentityVerifier
	cfg      config.SessionConfig
}

// NewSessionGate construye la puerta de sesión.
func NewSessionGate(verifier IdentityVerifier, cfg config.SessionConfig) *SessionGate {
	return &SessionGate{verifier: verifier, cfg: cfg}
}

// CookieName expone el nombre de la cookie para el adaptador HTTP.
func (g *SessionGate) CookieName() string {
	return g.cfg.CookieName
}

// Authenticate aplica el algoritmo de la puerta de sesión:
//  1. Descubrir el token: query -> header -> cookie; el primero presente gana.
//  2. Sin token: ErrUnauthenticated (el transporte redirige al portal).
//  3. Token llegado por query: emitir cookie + redirect a la ruta sin token.
//     El valor de la query siempre gana aunque exista cookie (refresco de sesión),
//     y así el token crudo nunca se vuelve a reflejar en una URL.
//  4. Token de header o cookie: verificar. Si el proveedor lo rechaza, limpiar
//     la cookie y devolver ErrSessionExpired.
func (g *SessionGate) Authenticate(ctx context.Context, req Request) (*Result, error) {
	token, source := discoverToken(req)
	if source == sourceNone {
		return nil, domain.ErrUnauthenticated
	}

	if source == sourceQuery {
		return &Result{
			SetCookie:  g.issueCookie(token, req.Host),
			RedirectTo: req.Path,
		}, nil
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return &Result{SetCookie: g.clearCookie(req.Host)},
			fmt.Errorf("verificar token: %w", err)
	}
	return &Result{Identity: identity}, nil
}

// discoverToken busca el token en orden query -> header Bearer -> cookie.
func discoverToken(req Request) (string, tokenSource) {
	if req.QueryToken != "" {
		return req.QueryToken, sourceQuery
	}
	if tok := bearerToken(req.AuthHeader); tok != "" {
		return tok, sourceHeader
	}
	if req.CookieToken != "" {
		return req.CookieToken, sourceCookie
	}
	return "", sourceNone
}

// bearerToken extrae el token de un header "Bearer <token>"; vacío si no cumple el formato.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (g *SessionGate) issueCookie(token, host string) *CookieInstruction {
	return &CookieInstruction{
		Name:   g.cfg.CookieName,
		Value:  token,
		Domain: g.cookieDomain(host),
		MaxAge: g.cfg.TTLSeconds,
	}
}

func (g *SessionGate) clearCookie(host string) *CookieInstruction {
	return &CookieInstruction{
		Name:   g.cfg.CookieName,
		Domain: g.cookieDomain(host),
		Clear:  true,
	}
}

// cookieDomain devuelve el atributo Domain solo cuando el host de la petición
// pertenece al dominio confiable; fuera de él la cookie queda host-only.
func (g *SessionGate) cookieDomain(host string) string {
	if g.cfg.TrustedDomain != "" && strings.HasSuffix(host, g.cfg.TrustedDomain) {
		return "." + g.cfg.TrustedDomain
	}
	return ""
}
