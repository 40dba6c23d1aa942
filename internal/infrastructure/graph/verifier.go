package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bersacloud/consumo-api/internal/application/auth"
	"github.com/bersacloud/consumo-api/internal/domain"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/pkg/config"
)

// Verificar en tiempo de compilación que Verifier implementa IdentityVerifier.
var _ auth.IdentityVerifier = (*Verifier)(nil)

// selectFields campos que pedimos a Graph; $select asegura que venga email o UPN.
const selectFields = "displayName,mail,userPrincipalName,officeLocation"

// Verifier adaptador que valida bearer tokens contra Microsoft Graph (/me).
// Usa net/http de la librería estándar; no requiere SDK.
type Verifier struct {
	endpoint        string
	corporateOffice string
	defaultOffice   string
	httpClient      *http.Client
}

// NewVerifier construye el adaptador con la configuración de Graph.
func NewVerifier(cfg config.GraphConfig) *Verifier {
	return &Verifier{
		endpoint:        cfg.Endpoint,
		corporateOffice: cfg.CorporateOffice,
		defaultOffice:   cfg.DefaultOffice,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// graphProfile cuerpo esperado de GET /me.
type graphProfile struct {
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	OfficeLocation    string `json:"officeLocation"`
}

// Verify envía el token a Graph y mapea la respuesta a una Identity.
// Cualquier respuesta no-2xx, fallo de red o cuerpo malformado invalida la sesión;
// no se reintenta: un token rechazado no se arregla reintentando.
func (v *Verifier) Verify(ctx context.Context, token string) (*entity.Identity, error) {
	url := v.endpoint + "?$select=" + selectFields
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("graph: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: llamada fallida (%v): %w", err, domain.ErrSessionExpired)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("graph: leer respuesta: %w", domain.ErrSessionExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("graph: HTTP %d: %w", resp.StatusCode, domain.ErrSessionExpired)
	}

	var profile graphProfile
	if err := json.Unmarshal(rawBody, &profile); err != nil {
		return nil, fmt.Errorf("graph: cuerpo malformado: %w", domain.ErrSessionExpired)
	}

	// Fallback: si no hay mail se usa userPrincipalName; siempre en minúsculas.
	email := strings.ToLower(strings.TrimSpace(profile.Mail))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(profile.UserPrincipalName))
	}
	if email == "" {
		return nil, fmt.Errorf("graph: perfil sin email ni UPN: %w", domain.ErrSessionExpired)
	}

	office := profile.OfficeLocation
	if office == "" {
		office = v.defaultOffice
	}

	tier := entity.TierStandard
	if strings.EqualFold(profile.OfficeLocation, v.corporateOffice) {
		tier = entity.TierCorporate
	}

	return &entity.Identity{
		Name:   profile.DisplayName,
		Email:  email,
		Office: office,
		Tier:   tier,
	}, nil
}
