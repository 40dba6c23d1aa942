package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bersacloud/consumo-api/internal/application/auth"
	"github.com/bersacloud/consumo-api/internal/application/dto"
	"github.com/bersacloud/consumo-api/internal/domain"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/pkg/logger"
)

// Locals key para la identidad resuelta en Fiber.
const LocalIdentity = "identity"

// SessionMiddleware valida la sesión en cada petición usando la puerta de sesión:
// descubre el token (query -> header -> cookie), re-aloja en cookie los tokens
// llegados por URL y deja la Identity resuelta en c.Locals.
// Sin credencial redirige al portal externo; con credencial rechazada limpia la
// cookie y responde 401.
func SessionMiddleware(gate *auth.SessionGate, portalURL string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := auth.Request{
			QueryToken:  c.Query("token"),
			AuthHeader:  c.Get("Authorization"),
			CookieToken: c.Cookies(gate.CookieName()),
			Host:        c.Hostname(),
			Path:        c.Path(),
		}

		res, err := gate.Authenticate(c.Context(), req)
		if err != nil {
			if res != nil && res.SetCookie != nil {
				applyCookie(c, res.SetCookie)
			}
			if errors.Is(err, domain.ErrUnauthenticated) {
				// Sin token no hay nada que validar: de vuelta al portal.
				return c.Redirect(portalURL, fiber.StatusFound)
			}
			log.Warn().Err(err).Str("host", req.Host).Str("path", req.Path).Msg("sesión rechazada")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "SESION_EXPIRADA",
				Message: "Sesión expirada. Por favor, reingrese desde el portal.",
			})
		}

		if res.RedirectTo != "" {
			// Token recién llegado por URL: cookie puesta y redirect a la ruta
			// limpia para no dejar el token en logs ni en el historial.
			applyCookie(c, res.SetCookie)
			return c.Redirect(res.RedirectTo, fiber.StatusFound)
		}

		c.Locals(LocalIdentity, res.Identity)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de sesión).
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return nil
	}
	id, _ := v.(*entity.Identity)
	return id
}

// applyCookie traduce la instrucción de la puerta de sesión a una cookie Fiber.
// Atributos fijos del contrato: HttpOnly, Secure, SameSite=Lax.
func applyCookie(c *fiber.Ctx, instr *auth.CookieInstruction) {
	cookie := &fiber.Cookie{
		Name:     instr.Name,
		Value:    instr.Value,
		Domain:   instr.Domain,
		MaxAge:   instr.MaxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if instr.Clear {
		cookie.Value = ""
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	c.Cookie(cookie)
}
