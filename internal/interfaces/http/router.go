package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/bersacloud/consumo-api/internal/application/auth"
	"github.com/bersacloud/consumo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gate      *auth.SessionGate
	Consumo   *ConsumoHandler
	PortalURL string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Raíz: entrada desde el portal. Si trae token se arrastra a /api/consumo
	// para que el middleware lo re-aloje en cookie.
	app.Get("/", func(c *fiber.Ctx) error {
		if token := c.Query("token"); token != "" {
			return c.Redirect("/api/consumo?token=" + url.QueryEscape(token))
		}
		return c.Redirect("/api/consumo")
	})

	// Rutas protegidas por la puerta de sesión.
	api := app.Group("/api", SessionMiddleware(deps.Gate, deps.PortalURL, deps.Log))
	api.Get("/consumo", deps.Consumo.GetConsumo)
	api.Post("/procesar-ajuste", deps.Consumo.ProcesarAjuste)
	api.Post("/procesar-conteo", deps.Consumo.ProcesarConteo)
}
