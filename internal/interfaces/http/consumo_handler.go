package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bersacloud/consumo-api/internal/application/dto"
	"github.com/bersacloud/consumo-api/internal/application/inventory"
	"github.com/bersacloud/consumo-api/internal/application/usecase"
	"github.com/bersacloud/consumo-api/internal/domain"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/pkg/logger"
)

// ConsumoHandler maneja el listado de conciliación y los ajustes de inventario (protegido).
type ConsumoHandler struct {
	scope    *usecase.ScopeUseCase
	recon    *inventory.ReconciliationUseCase
	adjust   *inventory.AdjustmentUseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewConsumoHandler construye el handler.
func NewConsumoHandler(scope *usecase.ScopeUseCase, recon *inventory.ReconciliationUseCase, adjust *inventory.AdjustmentUseCase, log *logger.Logger) *ConsumoHandler {
	return &ConsumoHandler{
		scope:    scope,
		recon:    recon,
		adjust:   adjust,
		validate: validator.New(),
		log:      log,
	}
}

// GetConsumo godoc
// @Summary      Listado de conciliación teórico vs. físico
// @Description  Devuelve las discrepancias del almacén activo junto con los
//
//	almacenes autorizados para la identidad. Un "wh" fuera del
//	conjunto autorizado se ignora y cae al primer almacén permitido.
//
// @Tags         consumo
// @Produce      json
// @Param        wh   query  string  false  "Clave del almacén a consultar"
// @Success      200  {object}  dto.ConsumoResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/consumo [get]
func (h *ConsumoHandler) GetConsumo(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
	}

	scope, err := h.scope.Resolve(c.Context(), identity, c.Query("wh"))
	if err != nil {
		h.log.Error().Err(err).Str("email", identity.Email).Msg("resolver almacenes")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	var rows []entity.ReconciliationRow
	if scope.Active != "" {
		rows, err = h.recon.Discrepancies(c.Context(), scope.Active)
		if err != nil {
			h.log.Error().Err(err).Str("email", identity.Email).Str("almacen", scope.Active).Msg("leer discrepancias")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	return c.JSON(buildConsumoResponse(identity, scope, rows))
}

// ProcesarAjuste godoc
// @Summary      Ajuste por diferencias calculadas (modo delta)
// @Description  Recalcula en servidor las diferencias no nulas del almacén y las
//
//	confirma como movimientos CONSUMO_REAL en una sola transacción.
//
// @Tags         consumo
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "almacen: clave del almacén a ajustar"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/procesar-ajuste [post]
func (h *ConsumoHandler) ProcesarAjuste(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
	}
	var in dto.AjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	if err := h.authorizeWarehouse(c, identity, in.Almacen); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			// Almacén fuera del alcance autorizado: se responde como inexistente,
			// sin revelar si la clave existe para otros usuarios.
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ALMACEN_NO_ENCONTRADO", Message: "almacén no encontrado"})
		}
		h.log.Error().Err(err).Str("email", identity.Email).Str("almacen", in.Almacen).Msg("autorizar almacén")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	if err := h.adjust.CommitDeltas(c.Context(), in.Almacen, identity.Email); err != nil {
		h.log.Error().Err(err).Str("email", identity.Email).Str("almacen", in.Almacen).Msg("procesar ajuste")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "COMMIT_ERROR", Message: err.Error()})
	}

	h.log.Info().Str("email", identity.Email).Str("almacen", in.Almacen).Msg("ajuste por diferencias confirmado")
	return c.JSON(dto.SuccessResponse{Success: true})
}

// ProcesarConteo godoc
// @Summary      Ajuste por conteo físico directo
// @Description  Confirma los conteos enviados por el operador tal cual, un movimiento
//
//	CONTEO_FISICO por entrada, en una sola transacción.
//
// @Tags         consumo
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConteoRequest  true  "almacen y conteos [{codigo, cantidad}]"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/procesar-conteo [post]
func (h *ConsumoHandler) ProcesarConteo(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
	}
	var in dto.ConteoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	if err := h.authorizeWarehouse(c, identity, in.Almacen); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ALMACEN_NO_ENCONTRADO", Message: "almacén no encontrado"})
		}
		h.log.Error().Err(err).Str("email", identity.Email).Str("almacen", in.Almacen).Msg("autorizar almacén")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	entries := make([]inventory.CountEntry, 0, len(in.Conteos))
	for _, ce := range in.Conteos {
		entries = append(entries, inventory.CountEntry{ArticleCode: ce.Codigo, Quantity: ce.Cantidad})
	}

	if err := h.adjust.CommitCounts(c.Context(), in.Almacen, identity.Email, entries); err != nil {
		h.log.Error().Err(err).Str("email", identity.Email).Str("almacen", in.Almacen).Msg("procesar conteo")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "COMMIT_ERROR", Message: err.Error()})
	}

	h.log.Info().Str("email", identity.Email).Str("almacen", in.Almacen).Int("conteos", len(entries)).Msg("conteo físico confirmado")
	return c.JSON(dto.SuccessResponse{Success: true})
}

// authorizeWarehouse re-resuelve el alcance de la identidad y verifica que el
// almacén pedido esté autorizado. Los permisos no se cachean entre peticiones.
func (h *ConsumoHandler) authorizeWarehouse(c *fiber.Ctx, identity *entity.Identity, warehouseKey string) error {
	scope, err := h.scope.Resolve(c.Context(), identity, warehouseKey)
	if err != nil {
		return err
	}
	if !scope.Contains(warehouseKey) {
		return domain.ErrForbidden
	}
	return nil
}

func buildConsumoResponse(identity *entity.Identity, scope *usecase.WarehouseScope, rows []entity.ReconciliationRow) dto.ConsumoResponse {
	resp := dto.ConsumoResponse{
		Usuario: dto.UsuarioDTO{
			Nombre:  identity.Name,
			Email:   identity.Email,
			Oficina: identity.Office,
			Perfil:  string(identity.Tier),
		},
		AlmacenesPermitidos: make([]dto.AlmacenDTO, 0, len(scope.Warehouses)),
		AlmacenActivo:       scope.Active,
		Datos:               make([]dto.ConsumoRowDTO, 0, len(rows)),
	}
	for _, w := range scope.Warehouses {
		resp.AlmacenesPermitidos = append(resp.AlmacenesPermitidos, dto.AlmacenDTO{ClaveSAP: w.Key, Nombre: w.Name})
	}
	for _, r := range rows {
		resp.Datos = append(resp.Datos, dto.ConsumoRowDTO{
			Codigo:       r.ArticleCode,
			Producto:     r.Description,
			Unidad:       r.Unit,
			StockTeorico: r.Theoretical,
			StockFisico:  r.Physical,
			Diferencia:   r.Difference,
		})
	}
	return resp
}
