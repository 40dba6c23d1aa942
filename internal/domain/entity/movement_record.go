package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas de origen de un movimiento (modos de ajuste, nunca mezclados en un mismo lote).
const (
	// OriginComputedDelta ajuste calculado por el sistema a partir de la vista de consumo.
	OriginComputedDelta = "CONSUMO_REAL"
	// OriginPhysicalCount conteo físico enviado tal cual por el operador.
	OriginPhysicalCount = "CONTEO_FISICO"
)

// MovementRecord movimiento de inventario append-only (tabla movimientos_inventario).
// Cantidad con signo: negativa denota reducción. Nunca se actualiza ni se borra.
type MovementRecord struct {
	ID            string
	Origin        string          // origen_web
	WarehouseKey  string          // codigo_almacen
	ArticleCode   string          // codigo_articulo
	Quantity      decimal.Decimal // cantidad_enviada
	OperatorEmail string
	CreatedAt     time.Time
}
