package entity

import "github.com/shopspring/decimal"

// ReconciliationRow discrepancia por artículo entre stock teórico y físico.
// Se calcula al leer (vista_calculo_consumo); nunca se persiste como entidad propia.
// Las filas con ambos stocks en cero se suprimen en la consulta.
type ReconciliationRow struct {
	ArticleCode string          // codigo_general
	Description string          // producto
	Unit        string          // unidad
	Theoretical decimal.Decimal // stock_teorico
	Physical    decimal.Decimal // stock_fisico
	Difference  decimal.Decimal // stock_fisico - stock_teorico
}
