package dto

import "github.com/shopspring/decimal"

// UsuarioDTO identidad resuelta, tal como la ve el cliente.
type UsuarioDTO struct {
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	Oficina string `json:"oficina"`
	Perfil  string `json:"perfil"`
}

// AlmacenDTO almacén autorizado en la respuesta de consumo.
type AlmacenDTO struct {
	ClaveSAP string `json:"clave_sap"`
	Nombre   string `json:"nombre"`
}

// ConsumoRowDTO fila de conciliación teórico vs. físico de un artículo.
type ConsumoRowDTO struct {
	Codigo       string          `json:"codigo"`
	Producto     string          `json:"producto"`
	Unidad       string          `json:"unidad"`
	StockTeorico decimal.Decimal `json:"stock_teorico"`
	StockFisico  decimal.Decimal `json:"stock_fisico"`
	Diferencia   decimal.Decimal `json:"diferencia"`
}

// ConsumoResponse listado de discrepancias más el contexto de autorización:
// almacenes permitidos y selección activa.
type ConsumoResponse struct {
	Usuario             UsuarioDTO      `json:"usuario"`
	AlmacenesPermitidos []AlmacenDTO    `json:"almacenes_permitidos"`
	AlmacenActivo       string          `json:"almacen_activo"`
	Datos               []ConsumoRowDTO `json:"datos"`
}

// AjusteRequest cuerpo de POST /procesar-ajuste (modo delta, calculado en servidor).
type AjusteRequest struct {
	Almacen string `json:"almacen" validate:"required"`
}

// ConteoEntryDTO un conteo de artículo enviado por el operador.
// La cantidad puede venir ya con signo para denotar reducción.
type ConteoEntryDTO struct {
	Codigo   string          `json:"codigo" validate:"required"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

// ConteoRequest cuerpo de POST /procesar-conteo (modo conteo directo).
type ConteoRequest struct {
	Almacen string           `json:"almacen" validate:"required"`
	Conteos []ConteoEntryDTO `json:"conteos" validate:"required,min=1,dive"`
}
