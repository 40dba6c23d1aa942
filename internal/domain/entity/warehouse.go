package entity

// Warehouse representa un almacén físico (entidad de referencia, tabla almacenes).
type Warehouse struct {
	Key  string // clave_sap, código estable del almacén
	Name string // nombre visible
}
