package entity

// AccessTier nivel de autorización derivado de los atributos de identidad.
type AccessTier string

const (
	// TierCorporate ve todos los almacenes del sistema.
	TierCorporate AccessTier = "CORPORATIVO"
	// TierStandard solo ve los almacenes con permiso explícito en usuario_almacenes.
	TierStandard AccessTier = "ESTANDAR"
)

// Identity identidad resuelta contra el proveedor externo para una petición.
// Inmutable una vez resuelta; no se persiste más allá de la vida de la cookie.
type Identity struct {
	Name   string
	Email  string // en minúsculas, clave canónica para los permisos
	Office string // officeLocation reportado por el proveedor
	Tier   AccessTier
}

// IsCorporate indica si la identidad pertenece al perfil corporativo.
func (i Identity) IsCorporate() bool {
	return i.Tier == TierCorporate
}
