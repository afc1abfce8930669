package entity

// Roles válidos para User. ROOT ve todos los negocios y usuarios.
const (
	RoleRoot  = "ROOT"
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleRoot, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// NegocioRef nombre del negocio anidado en la respuesta de usuario.
type NegocioRef struct {
	Nombre string `json:"nombre"`
}

// User usuario del backend; pertenece a un negocio (id_negocio).
type User struct {
	ID        int         `json:"id_usuario,omitempty"`
	Nombre    string      `json:"nombre"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	Estatus   bool        `json:"estatus"`
	NegocioID int         `json:"id_negocio"`
	Negocio   *NegocioRef `json:"negocio,omitempty"`
}

// NegocioNombre nombre del negocio o vacío si el backend no lo anidó.
func (u User) NegocioNombre() string {
	if u.Negocio == nil {
		return ""
	}
	return u.Negocio.Nombre
}
