package dto

import (
	"strings"

	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// LoginRequest credenciales para POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido por el backend.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterUserRequest alta de usuario (POST /auth/register).
type RegisterUserRequest struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	NegocioID int    `json:"id_negocio"`
}

// User vista de entidad sin password.
func (r RegisterUserRequest) User() entity.User {
	return entity.User{Nombre: r.Nombre, Email: r.Email, Role: r.Role, NegocioID: r.NegocioID}
}

// UpdateUserRequest edición de perfil (PUT /auth/profile/:id). Password vacío = sin cambio;
// Estatus nil = sin cambio.
type UpdateUserRequest struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Estatus   *bool  `json:"estatus,omitempty"`
	NegocioID int    `json:"id_negocio"`
	Password  string `json:"password,omitempty"`
}

// UpdateFromUser copia editable de un usuario.
func UpdateFromUser(u entity.User) UpdateUserRequest {
	estatus := u.Estatus
	return UpdateUserRequest{
		Nombre:    u.Nombre,
		Email:     u.Email,
		Role:      u.Role,
		Estatus:   &estatus,
		NegocioID: u.NegocioID,
	}
}

// Apply aplica los campos enviados sobre el usuario actual. Vacío, cero o nil conserva
// el valor actual.
func (r UpdateUserRequest) Apply(current entity.User) UpdateUserRequest {
	out := UpdateFromUser(current)
	if s := strings.TrimSpace(r.Nombre); s != "" {
		out.Nombre = s
	}
	if s := strings.TrimSpace(r.Email); s != "" {
		out.Email = s
	}
	if r.Role != "" {
		out.Role = r.Role
	}
	if r.Estatus != nil {
		estatus := *r.Estatus
		out.Estatus = &estatus
	}
	if r.NegocioID != 0 {
		out.NegocioID = r.NegocioID
	}
	out.Password = r.Password
	return out
}

// SessionResponse estado de la sesión de la consola.
type SessionResponse struct {
	State         string       `json:"state"`
	Authenticated bool         `json:"authenticated"`
	Role          string       `json:"role,omitempty"`
	Profile       *entity.User `json:"profile,omitempty"`
}

// UserGroup usuarios de un mismo negocio en la vista de usuarios.
type UserGroup struct {
	NegocioID int           `json:"id_negocio"`
	Negocio   string        `json:"negocio"`
	Expanded  bool          `json:"expanded"`
	Users     []entity.User `json:"users"`
}

// UsersViewResponse vista de usuarios agrupados por negocio.
type UsersViewResponse struct {
	Query   string      `json:"query,omitempty"`
	Loading bool        `json:"loading"`
	Error   string      `json:"error,omitempty"`
	Groups  []UserGroup `json:"groups"`
}
