package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// TelefonoLength longitud exacta del teléfono de un negocio.
const TelefonoLength = 9

// Mensajes de validación mostrados al operador.
const (
	MsgCamposRequeridos = "Por favor, completa todos los campos requeridos"
	MsgTelefono         = "Porfavor el telefono debe ser 9 digitos"
	MsgCategoriaNombre  = "Ingresa el nombre de la categoría"
	MsgNegocioSinID     = "No se puede actualizar un negocio sin ID."
	MsgProductoCampos   = "Por favor, completa todos los campos obligatorios."
	MsgFechaExpiracion  = "La fecha de expiración no puede ser anterior a la fecha actual."
	MsgUsuarioCampos    = "Nombre, email y contraseña son obligatorios"
	MsgPerfilCampos     = "Nombre y email son obligatorios"
	MsgUsuarioNoExiste  = "Usuario no encontrado"
	MsgRolInvalido      = "Rol inválido"
	MsgRolRootInmutable = "No se puede cambiar el rol de un usuario ROOT"
	MsgPrecioNegativo   = "El precio y el stock no pueden ser negativos"
)

// ValidateCategoryName exige un nombre no vacío.
func ValidateCategoryName(nombre string) error {
	if strings.TrimSpace(nombre) == "" {
		return Invalid("nombre", MsgCategoriaNombre)
	}
	return nil
}

// ValidateBusiness campos requeridos y teléfono de exactamente 9 caracteres.
func ValidateBusiness(b entity.Business) error {
	if strings.TrimSpace(b.Nombre) == "" || strings.TrimSpace(b.Propietario) == "" ||
		strings.TrimSpace(b.Direccion) == "" || b.CategoriaID == 0 {
		return Invalid("negocio", MsgCamposRequeridos)
	}
	tel := strings.TrimSpace(b.Telefono)
	if tel == "" || len(tel) != TelefonoLength {
		return Invalid("telefono", MsgTelefono)
	}
	return nil
}

// ValidateExpiry rechaza fechas anteriores al día de hoy (medianoche local de now).
func ValidateExpiry(fecha *entity.Date, now time.Time) error {
	if fecha == nil {
		return nil
	}
	y, m, d := fecha.Date()
	dia := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if dia.Before(entity.NewDate(now).Time) {
		return Invalid("fecha_expiracion", MsgFechaExpiracion)
	}
	return nil
}

// ValidateNewProduct nombre, precio, stock y categoría obligatorios; expiración no pasada.
func ValidateNewProduct(p entity.Product, now time.Time) error {
	if strings.TrimSpace(p.Nombre) == "" || !p.Precio.GreaterThan(decimal.Zero) ||
		!p.Stock.GreaterThan(decimal.Zero) || p.CategoriaID == 0 {
		return Invalid("producto", MsgProductoCampos)
	}
	return ValidateExpiry(p.FechaExpiracion, now)
}

// ValidateProductUpdate la edición admite stock 0 pero no valores negativos.
func ValidateProductUpdate(p entity.Product, now time.Time) error {
	if strings.TrimSpace(p.Nombre) == "" {
		return Invalid("nombre", MsgProductoCampos)
	}
	if p.Precio.IsNegative() || p.Stock.IsNegative() {
		return Invalid("precio", MsgPrecioNegativo)
	}
	return ValidateExpiry(p.FechaExpiracion, now)
}

// ValidateNewUser nombre, email y password obligatorios; rol conocido.
func ValidateNewUser(u entity.User, password string) error {
	if strings.TrimSpace(u.Nombre) == "" || strings.TrimSpace(u.Email) == "" || password == "" {
		return Invalid("usuario", MsgUsuarioCampos)
	}
	if !entity.ValidRole(u.Role) {
		return Invalid("role", MsgRolInvalido)
	}
	return nil
}

// ValidateUserUpdate nombre y email no pueden quedar vacíos; rol conocido.
func ValidateUserUpdate(u entity.User) error {
	if strings.TrimSpace(u.Nombre) == "" || strings.TrimSpace(u.Email) == "" {
		return Invalid("usuario", MsgPerfilCampos)
	}
	if !entity.ValidRole(u.Role) {
		return Invalid("role", MsgRolInvalido)
	}
	return nil
}
