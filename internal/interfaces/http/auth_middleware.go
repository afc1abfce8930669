package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/domain"
)

// LocalRole rol de la sesión en c.Locals.
const LocalRole = "role"

// sessionReader lo implementa *store.SessionStore.
type sessionReader interface {
	Snapshot() store.Session
}

// RequireSession corta con 401 NO_SESSION si no hay sesión y deja el rol en c.Locals.
func RequireSession(sess sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := sess.Snapshot()
		if !s.Authenticated() {
			return respondError(c, domain.ErrNoSession)
		}
		c.Locals(LocalRole, s.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo los roles dados. Debe ir después de RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Acceso denegado"})
	}
}

// GetRole devuelve el rol del contexto (después de RequireSession).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
