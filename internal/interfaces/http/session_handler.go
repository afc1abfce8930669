package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/notify"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/domain"
)

// SessionHandler login, logout, estado de la sesión, perfil y avisos.
type SessionHandler struct {
	auth  *usecase.AuthUseCase
	queue *notify.Queue
}

// NewSessionHandler construye el handler.
func NewSessionHandler(auth *usecase.AuthUseCase, queue *notify.Queue) *SessionHandler {
	return &SessionHandler{auth: auth, queue: queue}
}

// Login godoc
// @Summary      Iniciar sesión contra el backend
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.auth.Login(c.UserContext(), in.Email, in.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrTransport) {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_FAILED", Message: usecase.MsgCredenciales})
	}
	return c.JSON(h.state())
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.state())
}

// State godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.state())
}

// Profile godoc
// @Summary      Perfil del operador
// @Tags         session
// @Produce      json
// @Success      200  {object}  entity.User
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *SessionHandler) Profile(c *fiber.Ctx) error {
	p, err := h.auth.EnsureProfile(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// Notifications godoc
// @Summary      Avisos pendientes (se vacían al leerlos)
// @Tags         session
// @Produce      json
// @Success      200  {array}  notify.Notification
// @Router       /api/notifications [get]
func (h *SessionHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.queue.Drain())
}

func (h *SessionHandler) state() dto.SessionResponse {
	role := h.auth.Role()
	return dto.SessionResponse{
		State:         h.auth.State(),
		Authenticated: h.auth.Token() != "",
		Role:          role,
		Profile:       h.auth.Profile(),
	}
}
