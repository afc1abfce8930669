package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/view"
)

// PreferencesHandler tema de la consola (no requiere sesión).
type PreferencesHandler struct {
	theme *view.Theme
}

func NewPreferencesHandler(theme *view.Theme) *PreferencesHandler {
	return &PreferencesHandler{theme: theme}
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type systemThemeRequest struct {
	Dark bool `json:"dark"`
}

// Theme godoc
// @Summary      Tema actual
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  view.ThemeState
// @Router       /api/preferences/theme [get]
func (h *PreferencesHandler) Theme(c *fiber.Ctx) error {
	return c.JSON(h.theme.State())
}

// SetTheme godoc
// @Summary      Guardar tema (light, dark o system)
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Success      200  {object}  view.ThemeState
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/preferences/theme [put]
func (h *PreferencesHandler) SetTheme(c *fiber.Ctx) error {
	var in themeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	st, err := h.theme.Set(in.Theme)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// SystemTheme godoc
// @Summary      Aviso de cambio del tema del sistema operativo
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Success      200  {object}  view.ThemeState
// @Router       /api/preferences/theme/system [put]
func (h *PreferencesHandler) SystemTheme(c *fiber.Ctx) error {
	var in systemThemeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.theme.SystemPreferenceChanged(in.Dark))
}
