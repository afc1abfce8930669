package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/view"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// BusinessHandler negocios y categorías de negocio (solo ROOT).
type BusinessHandler struct {
	view *view.BusinessesView
}

// NewBusinessHandler construye el handler.
func NewBusinessHandler(v *view.BusinessesView) *BusinessHandler {
	return &BusinessHandler{view: v}
}

// List godoc
// @Summary      Página de negocios con filtro de categoría
// @Tags         businesses
// @Security     Session
// @Produce      json
// @Param        page       query  int  false  "Página (1-based)"  default(1)
// @Param        categoria  query  int  false  "ID de categoría (0 = todas)"
// @Success      200        {object}  dto.BusinessesViewResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/businesses [get]
func (h *BusinessHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}
	categoria := c.QueryInt("categoria", 0)
	if categoria < 0 {
		categoria = 0
	}
	if err := h.view.Show(c.UserContext(), page, categoria); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view.Response())
}

// Create godoc
// @Summary      Crear negocio
// @Tags         businesses
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Business  true  "Datos del negocio"
// @Success      201   {object}  entity.Business
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/businesses [post]
func (h *BusinessHandler) Create(c *fiber.Ctx) error {
	var in entity.Business
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.view.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return noScope(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar negocio
// @Tags         businesses
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del negocio"
// @Param        body  body  entity.Business  true  "Datos del negocio"
// @Success      200   {object}  entity.Business
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/businesses/{id} [put]
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in entity.Business
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.view.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return noScope(c)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de negocio
// @Tags         businesses
// @Security     Session
// @Produce      json
// @Success      200  {array}  entity.BusinessCategory
// @Router       /api/businesses/categories [get]
func (h *BusinessHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.view.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cats)
}

// CreateCategory godoc
// @Summary      Crear categoría de negocio
// @Tags         businesses
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      201   {object}  entity.BusinessCategory
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/businesses/categories [post]
func (h *BusinessHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.view.CreateCategory(c.UserContext(), in.Nombre)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return noScope(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
