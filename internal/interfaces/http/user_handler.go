package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/view"
)

// UserHandler administración de usuarios (solo ROOT).
type UserHandler struct {
	view *view.UsersView
}

// NewUserHandler construye el handler.
func NewUserHandler(v *view.UsersView) *UserHandler {
	return &UserHandler{view: v}
}

// List godoc
// @Summary      Usuarios agrupados por negocio
// @Tags         users
// @Security     Session
// @Produce      json
// @Param        q    query  string  false  "Filtro por nombre o email (ignora tildes)"
// @Success      200  {object}  dto.UsersViewResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	h.view.Filter(c.Query("q"))
	if err := h.view.Open(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view.Response())
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         users
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "Datos del usuario"
// @Success      201   {object}  entity.User
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.view.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return noScope(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Form godoc
// @Summary      Perfil editable de un usuario de la lista cacheada
// @Tags         users
// @Security     Session
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UpdateUserRequest
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Form(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	form, found := h.view.Edit(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado en la lista"})
	}
	return c.JSON(form)
}

// Update godoc
// @Summary      Actualizar perfil de un usuario (los campos omitidos conservan su valor)
// @Tags         users
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos del perfil"
// @Success      200   {object}  entity.User
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateUserRequest
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

// ToggleGroup godoc
// @Summary      Expandir o colapsar el grupo de un negocio
// @Tags         users
// @Security     Session
// @Produce      json
// @Param        negocio  path  int  true  "ID del negocio"
// @Success      200      {object}  dto.UserGroup
// @Router       /api/users/groups/{negocio}/toggle [post]
func (h *UserHandler) ToggleGroup(c *fiber.Ctx) error {
	id, err := c.ParamsInt("negocio")
	if err != nil || id < 0 {
		return invalidID(c)
	}
	expanded := h.view.ToggleGroup(id)
	return c.JSON(fiber.Map{"id_negocio": id, "expanded": expanded})
}
