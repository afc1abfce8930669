package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/application/view"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-negocios/pkg/clock"
)

// ProductHandler vista de productos del negocio del operador (requiere sesión).
type ProductHandler struct {
	view     *view.ProductsView
	auth     *usecase.AuthUseCase
	exporter *pdf.ProductsExporter
	clock    clock.Clock
}

// NewProductHandler construye el handler.
func NewProductHandler(v *view.ProductsView, auth *usecase.AuthUseCase, exporter *pdf.ProductsExporter, clk clock.Clock) *ProductHandler {
	return &ProductHandler{view: v, auth: auth, exporter: exporter, clock: clk}
}

// List godoc
// @Summary      Página de productos
// @Tags         products
// @Produce      json
// @Param        page    query  int     false  "Página (1-based)"  default(1)
// @Param        search  query  string  false  "Búsqueda por nombre o SKU"
// @Success      200     {object}  dto.ProductsViewResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}
	if err := h.view.Show(c.UserContext(), page, c.Query("search")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view.Response())
}

// Form godoc
// @Summary      Copia editable de un producto de la página actual
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductForm
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Form(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	form, found := h.view.Edit(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado en la página actual"})
	}
	return c.JSON(form)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductForm  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductForm
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
// @Summary      Actualizar producto y refrescar la página actual
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del producto"
// @Param        body  body  dto.ProductForm  true  "Campos editados"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.ProductForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.view.SubmitEdit(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return noScope(c)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de producto del negocio
// @Tags         products
// @Produce      json
// @Success      200  {array}  entity.ProductCategory
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.view.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cats)
}

// CreateCategory godoc
// @Summary      Crear categoría de producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      201   {object}  entity.ProductCategory
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/categories [post]
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
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

// UpdateCategory godoc
// @Summary      Renombrar categoría de producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      200   {object}  entity.ProductCategory
// @Router       /api/products/categories/{id} [put]
func (h *ProductHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.view.UpdateCategory(c.UserContext(), id, in.Nombre)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return noScope(c)
	}
	return c.JSON(out)
}

// Columns godoc
// @Summary      Columnas de la tabla y su visibilidad
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ColumnState
// @Router       /api/products/columns [get]
func (h *ProductHandler) Columns(c *fiber.Ctx) error {
	return c.JSON(h.view.Columns())
}

// ToggleColumn godoc
// @Summary      Mostrar u ocultar una columna (se guarda en el almacén local)
// @Tags         products
// @Produce      json
// @Param        column  path  string  true  "Clave de la columna"
// @Success      200     {array}  dto.ColumnState
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products/columns/{column} [put]
func (h *ProductHandler) ToggleColumn(c *fiber.Ctx) error {
	out, err := h.view.ToggleColumn(c.Params("column"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      PDF de la página actual con las columnas visibles
// @Tags         products
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/export.pdf [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	header, rows := h.view.Table()
	report := pdf.ProductsReport{
		Search:      h.view.SearchText(),
		Pagination:  h.view.Pagination(),
		Header:      header,
		Rows:        rows,
		GeneratedAt: h.clock.Now(),
	}
	if p := h.auth.Profile(); p != nil {
		report.Negocio = p.NegocioNombre()
	}
	doc, err := h.exporter.Export(c.UserContext(), report)
	if err != nil {
		if errors.Is(err, pdf.ErrSinColumnas) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_COLUMNS", Message: "No hay columnas visibles para exportar"})
		}
		return respondError(c, err)
	}
	name := "productos-" + h.clock.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(doc)
}

func noScope(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SCOPE", Message: "No se pudo determinar el negocio del operador"})
}
