package devbackend

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
	"github.com/jhoicas/consola-negocios/pkg/jwt"
)

// ── auth ──────────────────────────────────────────────────────────────────────

func (s *Server) login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	u, ok := s.Data.Authenticate(strings.TrimSpace(in.Email), in.Password)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}
	token, err := jwt.Generate(jwt.Issue{
		Secret: s.cfg.Secret, Issuer: s.cfg.Issuer, UserID: u.ID, NegocioID: u.NegocioID, Role: u.Role, TTL: s.cfg.TTL,
	})
	if err != nil {
		return err
	}
	s.log.Info().Int("id_usuario", u.ID).Str("role", u.Role).Msg("login")
	return c.JSON(dto.LoginResponse{Token: token})
}

func (s *Server) profile(c *fiber.Ctx) error {
	u, ok := s.Data.User(userID(c))
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Usuario no encontrado")
	}
	return c.JSON(fiber.Map{"user": u})
}

func (s *Server) register(c *fiber.Ctx) error {
	var in dto.RegisterUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
	}
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if !entity.ValidRole(in.Role) {
		return fail(c, fiber.StatusBadRequest, "Rol inválido")
	}
	if s.Data.EmailTaken(in.Email) {
		return fail(c, fiber.StatusConflict, "El email ya está registrado")
	}
	u := in.User()
	u.Estatus = true
	if u.NegocioID == 0 {
		u.NegocioID = negocioID(c)
	}
	created, err := s.Data.AddUser(u, in.Password)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Contraseña inválida")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Usuario registrado", "user": created})
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"users": s.Data.Users()})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if role(c) != entity.RoleRoot && id != userID(c) {
		return fail(c, fiber.StatusForbidden, "Acceso denegado")
	}
	current, ok := s.Data.User(id)
	if !ok {
		return fail(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if in.Role == "" {
		in.Role = current.Role
	}
	if current.Role == entity.RoleRoot && in.Role != entity.RoleRoot {
		return fail(c, fiber.StatusBadRequest, "No se puede cambiar el rol de un usuario ROOT")
	}
	if role(c) != entity.RoleRoot && in.Role != current.Role {
		return fail(c, fiber.StatusForbidden, "Acceso denegado")
	}
	next := entity.User{
		Nombre:    firstNonEmpty(in.Nombre, current.Nombre),
		Email:     firstNonEmpty(in.Email, current.Email),
		Role:      in.Role,
		Estatus:   current.Estatus,
		NegocioID: in.NegocioID,
	}
	if in.Estatus != nil {
		next.Estatus = *in.Estatus
	}
	if next.NegocioID == 0 {
		next.NegocioID = current.NegocioID
	}
	updated, ok, err := s.Data.UpdateUser(id, next, in.Password)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Contraseña inválida")
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	return c.JSON(fiber.Map{"message": "Perfil actualizado", "user": updated})
}

// ── negocios ──────────────────────────────────────────────────────────────────

func (s *Server) listBusinessCategories(c *fiber.Ctx) error {
	return c.JSON(s.Data.BusinessCategories())
}

func (s *Server) createBusinessCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Nombre) == "" {
		return fail(c, fiber.StatusBadRequest, "El nombre es obligatorio")
	}
	return c.Status(fiber.StatusCreated).JSON(s.Data.AddBusinessCategory(strings.TrimSpace(in.Nombre)))
}

func (s *Server) listBusinesses(c *fiber.Ctx) error {
	return c.JSON(s.Data.Businesses(c.QueryInt("page", 1), c.QueryInt("limit", 10)))
}

func (s *Server) createBusiness(c *fiber.Ctx) error {
	var in entity.Business
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if msg := checkBusiness(in); msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}
	return c.Status(fiber.StatusCreated).JSON(s.Data.AddBusiness(in))
}

func (s *Server) updateBusiness(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var in entity.Business
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if msg := checkBusiness(in); msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}
	b, ok := s.Data.UpdateBusiness(id, in)
	if !ok {
		return fail(c, fiber.StatusNotFound, "Negocio no encontrado")
	}
	return c.JSON(b)
}

func checkBusiness(b entity.Business) string {
	if strings.TrimSpace(b.Nombre) == "" || b.CategoriaID == 0 {
		return "Nombre y categoría son obligatorios"
	}
	if len(strings.TrimSpace(b.Telefono)) != 9 {
		return "El teléfono debe tener 9 dígitos"
	}
	return ""
}

// ── productos ─────────────────────────────────────────────────────────────────

func (s *Server) listProductCategories(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	return c.JSON(s.Data.ProductCategories(id))
}

func (s *Server) createProductCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Nombre) == "" {
		return fail(c, fiber.StatusBadRequest, "El nombre es obligatorio")
	}
	return c.Status(fiber.StatusCreated).JSON(s.Data.AddProductCategory(id, strings.TrimSpace(in.Nombre)))
}

func (s *Server) updateProductCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	catID, err := c.ParamsInt("catId")
	if err != nil || catID <= 0 {
		return fail(c, fiber.StatusBadRequest, "id de categoría inválido")
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Nombre) == "" {
		return fail(c, fiber.StatusBadRequest, "El nombre es obligatorio")
	}
	cat, ok := s.Data.UpdateProductCategory(id, catID, strings.TrimSpace(in.Nombre))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Categoría no encontrada")
	}
	return c.JSON(cat)
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	return c.JSON(s.Data.Products(id, c.QueryInt("page", 1), c.QueryInt("limit", 10), c.Query("search")))
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if strings.TrimSpace(in.Nombre) == "" || in.CategoriaID == 0 {
		return fail(c, fiber.StatusBadRequest, "Nombre y categoría son obligatorios")
	}
	if in.NegocioID == 0 {
		in.NegocioID = negocioID(c)
	}
	if role(c) != entity.RoleRoot && in.NegocioID != negocioID(c) {
		return fail(c, fiber.StatusForbidden, "Acceso denegado")
	}
	in.CreatedBy = userID(c)
	created := s.Data.AddProduct(in)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Producto creado", "data": created})
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	current, ok := s.Data.Product(id)
	if !ok {
		return fail(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	if role(c) != entity.RoleRoot && current.NegocioID != negocioID(c) {
		return fail(c, fiber.StatusForbidden, "Acceso denegado")
	}
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return fail(c, fiber.StatusBadRequest, "El nombre es obligatorio")
	}
	if in.NegocioID == 0 {
		in.NegocioID = current.NegocioID
	}
	if in.CategoriaID == 0 {
		in.CategoriaID = current.CategoriaID
	}
	updated, _ := s.Data.UpdateProduct(id, in)
	return c.JSON(updated)
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
