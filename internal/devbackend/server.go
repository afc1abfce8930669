package devbackend

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/domain/entity"
	"github.com/jhoicas/consola-negocios/pkg/jwt"
)

// Locals con los claims del token.
const (
	localUserID    = "user_id"
	localNegocioID = "negocio_id"
	localRole      = "role"
)

// Config emisión de tokens.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Server backend en memoria.
type Server struct {
	App  *fiber.App
	Data *Data
	cfg  Config
	log  zerolog.Logger
}

// New monta las rutas bajo /api con los datos dados.
func New(cfg Config, data *Data, log zerolog.Logger) *Server {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	app := fiber.New(fiber.Config{
		AppName:               "devbackend",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Use(recover.New())

	s := &Server{App: app, Data: data, cfg: cfg, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.App.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", s.login)
	protected := api.Group("/", s.authMiddleware())
	protected.Get("/auth/profile", s.profile)
	protected.Post("/auth/register", requireRoot, s.register)
	protected.Get("/auth/list-users", requireRoot, s.listUsers)
	protected.Put("/auth/profile/:id", s.updateProfile)

	protected.Get("/negocios/categoria", s.listBusinessCategories)
	protected.Post("/negocios/categoria", requireRoot, s.createBusinessCategory)
	protected.Get("/negocios", requireRoot, s.listBusinesses)
	protected.Post("/negocios", requireRoot, s.createBusiness)
	protected.Put("/negocios/:id", requireRoot, s.updateBusiness)

	protected.Get("/productos/negocio/:id/categorias", s.sameNegocio, s.listProductCategories)
	protected.Post("/productos/negocio/:id/categorias", s.sameNegocio, s.createProductCategory)
	protected.Put("/productos/negocio/:id/categorias/:catId", s.sameNegocio, s.updateProductCategory)
	protected.Get("/productos/negocio/:id", s.sameNegocio, s.listProducts)
	protected.Post("/productos", s.createProduct)
	protected.Put("/productos/:id", s.updateProduct)
}

// authMiddleware valida el JWT. El header Authorization se acepta con o sin el prefijo Bearer.
func (s *Server) authMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get("Authorization"))
		if header == "" {
			return fail(c, fiber.StatusUnauthorized, "Token requerido")
		}
		tokenString := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = strings.TrimSpace(parts[1])
		}
		claims, err := jwt.Parse(s.cfg.Secret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "Token inválido o expirado")
		}
		c.Locals(localUserID, claims.UserID)
		c.Locals(localNegocioID, claims.NegocioID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

func requireRoot(c *fiber.Ctx) error {
	if role(c) != entity.RoleRoot {
		return fail(c, fiber.StatusForbidden, "Acceso denegado")
	}
	return c.Next()
}

// sameNegocio el operador solo ve su propio negocio salvo que sea ROOT.
func (s *Server) sameNegocio(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "id de negocio inválido")
	}
	if role(c) != entity.RoleRoot && id != negocioID(c) {
		return fail(c, fiber.StatusForbidden, "Acceso denegado")
	}
	return c.Next()
}

func userID(c *fiber.Ctx) int {
	v, _ := c.Locals(localUserID).(int)
	return v
}

func negocioID(c *fiber.Ctx) int {
	v, _ := c.Locals(localNegocioID).(int)
	return v
}

func role(c *fiber.Ctx) string {
	v, _ := c.Locals(localRole).(string)
	return v
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
