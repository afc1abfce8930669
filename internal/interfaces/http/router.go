package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/application/notify"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/application/view"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-negocios/pkg/clock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session       *store.SessionStore
	AuthUC        *usecase.AuthUseCase
	Products      *view.ProductsView
	Businesses    *view.BusinessesView
	Users         *view.UsersView
	Theme         *view.Theme
	Notifications *notify.Queue
	Exporter      *pdf.ProductsExporter
	Clock         clock.Clock
}

// Router registra las rutas de la consola. /login y las preferencias son públicas;
// /profile y /products piden sesión; negocios y usuarios piden rol ROOT.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.AuthUC, deps.Notifications)
	api.Post("/session/login", sessionHandler.Login)
	api.Post("/session/logout", sessionHandler.Logout)
	api.Get("/session", sessionHandler.State)
	api.Get("/notifications", sessionHandler.Notifications)

	// Preferencias (público)
	prefs := NewPreferencesHandler(deps.Theme)
	api.Get("/preferences/theme", prefs.Theme)
	api.Put("/preferences/theme", prefs.SetTheme)
	api.Put("/preferences/theme/system", prefs.SystemTheme)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", RequireSession(deps.Session))
	protected.Get("/profile", sessionHandler.Profile)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Products, deps.AuthUC, deps.Exporter, deps.Clock)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/categories", productHandler.Categories)
	products.Post("/categories", productHandler.CreateCategory)
	products.Put("/categories/:id", productHandler.UpdateCategory)
	products.Get("/columns", productHandler.Columns)
	products.Put("/columns/:column", productHandler.ToggleColumn)
	products.Get("/export.pdf", productHandler.Export)
	products.Get("/:id", productHandler.Form)
	products.Put("/:id", productHandler.Update)

	// Solo ROOT
	root := protected.Group("/", RequireRole(entity.RoleRoot))

	businesses := root.Group("/businesses")
	businessHandler := NewBusinessHandler(deps.Businesses)
	businesses.Get("/", businessHandler.List)
	businesses.Post("/", businessHandler.Create)
	businesses.Get("/categories", businessHandler.Categories)
	businesses.Post("/categories", businessHandler.CreateCategory)
	businesses.Put("/:id", businessHandler.Update)

	users := root.Group("/users")
	userHandler := NewUserHandler(deps.Users)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Register)
	users.Get("/:id", userHandler.Form)
	users.Put("/:id", userHandler.Update)
	users.Post("/groups/:negocio/toggle", userHandler.ToggleGroup)
}
