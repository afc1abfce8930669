package ports

import (
	"context"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Puertos de salida hacia el backend REST. Cada método hace una sola llamada HTTP
// con el token dado y devuelve el payload ya desempaquetado o un *domain.APIError.

// AuthGateway login y perfil.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	// Profile devuelve domain.ErrSessionExpired si el backend responde 401.
	Profile(ctx context.Context, token string) (*entity.User, error)
}

// UserGateway administración de usuarios.
type UserGateway interface {
	RegisterUser(ctx context.Context, token string, in dto.RegisterUserRequest) (*entity.User, error)
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
	UpdateProfile(ctx context.Context, token string, userID int, in dto.UpdateUserRequest) (*entity.User, error)
}

// BusinessGateway negocios y sus categorías.
type BusinessGateway interface {
	ListBusinesses(ctx context.Context, token string, page, limit int) (*entity.Page[entity.Business], error)
	ListBusinessCategories(ctx context.Context, token string) ([]entity.BusinessCategory, error)
	CreateBusinessCategory(ctx context.Context, token, nombre string) (*entity.BusinessCategory, error)
	CreateBusiness(ctx context.Context, token string, b entity.Business) (*entity.Business, error)
	UpdateBusiness(ctx context.Context, token string, id int, b entity.Business) (*entity.Business, error)
}

// ProductGateway productos y categorías de producto de un negocio.
type ProductGateway interface {
	ListProducts(ctx context.Context, token string, negocioID int, q dto.ProductQuery) (*entity.Page[entity.Product], error)
	ListProductCategories(ctx context.Context, token string, negocioID int) ([]entity.ProductCategory, error)
	CreateProductCategory(ctx context.Context, token string, negocioID int, nombre string) (*entity.ProductCategory, error)
	UpdateProductCategory(ctx context.Context, token string, negocioID, categoriaID int, nombre string) (*entity.ProductCategory, error)
	CreateProduct(ctx context.Context, token string, p entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, token string, id int, p entity.Product) (*entity.Product, error)
}

// Backend agrupa todos los gateways (lo implementa infrastructure/backend.Client).
type Backend interface {
	AuthGateway
	UserGateway
	BusinessGateway
	ProductGateway
}
