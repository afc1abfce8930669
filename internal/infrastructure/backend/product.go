package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// ListProducts GET /productos/negocio/:id?page&limit&search.
// Una búsqueda vacía no se envía.
func (c *Client) ListProducts(ctx context.Context, token string, negocioID int, in dto.ProductQuery) (*entity.Page[entity.Product], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(in.Page))
	q.Set("limit", strconv.Itoa(in.Limit))
	if s := strings.TrimSpace(in.Search); s != "" {
		q.Set("search", s)
	}

	var out entity.Page[entity.Product]
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "/productos/negocio/:id",
		path:     fmt.Sprintf("/productos/negocio/%d", negocioID),
		query:    q,
		token:    token,
		fallback: "Error al obtener productos",
	}, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []entity.Product{}
	}
	return &out, nil
}

// ListProductCategories GET /productos/negocio/:id/categorias.
func (c *Client) ListProductCategories(ctx context.Context, token string, negocioID int) ([]entity.ProductCategory, error) {
	out := []entity.ProductCategory{}
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "/productos/negocio/:id/categorias",
		path:     fmt.Sprintf("/productos/negocio/%d/categorias", negocioID),
		token:    token,
		fallback: "Error al obtener categorías",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProductCategory POST /productos/negocio/:id/categorias {nombre}.
func (c *Client) CreateProductCategory(ctx context.Context, token string, negocioID int, nombre string) (*entity.ProductCategory, error) {
	var out entity.ProductCategory
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/productos/negocio/:id/categorias",
		path:     fmt.Sprintf("/productos/negocio/%d/categorias", negocioID),
		token:    token,
		body:     dto.CategoryRequest{Nombre: nombre},
		fallback: "Error al crear la categoría",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProductCategory PUT /productos/negocio/:id/categorias/:catId {nombre}.
func (c *Client) UpdateProductCategory(ctx context.Context, token string, negocioID, categoriaID int, nombre string) (*entity.ProductCategory, error) {
	var out entity.ProductCategory
	if err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "/productos/negocio/:id/categorias/:catId",
		path:     fmt.Sprintf("/productos/negocio/%d/categorias/%d", negocioID, categoriaID),
		token:    token,
		body:     dto.CategoryRequest{Nombre: nombre},
		fallback: "Error al actualizar la categoría",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct POST /productos.
func (c *Client) CreateProduct(ctx context.Context, token string, p entity.Product) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/productos",
		path:     "/productos",
		token:    token,
		body:     p,
		fallback: "Error al crear el producto",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct PUT /productos/:id.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int, p entity.Product) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "/productos/:id",
		path:     fmt.Sprintf("/productos/%d", id),
		token:    token,
		body:     p,
		fallback: "Error al actualizar el producto",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
