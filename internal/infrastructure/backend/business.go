package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// ListBusinesses GET /negocios?page&limit → {total, page, limit, data}.
func (c *Client) ListBusinesses(ctx context.Context, token string, page, limit int) (*entity.Page[entity.Business], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out entity.Page[entity.Business]
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "/negocios",
		path:     "/negocios",
		query:    q,
		token:    token,
		fallback: "Error al obtener los negocios",
	}, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []entity.Business{}
	}
	return &out, nil
}

// ListBusinessCategories GET /negocios/categoria → arreglo.
func (c *Client) ListBusinessCategories(ctx context.Context, token string) ([]entity.BusinessCategory, error) {
	out := []entity.BusinessCategory{}
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "/negocios/categoria",
		path:     "/negocios/categoria",
		token:    token,
		fallback: "Error al obtener categorías",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBusinessCategory POST /negocios/categoria {nombre}.
func (c *Client) CreateBusinessCategory(ctx context.Context, token, nombre string) (*entity.BusinessCategory, error) {
	var out entity.BusinessCategory
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/negocios/categoria",
		path:     "/negocios/categoria",
		token:    token,
		body:     dto.CategoryRequest{Nombre: nombre},
		fallback: "Error al crear la categoría",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBusiness POST /negocios.
func (c *Client) CreateBusiness(ctx context.Context, token string, b entity.Business) (*entity.Business, error) {
	var out entity.Business
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "/negocios",
		path:     "/negocios",
		token:    token,
		body:     b,
		fallback: "Error al crear el negocio",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBusiness PUT /negocios/:id.
func (c *Client) UpdateBusiness(ctx context.Context, token string, id int, b entity.Business) (*entity.Business, error) {
	var out entity.Business
	if err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "/negocios/:id",
		path:     fmt.Sprintf("/negocios/%d", id),
		token:    token,
		body:     b,
		fallback: "Error al actualizar el negocio",
		fields:   []string{"data"},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
