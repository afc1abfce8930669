package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// ProductQuery parámetros de GET /productos/negocio/:id.
type ProductQuery struct {
	Page   int
	Limit  int
	Search string
}

// ProductForm formulario de alta/edición de producto tal como llega de la consola.
// FechaExpiracion en formato 2006-01-02; vacío = sin fecha.
type ProductForm struct {
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion"`
	SKU             *string         `json:"sku"`
	Precio          decimal.Decimal `json:"precio"`
	Stock           decimal.Decimal `json:"stock"`
	TipoUnidad      string          `json:"tipo_unidad"`
	Estatus         *bool           `json:"estatus"`
	FechaExpiracion string          `json:"fecha_expiracion"`
	CategoriaID     int             `json:"id_categoria_producto"`
	NegocioID       int             `json:"id_negocio"`
}

// Product convierte el formulario en entidad. Estatus ausente = activo; un sku en blanco viaja como null.
func (f ProductForm) Product() (entity.Product, error) {
	p := entity.Product{
		Nombre:      strings.TrimSpace(f.Nombre),
		Descripcion: f.Descripcion,
		Precio:      f.Precio,
		Stock:       f.Stock,
		TipoUnidad:  f.TipoUnidad,
		Estatus:     true,
		NegocioID:   f.NegocioID,
		CategoriaID: f.CategoriaID,
	}
	if f.Estatus != nil {
		p.Estatus = *f.Estatus
	}
	if f.SKU != nil && strings.TrimSpace(*f.SKU) != "" {
		sku := strings.TrimSpace(*f.SKU)
		p.SKU = &sku
	}
	if s := strings.TrimSpace(f.FechaExpiracion); s != "" {
		d, err := entity.ParseDate(s)
		if err != nil {
			return entity.Product{}, domain.Invalid("fecha_expiracion", "Fecha de expiración inválida")
		}
		p.FechaExpiracion = &d
	}
	return p, nil
}

// FormFromProduct copia editable de un producto (modal de edición).
func FormFromProduct(p entity.Product) ProductForm {
	estatus := p.Estatus
	f := ProductForm{
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		TipoUnidad:  p.TipoUnidad,
		Estatus:     &estatus,
		CategoriaID: p.CategoriaID,
		NegocioID:   p.NegocioID,
	}
	if p.SKU != nil {
		sku := *p.SKU
		f.SKU = &sku
	}
	if p.FechaExpiracion != nil {
		f.FechaExpiracion = p.FechaExpiracion.String()
	}
	return f
}

// ProductRow fila de la tabla de productos: solo las columnas visibles traen valor.
type ProductRow struct {
	ID    int               `json:"id_producto"`
	Cells map[string]string `json:"cells"`
}

// ProductsViewResponse vista de productos (página actual + estado de UI).
type ProductsViewResponse struct {
	Search     string                   `json:"search,omitempty"`
	Pagination PageView                 `json:"pagination"`
	Columns    []ColumnState            `json:"columns"`
	Rows       []ProductRow             `json:"rows"`
	Categories []entity.ProductCategory `json:"categories"`
	Loading    bool                     `json:"loading"`
	Error      string                   `json:"error,omitempty"`
}

// ColumnState visibilidad de una columna de la tabla de productos.
type ColumnState struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}
