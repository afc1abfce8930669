package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// El backend espera precio y stock como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout formato de fecha de expiración en formularios y en el cuerpo enviado.
const DateLayout = "2006-01-02"

// Date fecha sin hora. Acepta "2006-01-02" y RFC3339 al deserializar.
type Date struct {
	time.Time
}

// NewDate trunca t al día en su zona.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate interpreta "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// CategoryRef nombre de la categoría anidada en la respuesta de producto.
type CategoryRef struct {
	Nombre string `json:"nombre"`
}

// Product producto de un negocio, agrupado en una categoría de producto.
type Product struct {
	ID              int             `json:"id_producto,omitempty"`
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion"`
	SKU             *string         `json:"sku"`
	Precio          decimal.Decimal `json:"precio"`
	Stock           decimal.Decimal `json:"stock"`
	TipoUnidad      string          `json:"tipo_unidad"`
	Estatus         bool            `json:"estatus"`
	FechaExpiracion *Date           `json:"fecha_expiracion"`
	NegocioID       int             `json:"id_negocio,omitempty"`
	CategoriaID     int             `json:"id_categoria_producto,omitempty"`
	Categoria       *CategoryRef    `json:"categoriaProducto,omitempty"`
	CreatedBy       int             `json:"createdBy,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// SKUOrEmpty sku o "" si es nulo.
func (p Product) SKUOrEmpty() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}

// ProductCategory categoría de producto, propia de un negocio.
type ProductCategory struct {
	ID        int    `json:"id_categoria_producto,omitempty"`
	NegocioID int    `json:"id_negocio,omitempty"`
	Nombre    string `json:"nombre"`
}
