package view

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Moneda prefijo de precios.
const Moneda = "S/"

// Formatter celdas de texto de la tabla de productos (separadores en español).
type Formatter struct {
	p *message.Printer
}

// NewFormatter formateador para tag; language.Und usa español.
func NewFormatter(tag language.Tag) Formatter {
	if tag == language.Und {
		tag = language.Spanish
	}
	return Formatter{p: message.NewPrinter(tag)}
}

// Price "S/ 3,90".
func (f Formatter) Price(d decimal.Decimal) string {
	return Moneda + " " + f.p.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// Quantity stock con su unidad: "12 und".
func (f Formatter) Quantity(d decimal.Decimal, unidad string) string {
	s := f.p.Sprintf("%v", number.Decimal(d.InexactFloat64()))
	if unidad == "" {
		return s
	}
	return s + " " + unidad
}

// Date dd/mm/aaaa o vacío.
func (f Formatter) Date(d *entity.Date) string {
	if d == nil {
		return ""
	}
	return d.Format("02/01/2006")
}

// Status etiqueta de estatus.
func (f Formatter) Status(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}

// Cell texto de la columna key para p; categoria ya resuelta por el llamador.
func (f Formatter) Cell(p entity.Product, key, categoria string) string {
	switch key {
	case ColNombre:
		return p.Nombre
	case ColDescripcion:
		return p.Descripcion
	case ColSKU:
		return p.SKUOrEmpty()
	case ColPrecio:
		return f.Price(p.Precio)
	case ColStock:
		return f.Quantity(p.Stock, p.TipoUnidad)
	case ColCategoria:
		return categoria
	case ColEstatus:
		return f.Status(p.Estatus)
	case ColFechaExpiracion:
		return f.Date(p.FechaExpiracion)
	}
	return ""
}
