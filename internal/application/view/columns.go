package view

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/domain"
)

// Columnas de la tabla de productos.
const (
	ColNombre          = "nombre"
	ColDescripcion     = "descripcion"
	ColSKU             = "sku"
	ColPrecio          = "precio"
	ColStock           = "stock"
	ColCategoria       = "categoria"
	ColEstatus         = "estatus"
	ColFechaExpiracion = "fecha_expiracion"
)

// MsgColumnaDesconocida columna que no existe en la tabla.
const MsgColumnaDesconocida = "Columna desconocida"

// Column columna de la tabla de productos.
type Column struct {
	Key   string
	Label string
	// Default visible si el operador nunca la tocó.
	Default bool
}

// ProductColumns columnas en orden de presentación.
var ProductColumns = []Column{
	{Key: ColNombre, Label: "Producto", Default: true},
	{Key: ColDescripcion, Label: "Descripción", Default: true},
	{Key: ColSKU, Label: "SKU", Default: true},
	{Key: ColPrecio, Label: "Precio", Default: true},
	{Key: ColStock, Label: "Stock", Default: true},
	{Key: ColCategoria, Label: "Categoría", Default: true},
	{Key: ColEstatus, Label: "Estatus"},
	{Key: ColFechaExpiracion, Label: "Vencimiento"},
}

// ColumnPrefs visibilidad de columnas persistida en el almacén local bajo
// ports.KeyProductColumns. No depende de la sesión: sobrevive logout y reinicios.
type ColumnPrefs struct {
	mu      sync.Mutex
	kv      ports.KeyValueStore
	visible map[string]bool
}

// LoadColumnPrefs lee la preferencia guardada. Un valor ilegible se descarta y se usan
// los valores por defecto.
func LoadColumnPrefs(kv ports.KeyValueStore, log zerolog.Logger) (*ColumnPrefs, error) {
	c := &ColumnPrefs{kv: kv, visible: make(map[string]bool, len(ProductColumns))}
	for _, col := range ProductColumns {
		c.visible[col.Key] = col.Default
	}
	raw, ok, err := kv.Get(ports.KeyProductColumns)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c, nil
	}
	var saved map[string]bool
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		log.Warn().Err(err).Msg("preferencia de columnas ilegible, se usan los valores por defecto")
		return c, nil
	}
	for k, v := range saved {
		if _, known := c.visible[k]; known {
			c.visible[k] = v
		}
	}
	return c, nil
}

// Toggle invierte la visibilidad de key y persiste el resultado.
func (c *ColumnPrefs) Toggle(key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.visible[key]
	if !ok {
		return false, domain.Invalid("column", MsgColumnaDesconocida)
	}
	c.visible[key] = !cur
	raw, err := json.Marshal(c.visible)
	if err != nil {
		return false, err
	}
	if err := c.kv.Set(ports.KeyProductColumns, string(raw)); err != nil {
		c.visible[key] = cur
		return false, err
	}
	return !cur, nil
}

// States todas las columnas con su visibilidad actual.
func (c *ColumnPrefs) States() []dto.ColumnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dto.ColumnState, 0, len(ProductColumns))
	for _, col := range ProductColumns {
		out = append(out, dto.ColumnState{Key: col.Key, Label: col.Label, Visible: c.visible[col.Key]})
	}
	return out
}

// Visible columnas visibles en orden.
func (c *ColumnPrefs) Visible() []Column {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Column, 0, len(ProductColumns))
	for _, col := range ProductColumns {
		if c.visible[col.Key] {
			out = append(out, col)
		}
	}
	return out
}
