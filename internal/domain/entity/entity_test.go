package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

func TestPage_PageCount(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{15, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{0, 10, 1},
		{5, 0, 1},
	}
	for _, c := range cases {
		p := entity.Page[entity.Product]{Total: c.total, Limit: c.limit}
		assert.Equal(t, c.want, p.PageCount(), "total=%d limit=%d", c.total, c.limit)
	}
}

func TestProduct_JSONDelBackend(t *testing.T) {
	raw := `{
		"id_producto": 4, "nombre": "Leche", "descripcion": "Entera", "sku": null,
		"precio": 3.9, "stock": 12, "tipo_unidad": "und", "estatus": true,
		"fecha_expiracion": "2030-01-31T00:00:00.000Z", "id_negocio": 1,
		"id_categoria_producto": 2, "categoriaProducto": {"nombre": "Lácteos"}
	}`
	var p entity.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, 4, p.ID)
	assert.Equal(t, "", p.SKUOrEmpty())
	assert.Equal(t, "3.9", p.Precio.String())
	require.NotNil(t, p.FechaExpiracion)
	assert.Equal(t, "2030-01-31", p.FechaExpiracion.String())
	assert.Equal(t, "Lácteos", p.Categoria.Nombre)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"precio":3.9`, "precio viaja como número")
	assert.Contains(t, string(out), `"fecha_expiracion":"2030-01-31"`)
}

func TestDate_SoloFecha(t *testing.T) {
	var d entity.Date
	require.NoError(t, json.Unmarshal([]byte(`"2031-05-02"`), &d))
	assert.Equal(t, "2031-05-02", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"02/05/2031"`), &d))
}
