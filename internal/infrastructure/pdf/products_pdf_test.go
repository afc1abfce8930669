package pdf_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/pdf"
)

func TestExport_GeneraPDF(t *testing.T) {
	doc, err := pdf.NewProductsExporter().Export(context.Background(), pdf.ProductsReport{
		Negocio:     "Negocio Central",
		Pagination:  dto.PageView{Page: 1, Limit: 10, Total: 2, PageCount: 1},
		Header:      []string{"Producto", "Precio", "Stock"},
		Rows:        [][]string{{"Leche entera", "S/ 3,90", "40 und"}, {"Agua mineral", "S/ 1,50"}},
		GeneratedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestExport_SinColumnas(t *testing.T) {
	_, err := pdf.NewProductsExporter().Export(context.Background(), pdf.ProductsReport{})
	assert.True(t, errors.Is(err, pdf.ErrSinColumnas))
}
