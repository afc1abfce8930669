package view

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// ProductsView tabla de productos: página, búsqueda enviada y columnas visibles.
// Cada cambio de página vuelve a pedir al backend; no se guardan páginas anteriores.
type ProductsView struct {
	mu     sync.Mutex
	uc     *usecase.ProductUseCase
	cols   *ColumnPrefs
	format Formatter
	page   int
	search string
}

// NewProductsView construye la vista en la página 1 sin búsqueda.
func NewProductsView(uc *usecase.ProductUseCase, cols *ColumnPrefs, format Formatter) *ProductsView {
	return &ProductsView{uc: uc, cols: cols, format: format, page: 1}
}

// Open carga categorías y la página actual.
func (v *ProductsView) Open(ctx context.Context) error {
	page, search := v.state()
	err := v.uc.Load(ctx, page, search)
	v.sync()
	return err
}

// Show fija búsqueda y página y carga categorías y esa página en paralelo.
func (v *ProductsView) Show(ctx context.Context, page int, search string) error {
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	v.page = page
	v.search = strings.TrimSpace(search)
	v.mu.Unlock()
	err := v.uc.Load(ctx, page, strings.TrimSpace(search))
	v.sync()
	return err
}

// GoTo pide la página indicada con la búsqueda vigente.
func (v *ProductsView) GoTo(ctx context.Context, page int) error {
	_, search := v.state()
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
	err := v.uc.FetchProducts(ctx, page, search)
	v.sync()
	return err
}

// Next avanza si "siguiente" está habilitado.
func (v *ProductsView) Next(ctx context.Context) error {
	pv := v.Pagination()
	if !pv.HasNext {
		return nil
	}
	return v.GoTo(ctx, pv.Page+1)
}

// Prev retrocede si "anterior" está habilitado.
func (v *ProductsView) Prev(ctx context.Context) error {
	pv := v.Pagination()
	if !pv.HasPrev {
		return nil
	}
	return v.GoTo(ctx, pv.Page-1)
}

// Search envía la búsqueda y vuelve a la página 1. Vacío quita el filtro.
func (v *ProductsView) Search(ctx context.Context, q string) error {
	v.mu.Lock()
	v.search = strings.TrimSpace(q)
	v.mu.Unlock()
	return v.GoTo(ctx, 1)
}

// ToggleColumn invierte una columna; la preferencia queda persistida.
func (v *ProductsView) ToggleColumn(key string) ([]dto.ColumnState, error) {
	if _, err := v.cols.Toggle(key); err != nil {
		return nil, err
	}
	return v.cols.States(), nil
}

// Columns columnas con su visibilidad.
func (v *ProductsView) Columns() []dto.ColumnState { return v.cols.States() }

// VisibleColumns columnas visibles en orden.
func (v *ProductsView) VisibleColumns() []Column { return v.cols.Visible() }

// Edit copia editable del producto id de la página cacheada.
func (v *ProductsView) Edit(id int) (dto.ProductForm, bool) {
	for _, p := range v.uc.Store().Products().Data {
		if p.ID == id {
			return dto.FormFromProduct(p), true
		}
	}
	return dto.ProductForm{}, false
}

// SubmitEdit actualiza el producto id y refresca la página actual.
func (v *ProductsView) SubmitEdit(ctx context.Context, id int, form dto.ProductForm) (*entity.Product, error) {
	_, search := v.state()
	p, err := v.uc.UpdateProduct(ctx, id, form, search)
	v.sync()
	return p, err
}

// Create da de alta un producto en el negocio del operador.
func (v *ProductsView) Create(ctx context.Context, form dto.ProductForm) (*entity.Product, error) {
	return v.uc.CreateProduct(ctx, form)
}

// CreateCategory alta de categoría de producto.
func (v *ProductsView) CreateCategory(ctx context.Context, nombre string) (*entity.ProductCategory, error) {
	return v.uc.CreateCategory(ctx, nombre)
}

// UpdateCategory renombra una categoría de producto.
func (v *ProductsView) UpdateCategory(ctx context.Context, id int, nombre string) (*entity.ProductCategory, error) {
	return v.uc.UpdateCategory(ctx, id, nombre)
}

// Categories categorías cacheadas; si aún no hay, las pide.
func (v *ProductsView) Categories(ctx context.Context) ([]entity.ProductCategory, error) {
	if cats := v.uc.Store().Categories(); len(cats) > 0 {
		return cats, nil
	}
	err := v.uc.FetchCategories(ctx)
	return v.uc.Store().Categories(), err
}

// Pagination metadatos de la página cacheada.
func (v *ProductsView) Pagination() dto.PageView {
	return Pagination(v.uc.Store().Products(), v.uc.Limit())
}

// Rows filas con solo las columnas visibles.
func (v *ProductsView) Rows() []dto.ProductRow {
	cols := v.cols.Visible()
	data := v.uc.Store().Products().Data
	rows := make([]dto.ProductRow, 0, len(data))
	for _, p := range data {
		cells := make(map[string]string, len(cols))
		for _, c := range cols {
			cells[c.Key] = v.format.Cell(p, c.Key, v.uc.CategoryName(p))
		}
		rows = append(rows, dto.ProductRow{ID: p.ID, Cells: cells})
	}
	return rows
}

// Table encabezados y celdas visibles en orden (exportación).
func (v *ProductsView) Table() ([]string, [][]string) {
	cols := v.cols.Visible()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	data := v.uc.Store().Products().Data
	body := make([][]string, 0, len(data))
	for _, p := range data {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = v.format.Cell(p, c.Key, v.uc.CategoryName(p))
		}
		body = append(body, row)
	}
	return header, body
}

// Response estado completo de la vista.
func (v *ProductsView) Response() dto.ProductsViewResponse {
	_, search := v.state()
	st := v.uc.Store()
	return dto.ProductsViewResponse{
		Search:     search,
		Pagination: v.Pagination(),
		Columns:    v.cols.States(),
		Rows:       v.Rows(),
		Categories: st.Categories(),
		Loading:    st.Loading(),
		Error:      st.LastError(),
	}
}

// SearchText búsqueda vigente.
func (v *ProductsView) SearchText() string {
	_, s := v.state()
	return s
}

func (v *ProductsView) state() (int, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page, v.search
}

// sync alinea la página con la que devolvió el backend (puede haberse acotado).
func (v *ProductsView) sync() {
	got := v.uc.Store().Products().Page
	if got < 1 {
		return
	}
	v.mu.Lock()
	v.page = got
	v.mu.Unlock()
}
