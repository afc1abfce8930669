package view

import (
	"context"
	"sync"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// BusinessesView tabla de negocios con filtro por categoría del lado cliente.
type BusinessesView struct {
	mu        sync.Mutex
	uc        *usecase.BusinessUseCase
	page      int
	categoria int
}

func NewBusinessesView(uc *usecase.BusinessUseCase) *BusinessesView {
	return &BusinessesView{uc: uc, page: 1}
}

// Open carga categorías y la página actual.
func (v *BusinessesView) Open(ctx context.Context) error {
	v.mu.Lock()
	page := v.page
	v.mu.Unlock()
	return v.uc.Load(ctx, page)
}

// Show fija el filtro y la página y carga categorías y esa página.
func (v *BusinessesView) Show(ctx context.Context, page, categoria int) error {
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	v.page = page
	v.categoria = categoria
	v.mu.Unlock()
	return v.uc.Load(ctx, page)
}

// GoTo pide la página indicada; el filtro de categoría se conserva.
func (v *BusinessesView) GoTo(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
	return v.uc.FetchBusinesses(ctx, page)
}

// SelectCategory fija el filtro; 0 muestra todos. No hace llamadas de red.
func (v *BusinessesView) SelectCategory(id int) {
	v.mu.Lock()
	v.categoria = id
	v.mu.Unlock()
}

// CreateCategory alta de categoría de negocio.
func (v *BusinessesView) CreateCategory(ctx context.Context, nombre string) (*entity.BusinessCategory, error) {
	return v.uc.CreateCategory(ctx, nombre)
}

// Categories categorías cacheadas; si aún no hay, las pide.
func (v *BusinessesView) Categories(ctx context.Context) ([]entity.BusinessCategory, error) {
	if cats := v.uc.Store().Categories(); len(cats) > 0 {
		return cats, nil
	}
	err := v.uc.FetchCategories(ctx)
	return v.uc.Store().Categories(), err
}

// Create alta de negocio; la página actual se vuelve a pedir.
func (v *BusinessesView) Create(ctx context.Context, b entity.Business) (*entity.Business, error) {
	return v.uc.CreateBusiness(ctx, b)
}

// Update edición de negocio por id.
func (v *BusinessesView) Update(ctx context.Context, id int, b entity.Business) (*entity.Business, error) {
	return v.uc.UpdateBusiness(ctx, id, b)
}

// Response estado de la vista con la categoría resuelta por fila.
func (v *BusinessesView) Response() dto.BusinessesViewResponse {
	v.mu.Lock()
	categoria := v.categoria
	v.mu.Unlock()

	st := v.uc.Store()
	filtered := v.uc.Filter(categoria)
	rows := make([]dto.BusinessRow, 0, len(filtered))
	for _, b := range filtered {
		rows = append(rows, dto.BusinessRow{Business: b, Categoria: v.uc.CategoryName(b.CategoriaID)})
	}
	return dto.BusinessesViewResponse{
		CategoriaSeleccionada: categoria,
		Pagination:            Pagination(st.Businesses(), v.uc.Limit()),
		Rows:                  rows,
		Categories:            st.Categories(),
		Loading:               st.Loading(),
		Error:                 st.LastError(),
	}
}
