package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
	"github.com/jhoicas/consola-negocios/pkg/clock"
)

// Mensajes de productos.
const (
	MsgProductoCreado           = "Producto creado exitosamente"
	MsgProductoActualizado      = "Producto actualizado correctamente"
	MsgCategoriaProductoCreada  = "Categoría creada correctamente"
	MsgCategoriaActualizada     = "Categoria actualizada correctamente"
	MsgErrorProductos           = "Error al obtener productos"
	MsgErrorCrearProducto       = "Error al crear el producto"
	MsgErrorActualizarProducto  = "Error al actualizar el producto"
	MsgErrorActualizarCategoria = "Error al actualizar la categoría"
)

// ProductUseCase productos y categorías de producto del negocio del operador.
// El id de negocio sale del perfil cargado; sin perfil las acciones no hacen nada.
type ProductUseCase struct {
	gw       ports.ProductGateway
	auth     *AuthUseCase
	store    *store.ProductStore
	notifier ports.Notifier
	clock    clock.Clock
	log      zerolog.Logger
	limit    int
}

// NewProductUseCase construye el caso de uso. La caché se vacía al cerrarse la sesión.
func NewProductUseCase(gw ports.ProductGateway, auth *AuthUseCase, session *store.SessionStore, st *store.ProductStore, notifier ports.Notifier, clk clock.Clock, log zerolog.Logger, limit int) *ProductUseCase {
	uc := &ProductUseCase{gw: gw, auth: auth, store: st, notifier: notifier, clock: clk, log: log, limit: limit}
	session.Subscribe(func() {
		if session.Token() == "" {
			st.Reset()
		}
	})
	return uc
}

// Store store subyacente (lectura).
func (uc *ProductUseCase) Store() *store.ProductStore { return uc.store }

// Limit tamaño de página.
func (uc *ProductUseCase) Limit() int { return uc.limit }

// scope token y negocio del operador; ok=false si falta alguno.
func (uc *ProductUseCase) scope(ctx context.Context) (string, int, bool) {
	token := uc.auth.Token()
	if token == "" {
		return "", 0, false
	}
	profile, err := uc.auth.EnsureProfile(ctx)
	if err != nil || profile == nil || profile.NegocioID == 0 {
		return "", 0, false
	}
	return token, profile.NegocioID, true
}

// Load carga categorías y la primera página (o la indicada) en paralelo.
func (uc *ProductUseCase) Load(ctx context.Context, page int, search string) error {
	if _, _, ok := uc.scope(ctx); !ok {
		return nil
	}
	var g errgroup.Group
	g.Go(func() error { return uc.FetchCategories(ctx) })
	g.Go(func() error { return uc.FetchProducts(ctx, page, search) })
	return g.Wait()
}

// FetchCategories reemplaza las categorías; si falla la lista queda vacía.
func (uc *ProductUseCase) FetchCategories(ctx context.Context) error {
	token, negocioID, ok := uc.scope(ctx)
	if !ok {
		return nil
	}
	return track(uc.store, uc.notifier, uc.log, MsgErrorCategorias, func() error {
		cats, err := uc.gw.ListProductCategories(ctx, token, negocioID)
		if err != nil {
			uc.store.ReplaceCategories(nil)
			return err
		}
		uc.store.ReplaceCategories(cats)
		return nil
	})
}

// CreateCategory crea una categoría de producto y la agrega a la caché.
func (uc *ProductUseCase) CreateCategory(ctx context.Context, nombre string) (*entity.ProductCategory, error) {
	token, negocioID, ok := uc.scope(ctx)
	if !ok {
		return nil, nil
	}
	if err := domain.ValidateCategoryName(nombre); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var created *entity.ProductCategory
	err := track(uc.store, uc.notifier, uc.log, MsgErrorCrearCategoria, func() error {
		c, err := uc.gw.CreateProductCategory(ctx, token, negocioID, strings.TrimSpace(nombre))
		if err != nil {
			return err
		}
		uc.store.AddCategory(*c)
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgCategoriaProductoCreada)
	return created, nil
}

// UpdateCategory renombra una categoría de producto.
func (uc *ProductUseCase) UpdateCategory(ctx context.Context, categoriaID int, nombre string) (*entity.ProductCategory, error) {
	token, negocioID, ok := uc.scope(ctx)
	if !ok || categoriaID == 0 {
		return nil, nil
	}
	if err := domain.ValidateCategoryName(nombre); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var updated *entity.ProductCategory
	err := track(uc.store, uc.notifier, uc.log, MsgErrorActualizarCategoria, func() error {
		c, err := uc.gw.UpdateProductCategory(ctx, token, negocioID, categoriaID, strings.TrimSpace(nombre))
		if err != nil {
			return err
		}
		if c.ID == 0 {
			c.ID = categoriaID
		}
		uc.store.UpdateCategory(categoriaID, *c)
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgCategoriaActualizada)
	return updated, nil
}

// FetchProducts pide la página indicada. Si la página queda fuera de rango (p. ej. el
// total bajó) se pide la última; sin resultados la página es la 1. Si falla, la página
// cacheada queda vacía.
func (uc *ProductUseCase) FetchProducts(ctx context.Context, page int, search string) error {
	token, negocioID, ok := uc.scope(ctx)
	if !ok {
		return nil
	}
	if page < 1 {
		page = 1
	}
	gen := uc.store.Seq.Next()
	return track(uc.store, uc.notifier, uc.log, MsgErrorProductos, func() error {
		q := dto.ProductQuery{Page: page, Limit: uc.limit, Search: strings.TrimSpace(search)}
		res, err := uc.gw.ListProducts(ctx, token, negocioID, q)
		if err == nil && res.Total > 0 && page > pageCount(res.Total, uc.limit) {
			q.Page = pageCount(res.Total, uc.limit)
			res, err = uc.gw.ListProducts(ctx, token, negocioID, q)
		}
		if err != nil {
			uc.store.ResetPage(gen)
			return err
		}
		if res.Page <= 0 {
			res.Page = q.Page
		}
		if res.Total <= 0 {
			res.Page = 1
		}
		if !uc.store.ReplacePage(gen, *res) {
			return fmt.Errorf("productos página %d búsqueda %q: %w", q.Page, q.Search, domain.ErrStaleResponse)
		}
		return nil
	})
}

// CreateProduct valida en cliente (sin llamada de red si falla), completa el negocio
// desde el perfil y agrega el creado a la página cacheada.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, form dto.ProductForm) (*entity.Product, error) {
	token, negocioID, ok := uc.scope(ctx)
	if !ok {
		return nil, nil
	}
	p, err := form.Product()
	if err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	if p.NegocioID == 0 {
		p.NegocioID = negocioID
	}
	if err := domain.ValidateNewProduct(p, uc.clock.Now()); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var created *entity.Product
	err = track(uc.store, uc.notifier, uc.log, MsgErrorCrearProducto, func() error {
		res, err := uc.gw.CreateProduct(ctx, token, p)
		if err != nil {
			return err
		}
		uc.store.AddProduct(*res)
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgProductoCreado)
	return created, nil
}

// UpdateProduct reemplaza por id el producto editado y vuelve a pedir la página actual
// para reflejar los campos que calcula el servidor.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id int, form dto.ProductForm, search string) (*entity.Product, error) {
	token, negocioID, ok := uc.scope(ctx)
	if !ok || id == 0 {
		return nil, nil
	}
	p, err := form.Product()
	if err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	p.ID = id
	if p.NegocioID == 0 {
		p.NegocioID = negocioID
	}
	if err := domain.ValidateProductUpdate(p, uc.clock.Now()); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var updated *entity.Product
	err = track(uc.store, uc.notifier, uc.log, MsgErrorActualizarProducto, func() error {
		res, err := uc.gw.UpdateProduct(ctx, token, id, p)
		if err != nil {
			return err
		}
		if res.ID == 0 {
			res.ID = id
		}
		uc.store.UpdateProduct(id, *res)
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgProductoActualizado)
	page := uc.store.Products().Page
	if err := uc.FetchProducts(ctx, page, search); err != nil {
		uc.log.Warn().Err(err).Int("page", page).Msg("refrescar productos")
	}
	return updated, nil
}

// CategoryName nombre de la categoría de producto o "Desconocido".
func (uc *ProductUseCase) CategoryName(p entity.Product) string {
	if p.Categoria != nil && p.Categoria.Nombre != "" {
		return p.Categoria.Nombre
	}
	for _, c := range uc.store.Categories() {
		if c.ID == p.CategoriaID {
			return c.Nombre
		}
	}
	return CategoriaDesconocida
}

func pageCount(total, limit int) int {
	return entity.Page[entity.Product]{Total: total, Limit: limit}.PageCount()
}
