package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Mensajes de negocios.
const (
	MsgCategoriaNegocioCreada = "Categoría Nueva creada correctamente"
	MsgNegocioCreado          = "Negocio Nuevo creada correctamente"
	MsgNegocioActualizado     = "Negocio actualizado correctamente"
	MsgErrorNegocios          = "Error al obtener los negocios"
	MsgErrorCategorias        = "Error al obtener categorías"
	MsgErrorCrearCategoria    = "Error al crear la categoría"
	MsgErrorCrearNegocio      = "Error al crear el negocio"
	MsgErrorActualizarNegocio = "Error al actualizar el negocio"
	CategoriaDesconocida      = "Desconocido"
)

// BusinessUseCase negocios y categorías de negocio (vista solo ROOT).
type BusinessUseCase struct {
	gw       ports.BusinessGateway
	session  *store.SessionStore
	store    *store.BusinessStore
	notifier ports.Notifier
	log      zerolog.Logger
	limit    int
}

// NewBusinessUseCase construye el caso de uso con tamaño de página fijo. La caché se vacía
// al cerrarse la sesión.
func NewBusinessUseCase(gw ports.BusinessGateway, session *store.SessionStore, st *store.BusinessStore, notifier ports.Notifier, log zerolog.Logger, limit int) *BusinessUseCase {
	session.Subscribe(func() {
		if session.Token() == "" {
			st.Reset()
		}
	})
	return &BusinessUseCase{gw: gw, session: session, store: st, notifier: notifier, log: log, limit: limit}
}

// Store store subyacente (lectura).
func (uc *BusinessUseCase) Store() *store.BusinessStore { return uc.store }

// Limit tamaño de página.
func (uc *BusinessUseCase) Limit() int { return uc.limit }

// Load carga categorías y la página indicada en paralelo.
func (uc *BusinessUseCase) Load(ctx context.Context, page int) error {
	var g errgroup.Group
	g.Go(func() error { return uc.FetchCategories(ctx) })
	g.Go(func() error { return uc.FetchBusinesses(ctx, page) })
	return g.Wait()
}

// FetchBusinesses reemplaza la página cacheada. Respuestas superadas por otra petición se descartan.
func (uc *BusinessUseCase) FetchBusinesses(ctx context.Context, page int) error {
	token := uc.session.Token()
	if token == "" {
		return nil
	}
	if page < 1 {
		page = 1
	}
	gen := uc.store.Seq.Next()
	return track(uc.store, uc.notifier, uc.log, MsgErrorNegocios, func() error {
		res, err := uc.gw.ListBusinesses(ctx, token, page, uc.limit)
		if err != nil {
			return err
		}
		if res.Limit <= 0 {
			res.Limit = uc.limit
		}
		if res.Page <= 0 {
			res.Page = page
		}
		if !uc.store.ReplaceBusinesses(gen, *res) {
			return fmt.Errorf("negocios página %d: %w", page, domain.ErrStaleResponse)
		}
		return nil
	})
}

// FetchCategories reemplaza las categorías cacheadas.
func (uc *BusinessUseCase) FetchCategories(ctx context.Context) error {
	token := uc.session.Token()
	if token == "" {
		return nil
	}
	return track(uc.store, uc.notifier, uc.log, MsgErrorCategorias, func() error {
		cats, err := uc.gw.ListBusinessCategories(ctx, token)
		if err != nil {
			return err
		}
		uc.store.ReplaceCategories(cats)
		return nil
	})
}

// CreateCategory crea la categoría y la agrega a la lista tal como la devolvió el servidor.
func (uc *BusinessUseCase) CreateCategory(ctx context.Context, nombre string) (*entity.BusinessCategory, error) {
	token := uc.session.Token()
	if token == "" {
		return nil, nil
	}
	if err := domain.ValidateCategoryName(nombre); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var created *entity.BusinessCategory
	err := track(uc.store, uc.notifier, uc.log, MsgErrorCrearCategoria, func() error {
		c, err := uc.gw.CreateBusinessCategory(ctx, token, strings.TrimSpace(nombre))
		if err != nil {
			return err
		}
		uc.store.AppendCategory(*c)
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgCategoriaNegocioCreada)
	return created, nil
}

// CreateBusiness valida, crea y vuelve a pedir la página actual.
func (uc *BusinessUseCase) CreateBusiness(ctx context.Context, b entity.Business) (*entity.Business, error) {
	token := uc.session.Token()
	if token == "" {
		return nil, nil
	}
	b.Telefono = strings.TrimSpace(b.Telefono)
	if err := domain.ValidateBusiness(b); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var created *entity.Business
	err := track(uc.store, uc.notifier, uc.log, MsgErrorCrearNegocio, func() error {
		res, err := uc.gw.CreateBusiness(ctx, token, b)
		if err != nil {
			return err
		}
		uc.store.AppendBusiness(*res)
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgNegocioCreado)
	uc.refetch(ctx)
	return created, nil
}

// UpdateBusiness exige id; reemplaza por id y vuelve a pedir la página actual.
func (uc *BusinessUseCase) UpdateBusiness(ctx context.Context, id int, b entity.Business) (*entity.Business, error) {
	token := uc.session.Token()
	if token == "" {
		return nil, nil
	}
	if id == 0 {
		return nil, rejectInvalid(uc.notifier, domain.Invalid("id", domain.MsgNegocioSinID))
	}
	b.Telefono = strings.TrimSpace(b.Telefono)
	if err := domain.ValidateBusiness(b); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var updated *entity.Business
	err := track(uc.store, uc.notifier, uc.log, MsgErrorActualizarNegocio, func() error {
		res, err := uc.gw.UpdateBusiness(ctx, token, id, b)
		if err != nil {
			return err
		}
		if res.ID == 0 {
			res.ID = id
		}
		uc.store.ReplaceBusiness(id, *res)
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgNegocioActualizado)
	uc.refetch(ctx)
	return updated, nil
}

func (uc *BusinessUseCase) refetch(ctx context.Context) {
	page := uc.store.Businesses().Page
	if err := uc.FetchBusinesses(ctx, page); err != nil {
		uc.log.Warn().Err(err).Int("page", page).Msg("refrescar negocios")
	}
}

// Filter negocios de la página cacheada con la categoría dada; 0 = todos. No toca la store.
func (uc *BusinessUseCase) Filter(categoriaID int) []entity.Business {
	all := uc.store.Businesses().Data
	if categoriaID == 0 {
		return all
	}
	out := make([]entity.Business, 0, len(all))
	for _, b := range all {
		if b.CategoriaID == categoriaID {
			out = append(out, b)
		}
	}
	return out
}

// CategoryName nombre de la categoría o "Desconocido".
func (uc *BusinessUseCase) CategoryName(id int) string {
	for _, c := range uc.store.Categories() {
		if c.ID == id {
			return c.Nombre
		}
	}
	return CategoriaDesconocida
}
