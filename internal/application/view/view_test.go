package view_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/consola-negocios/internal/application/notify"
	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/application/view"
	"github.com/jhoicas/consola-negocios/internal/devbackend"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/backend"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/storage"
	"github.com/jhoicas/consola-negocios/pkg/clock"
)

func memKV(t *testing.T) *storage.LevelDBStore {
	t.Helper()
	kv, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

type fixture struct {
	data       *devbackend.Data
	auth       *usecase.AuthUseCase
	products   *view.ProductsView
	businesses *view.BusinessesView
	users      *view.UsersView
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	data := devbackend.Seed()
	dev := devbackend.New(devbackend.Config{Secret: "dev-secret", Issuer: "test", TTL: time.Hour}, data, zerolog.Nop())
	baseURL, stop, err := dev.Start("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stop() })

	kv := memKV(t)
	log := zerolog.Nop()
	clk := clock.NewFake(time.Now())
	queue := notify.NewQueue(log)
	session, err := store.NewSessionStore(kv, clk, queue, log)
	require.NoError(t, err)

	client := backend.NewClient(backend.Config{BaseURL: baseURL, Timeout: 5 * time.Second}, log, nil)
	auth := usecase.NewAuthUseCase(client, session, queue, log)
	cols, err := view.LoadColumnPrefs(kv, log)
	require.NoError(t, err)
	return &fixture{
		data: data,
		auth: auth,
		products: view.NewProductsView(
			usecase.NewProductUseCase(client, auth, session, store.NewProductStore(10), queue, clk, log, 10),
			cols, view.NewFormatter(language.Spanish)),
		businesses: view.NewBusinessesView(usecase.NewBusinessUseCase(client, session, store.NewBusinessStore(10), queue, log, 10)),
		users:      view.NewUsersView(usecase.NewUserUseCase(client, session, store.NewUserStore(), queue, log)),
	}
}

func TestPagination_Pagina2De15(t *testing.T) {
	pv := view.Pagination(entity.Page[entity.Business]{Total: 15, Page: 2, Limit: 10}, 10)
	assert.Equal(t, 2, pv.PageCount)
	assert.False(t, pv.HasNext)
	assert.True(t, pv.HasPrev)

	pv = view.Pagination(entity.Page[entity.Business]{Total: 15, Page: 1}, 10)
	assert.Equal(t, 10, pv.Limit)
	assert.True(t, pv.HasNext)
	assert.False(t, pv.HasPrev)

	pv = view.Pagination(entity.Page[entity.Business]{}, 10)
	assert.Equal(t, 1, pv.Page)
	assert.Equal(t, 1, pv.PageCount)
	assert.False(t, pv.HasNext)
}

func TestPagination_PaginaFueraDeRangoSeAcota(t *testing.T) {
	pv := view.Pagination(entity.Page[entity.Product]{Total: 0, Page: 5, Limit: 10}, 10)
	assert.Equal(t, 1, pv.Page)
	assert.False(t, pv.HasPrev)
	assert.False(t, pv.HasNext)

	pv = view.Pagination(entity.Page[entity.Product]{Total: 15, Page: 4, Limit: 10}, 10)
	assert.Equal(t, 2, pv.Page)
	assert.True(t, pv.HasPrev)
	assert.False(t, pv.HasNext)
}

func TestColumnPrefs_SobrevivenAlReabrir(t *testing.T) {
	kv := memKV(t)
	cols, err := view.LoadColumnPrefs(kv, zerolog.Nop())
	require.NoError(t, err)

	visible, err := cols.Toggle(view.ColSKU)
	require.NoError(t, err)
	assert.False(t, visible)
	visible, err = cols.Toggle(view.ColEstatus)
	require.NoError(t, err)
	assert.True(t, visible)

	reopened, err := view.LoadColumnPrefs(kv, zerolog.Nop())
	require.NoError(t, err)
	keys := func(cs []view.Column) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Key)
		}
		return out
	}
	assert.Equal(t, []string{
		view.ColNombre, view.ColDescripcion, view.ColPrecio, view.ColStock, view.ColCategoria, view.ColEstatus,
	}, keys(reopened.Visible()))

	_, err = reopened.Toggle("color")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestColumnPrefs_ValorIlegibleUsaDefaults(t *testing.T) {
	kv := memKV(t)
	require.NoError(t, kv.Set(ports.KeyProductColumns, "{no es json"))

	cols, err := view.LoadColumnPrefs(kv, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, cols.Visible(), 6)
}

func TestFormatter_Espanol(t *testing.T) {
	f := view.NewFormatter(language.Und)
	assert.Equal(t, "S/ 3,90", f.Price(decimal.RequireFromString("3.9")))
	assert.Equal(t, "12 und", f.Quantity(decimal.NewFromInt(12), "und"))
	assert.Equal(t, "12", f.Quantity(decimal.NewFromInt(12), ""))

	d := entity.NewDate(time.Date(2030, 1, 31, 15, 0, 0, 0, time.Local))
	assert.Equal(t, "31/01/2030", f.Date(&d))
	assert.Equal(t, "", f.Date(nil))
	assert.Equal(t, "Inactivo", f.Status(false))
}

func TestTheme_PorDefectoSistema(t *testing.T) {
	kv := memKV(t)
	th, err := view.LoadTheme(kv, false)
	require.NoError(t, err)

	st := th.State()
	assert.Equal(t, view.ThemeSystem, st.Preference)
	assert.Equal(t, view.ThemeLight, st.Effective)

	st = th.SystemPreferenceChanged(true)
	assert.Equal(t, view.ThemeDark, st.Effective)

	st, err = th.Set(view.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, view.ThemeLight, st.Effective, "preferencia explícita ignora el sistema")

	_, err = th.Set("azul")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	reopened, err := view.LoadTheme(kv, true)
	require.NoError(t, err)
	assert.Equal(t, view.ThemeLight, reopened.State().Preference)
}

func TestProductsView_PaginaColumnasYEdicion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 13; i++ {
		f.data.AddProduct(entity.Product{
			Nombre: fmt.Sprintf("Extra %02d", i), Precio: decimal.NewFromInt(1), Stock: decimal.NewFromInt(1),
			TipoUnidad: "und", Estatus: true, NegocioID: 1, CategoriaID: 2,
		})
	}
	require.NoError(t, f.auth.Login(ctx, "a@b.com", "x"))

	require.NoError(t, f.products.Open(ctx))
	pv := f.products.Pagination()
	assert.Equal(t, 15, pv.Total)
	assert.True(t, pv.HasNext)
	assert.False(t, pv.HasPrev)
	require.NoError(t, f.products.Prev(ctx), "anterior deshabilitado: no-op")
	assert.Equal(t, 1, f.products.Pagination().Page)

	rows := f.products.Rows()
	require.Len(t, rows, 10)
	assert.Equal(t, "Leche entera", rows[0].Cells[view.ColNombre])
	assert.Equal(t, "S/ 3,90", rows[0].Cells[view.ColPrecio])
	assert.Equal(t, "Lácteos", rows[0].Cells[view.ColCategoria])
	assert.Equal(t, "LEC-001", rows[0].Cells[view.ColSKU])

	_, err := f.products.ToggleColumn(view.ColSKU)
	require.NoError(t, err)
	_, present := f.products.Rows()[0].Cells[view.ColSKU]
	assert.False(t, present)

	require.NoError(t, f.products.Next(ctx))
	pv = f.products.Pagination()
	assert.Equal(t, 2, pv.Page)
	assert.False(t, pv.HasNext)
	assert.True(t, pv.HasPrev)
	require.Len(t, f.products.Rows(), 5)

	target := f.products.Rows()[0].ID
	form, ok := f.products.Edit(target)
	require.True(t, ok)
	form.Nombre = "Renombrado"
	_, err = f.products.SubmitEdit(ctx, target, form)
	require.NoError(t, err)
	assert.Equal(t, 2, f.products.Pagination().Page, "se refresca la página actual")
	assert.Equal(t, "Renombrado", f.products.Rows()[0].Cells[view.ColNombre])
}

func TestProductsView_BusquedaVuelveAPagina1(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.auth.Login(ctx, "a@b.com", "x"))
	require.NoError(t, f.products.Open(ctx))

	require.NoError(t, f.products.Search(ctx, "  agua "))
	res := f.products.Response()
	assert.Equal(t, "agua", res.Search)
	assert.Equal(t, 1, res.Pagination.Page)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Agua mineral", res.Rows[0].Cells[view.ColNombre])

	require.NoError(t, f.products.Search(ctx, ""))
	assert.Len(t, f.products.Rows(), 2)
}

func TestBusinessesView_SegundaPaginaYFiltro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 14; i++ {
		cat := 1
		if i%2 == 0 {
			cat = 2
		}
		f.data.AddBusiness(entity.Business{
			Nombre: fmt.Sprintf("Negocio %02d", i), Propietario: "P", Direccion: "D",
			Telefono: "912345678", Estatus: true, CategoriaID: cat,
		})
	}
	f.data.AddBusiness(entity.Business{Nombre: "Huérfano", Propietario: "P", Direccion: "D", Telefono: "912345678", CategoriaID: 99})
	require.NoError(t, f.auth.Login(ctx, "root@consola.dev", "root123"))

	require.NoError(t, f.businesses.Open(ctx))
	require.NoError(t, f.businesses.GoTo(ctx, 2))
	res := f.businesses.Response()
	assert.Equal(t, 2, res.Pagination.PageCount)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
	require.Len(t, res.Rows, 6)
	assert.Equal(t, usecase.CategoriaDesconocida, res.Rows[5].Categoria)

	f.businesses.SelectCategory(2)
	res = f.businesses.Response()
	for _, r := range res.Rows {
		assert.Equal(t, 2, r.CategoriaID)
		assert.Equal(t, "Farmacia", r.Categoria)
	}
	assert.Equal(t, 16, res.Pagination.Total, "el filtro no toca la store")
}

func TestUsersView_AgrupaYFiltraSinTildes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otro := f.data.AddBusiness(entity.Business{Nombre: "Botica Sur", Propietario: "P", Direccion: "D", Telefono: "912345678", CategoriaID: 2})
	_, err := f.data.AddUser(entity.User{Nombre: "José Ruiz", Email: "jose@sur.pe", Role: entity.RoleUser, Estatus: true, NegocioID: otro.ID}, "pw")
	require.NoError(t, err)
	require.NoError(t, f.auth.Login(ctx, "root@consola.dev", "root123"))

	require.NoError(t, f.users.Open(ctx))
	res := f.users.Response()
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Negocio Central", res.Groups[0].Negocio)
	assert.Len(t, res.Groups[0].Users, 2)
	assert.True(t, res.Groups[1].Expanded)

	assert.False(t, f.users.ToggleGroup(otro.ID))
	f.users.Filter("JOSE")
	res = f.users.Response()
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "Botica Sur", res.Groups[0].Negocio)
	assert.False(t, res.Groups[0].Expanded)

	f.users.Filter("gomez")
	res = f.users.Response()
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "Ana Gómez", res.Groups[0].Users[0].Nombre)
}
