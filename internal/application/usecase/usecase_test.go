package usecase_test

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

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/notify"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/devbackend"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/backend"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/storage"
	"github.com/jhoicas/consola-negocios/pkg/clock"
)

// console arma la consola completa contra un backend de desarrollo en un puerto local.
type console struct {
	dev      *devbackend.Server
	client   *backend.Client
	clock    *clock.Fake
	queue    *notify.Queue
	session  *store.SessionStore
	auth     *usecase.AuthUseCase
	business *usecase.BusinessUseCase
	product  *usecase.ProductUseCase
	user     *usecase.UserUseCase
}

func newConsole(t *testing.T, ttl time.Duration) *console {
	t.Helper()
	dev := devbackend.New(devbackend.Config{Secret: "dev-secret", Issuer: "test", TTL: ttl}, devbackend.Seed(), zerolog.Nop())
	baseURL, stop, err := dev.Start("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stop() })

	kv, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	log := zerolog.Nop()
	clk := clock.NewFake(time.Now())
	queue := notify.NewQueue(log)
	session, err := store.NewSessionStore(kv, clk, queue, log)
	require.NoError(t, err)

	client := backend.NewClient(backend.Config{BaseURL: baseURL, Timeout: 5 * time.Second}, log, nil)
	auth := usecase.NewAuthUseCase(client, session, queue, log)
	return &console{
		dev:      dev,
		client:   client,
		clock:    clk,
		queue:    queue,
		session:  session,
		auth:     auth,
		business: usecase.NewBusinessUseCase(client, session, store.NewBusinessStore(10), queue, log, 10),
		product:  usecase.NewProductUseCase(client, auth, session, store.NewProductStore(10), queue, clk, log, 10),
		user:     usecase.NewUserUseCase(client, session, store.NewUserStore(), queue, log),
	}
}

func messages(q *notify.Queue) []string {
	var out []string
	for _, n := range q.Drain() {
		out = append(out, n.Message)
	}
	return out
}

func newForm(nombre string, categoriaID int) dto.ProductForm {
	return dto.ProductForm{
		Nombre:      nombre,
		Precio:      decimal.RequireFromString("2.50"),
		Stock:       decimal.NewFromInt(5),
		TipoUnidad:  "und",
		CategoriaID: categoriaID,
	}
}

func updateOf(u entity.User, role string) dto.UpdateUserRequest {
	in := dto.UpdateFromUser(u)
	in.Role = role
	return in
}

func TestLogin_ExpiraALos60Segundos(t *testing.T) {
	c := newConsole(t, 60*time.Second)
	ctx := context.Background()

	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	assert.Equal(t, usecase.StateAuthenticated, c.auth.State())
	assert.Equal(t, "ADMIN", c.session.Role())
	assert.Contains(t, messages(c.queue), usecase.MsgLoginOK)

	c.clock.Advance(60 * time.Second)

	assert.Empty(t, c.session.Token())
	assert.Empty(t, c.session.Role())
	assert.Equal(t, usecase.StateAnonymous, c.auth.State())
	assert.Equal(t, []string{store.MsgSesionExpirada}, messages(c.queue))
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	c := newConsole(t, time.Hour)

	err := c.auth.Login(context.Background(), "a@b.com", "otra")
	require.Error(t, err)
	assert.Equal(t, usecase.StateAnonymous, c.auth.State())
	assert.Equal(t, usecase.MsgErrorLogin, c.auth.Error())
	assert.Equal(t, []string{usecase.MsgCredenciales}, messages(c.queue))
	assert.Empty(t, c.session.Token())
}

func TestLogin_SinCamposNoLlamaAlBackend(t *testing.T) {
	c := newConsole(t, time.Hour)

	err := c.auth.Login(context.Background(), "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, usecase.StateAnonymous, c.auth.State())
}

func TestProfile_401CierraSesionUnaVez(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	c.queue.Drain()

	// Firma alterada: el backend responde 401 al perfil.
	require.NoError(t, c.session.SetToken(c.session.Token()+"x"))

	_, err := c.auth.LoadProfile(ctx)
	require.True(t, errors.Is(err, domain.ErrSessionExpired))
	_, err = c.auth.LoadProfile(ctx)
	require.NoError(t, err, "sin sesión no hay llamada")

	assert.Empty(t, c.session.Token())
	assert.Empty(t, c.session.Role())
	assert.Equal(t, []string{store.MsgSesionExpiradaPerfil}, messages(c.queue))
}

func TestLogout_DetieneTimer(t *testing.T) {
	c := newConsole(t, 60*time.Second)
	require.NoError(t, c.auth.Login(context.Background(), "a@b.com", "x"))
	c.queue.Drain()

	require.NoError(t, c.auth.Logout())
	assert.Equal(t, 0, c.clock.Pending())
	c.clock.Advance(time.Hour)
	assert.Empty(t, messages(c.queue))
}

func TestAccionesSinSesionSonNoOp(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.business.FetchBusinesses(ctx, 1))
	cat, err := c.business.CreateCategory(ctx, "Farmacia")
	assert.NoError(t, err)
	assert.Nil(t, cat)
	require.NoError(t, c.product.FetchProducts(ctx, 1, ""))
	require.NoError(t, c.user.FetchUsers(ctx))
	assert.Empty(t, c.queue.Drain())
	assert.False(t, c.business.Store().Loading())
}

func TestPerfilSinSesion(t *testing.T) {
	c := newConsole(t, time.Hour)
	p, err := c.auth.EnsureProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Nil(t, p)
}

func TestLogout_VaciaNegociosYUsuarios(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))
	require.NoError(t, c.business.Load(ctx, 1))
	require.NoError(t, c.user.FetchUsers(ctx))
	require.NotEmpty(t, c.business.Store().Businesses().Data)
	require.NotEmpty(t, c.business.Store().Categories())
	require.NotEmpty(t, c.user.Store().Users())

	require.NoError(t, c.auth.Logout())
	assert.Empty(t, c.business.Store().Businesses().Data)
	assert.Equal(t, 0, c.business.Store().Businesses().Total)
	assert.Empty(t, c.business.Store().Categories())
	assert.Empty(t, c.user.Store().Users())
}

// usersSuperseded simula una segunda carga de usuarios iniciada mientras la primera estaba en vuelo.
type usersSuperseded struct {
	*backend.Client
	st *store.UserStore
}

func (g usersSuperseded) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	users, err := g.Client.ListUsers(ctx, token)
	g.st.Seq.Next()
	return users, err
}

func TestUsuarios_RespuestaSuperadaSeDescartaSinError(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))
	c.queue.Drain()

	st := store.NewUserStore()
	uc := usecase.NewUserUseCase(usersSuperseded{Client: c.client, st: st}, c.session, st, c.queue, zerolog.Nop())
	require.NoError(t, uc.FetchUsers(ctx))
	assert.Empty(t, st.Users(), "la respuesta vieja no pisa la store")
	assert.False(t, st.Loading())
	assert.Empty(t, st.LastError())
	assert.Empty(t, c.queue.Drain())
}

func TestNegocios_Pagina2De15(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	for i := 0; i < 14; i++ {
		c.dev.Data.AddBusiness(entity.Business{Nombre: fmt.Sprintf("Negocio %02d", i), Telefono: "999888777", CategoriaID: 1})
	}
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))

	require.NoError(t, c.business.Load(ctx, 2))

	page := c.business.Store().Businesses()
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 2, page.PageCount())
	assert.Len(t, c.business.Store().Categories(), 3)
	assert.False(t, c.business.Store().Loading())
}

func TestNegocios_CrearCategoriaAgregaUna(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))
	require.NoError(t, c.business.FetchCategories(ctx))
	before := c.business.Store().Categories()

	created, err := c.business.CreateCategory(ctx, "Ferretería")
	require.NoError(t, err)

	after := c.business.Store().Categories()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, *created, after[len(after)-1])
	assert.Equal(t, "Ferretería", created.Nombre)
	assert.Contains(t, messages(c.queue), usecase.MsgCategoriaNegocioCreada)
}

func TestNegocios_ValidacionYFiltro(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))
	c.queue.Drain()

	_, err := c.business.CreateBusiness(ctx, entity.Business{Nombre: "X", Propietario: "Y", Direccion: "Z", Telefono: "123", CategoriaID: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{domain.MsgTelefono}, messages(c.queue))

	_, err = c.business.UpdateBusiness(ctx, 0, entity.Business{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{domain.MsgNegocioSinID}, messages(c.queue))

	_, err = c.business.CreateBusiness(ctx, entity.Business{Nombre: "Botica", Propietario: "Y", Direccion: "Z", Telefono: "123456789", CategoriaID: 2, Estatus: true})
	require.NoError(t, err)
	require.NoError(t, c.business.FetchCategories(ctx))

	farmacias := c.business.Filter(2)
	require.Len(t, farmacias, 1)
	assert.Equal(t, "Botica", farmacias[0].Nombre)
	assert.Len(t, c.business.Filter(0), 2)
	assert.Equal(t, "Farmacia", c.business.CategoryName(2))
	assert.Equal(t, usecase.CategoriaDesconocida, c.business.CategoryName(99))
}

func TestProductos_UpdateSoloTocaElId(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	require.NoError(t, c.product.Load(ctx, 1, ""))

	before := c.product.Store().Products().Data
	require.Len(t, before, 2)

	form := dto.FormFromProduct(before[0])
	form.Nombre = "Leche deslactosada"
	updated, err := c.product.UpdateProduct(ctx, before[0].ID, form, "")
	require.NoError(t, err)
	assert.Equal(t, "Leche deslactosada", updated.Nombre)

	after := c.product.Store().Products().Data
	require.Len(t, after, 2)
	assert.Equal(t, "Leche deslactosada", after[0].Nombre)
	assert.Equal(t, "Lácteos", after[0].Categoria.Nombre)
	assert.Equal(t, before[1], after[1])
}

func TestProductos_ExpiracionPasadaSinLlamada(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	require.NoError(t, c.product.Load(ctx, 1, ""))
	c.queue.Drain()
	total := c.product.Store().Products().Total

	form := newForm("Yogurt", 1)
	form.FechaExpiracion = c.clock.Now().AddDate(0, 0, -1).Format(entity.DateLayout)
	p, err := c.product.CreateProduct(ctx, form)

	assert.Nil(t, p)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{domain.MsgFechaExpiracion}, messages(c.queue))
	assert.Equal(t, total, c.product.Store().Products().Total)
	assert.Equal(t, 2, c.dev.Data.Products(1, 1, 10, "").Total, "el backend no recibió nada")
}

func TestProductos_CrearYBuscar(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	require.NoError(t, c.product.Load(ctx, 1, ""))

	form := newForm("Yogurt fresa", 1)
	form.FechaExpiracion = c.clock.Now().Format(entity.DateLayout)
	created, err := c.product.CreateProduct(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, 1, created.NegocioID, "negocio tomado del perfil")
	assert.Equal(t, 3, c.product.Store().Products().Total)

	require.NoError(t, c.product.FetchProducts(ctx, 1, "yogurt"))
	page := c.product.Store().Products()
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Yogurt fresa", page.Data[0].Nombre)
}

func TestProductos_PaginaFueraDeRango(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))

	require.NoError(t, c.product.FetchProducts(ctx, 7, ""))
	page := c.product.Store().Products()
	assert.Equal(t, 1, page.Page)
	assert.LessOrEqual(t, page.Page, page.PageCount())
}

func TestProductos_BusquedaVaciaVuelveAPagina1(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))

	require.NoError(t, c.product.FetchProducts(ctx, 5, "zzzz"))
	page := c.product.Store().Products()
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Data)
}

func TestProductos_Categorias(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	require.NoError(t, c.product.FetchCategories(ctx))
	require.Len(t, c.product.Store().Categories(), 2)

	created, err := c.product.CreateCategory(ctx, "Snacks")
	require.NoError(t, err)
	require.Len(t, c.product.Store().Categories(), 3)

	_, err = c.product.UpdateCategory(ctx, created.ID, "Snacks salados")
	require.NoError(t, err)
	assert.Equal(t, "Snacks salados", c.product.Store().Categories()[2].Nombre)

	_, err = c.product.CreateCategory(ctx, "   ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProductos_LogoutVaciaCache(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	require.NoError(t, c.product.Load(ctx, 1, ""))
	require.NotEmpty(t, c.product.Store().Products().Data)

	require.NoError(t, c.auth.Logout())
	assert.Empty(t, c.product.Store().Products().Data)
	assert.Nil(t, c.auth.Profile())
}

func TestUsuarios_RegistrarYActualizar(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))
	require.NoError(t, c.user.FetchUsers(ctx))
	require.Len(t, c.user.Store().Users(), 2)

	u, err := c.user.RegisterUser(ctx, dto.RegisterUserRequest{Nombre: "Luis", Email: "luis@b.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	require.Len(t, c.user.Store().Users(), 3)

	root := c.user.Store().Users()[0]
	_, err = c.user.UpdateUser(ctx, root.ID, updateOf(root, entity.RoleAdmin))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	updated, err := c.user.UpdateUser(ctx, u.ID, updateOf(*u, entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
	assert.Equal(t, entity.RoleAdmin, c.user.Store().Users()[2].Role)
	assert.Contains(t, messages(c.queue), usecase.MsgPerfilActualizado)
}

func TestUsuarios_EdicionParcialConservaEstatus(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))

	// Sin lista cacheada: se recarga antes de aplicar los cambios.
	ana, ok := c.dev.Data.User(2)
	require.True(t, ok)
	updated, err := c.user.UpdateUser(ctx, ana.ID, dto.UpdateUserRequest{Nombre: "Ana G"})
	require.NoError(t, err)
	assert.Equal(t, "Ana G", updated.Nombre)
	assert.Equal(t, ana.Email, updated.Email)
	assert.Equal(t, ana.Role, updated.Role)
	assert.True(t, updated.Estatus)

	stored, _ := c.dev.Data.User(ana.ID)
	assert.True(t, stored.Estatus)
	_, ok = c.dev.Data.Authenticate(ana.Email, "x")
	assert.True(t, ok, "la cuenta sigue activa")

	inactivo := false
	updated, err = c.user.UpdateUser(ctx, ana.ID, dto.UpdateUserRequest{Estatus: &inactivo})
	require.NoError(t, err)
	assert.False(t, updated.Estatus)
	assert.Equal(t, "Ana G", updated.Nombre)
}

func TestUsuarios_ActualizarInexistente(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "root@consola.dev", "root123"))
	c.queue.Drain()

	_, err := c.user.UpdateUser(ctx, 999, dto.UpdateUserRequest{Nombre: "Nadie"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{domain.MsgUsuarioNoExiste}, messages(c.queue))
}

func TestUsuarios_ErrorDelBackend(t *testing.T) {
	c := newConsole(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.auth.Login(ctx, "a@b.com", "x"))
	c.queue.Drain()

	err := c.user.FetchUsers(ctx)
	require.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, []string{usecase.MsgErrorUsuarios}, messages(c.queue))
	assert.Contains(t, c.user.Store().LastError(), usecase.MsgErrorUsuarios)
	assert.False(t, c.user.Store().Loading())
}
