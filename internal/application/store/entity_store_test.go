package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

func TestStatus_ContadorDeCargas(t *testing.T) {
	s := store.NewBusinessStore(10)
	s.Begin()
	s.Begin()
	assert.True(t, s.Loading())

	s.Finish("")
	assert.True(t, s.Loading(), "queda una carga en vuelo")

	s.Finish("Error al obtener categorías")
	assert.False(t, s.Loading())
	assert.Equal(t, "Error al obtener categorías", s.LastError())

	s.Begin()
	assert.Empty(t, s.LastError(), "una nueva carga limpia el error")
	s.Finish("")
}

func TestSequence_DescartaRespuestasViejas(t *testing.T) {
	s := store.NewProductStore(10)
	g1 := s.Seq.Next()
	g2 := s.Seq.Next()

	ok := s.ReplacePage(g2, entity.Page[entity.Product]{Total: 1, Page: 2, Limit: 10, Data: []entity.Product{{ID: 2}}})
	require.True(t, ok)

	ok = s.ReplacePage(g1, entity.Page[entity.Product]{Total: 1, Page: 1, Limit: 10, Data: []entity.Product{{ID: 1}}})
	assert.False(t, ok)
	assert.Equal(t, 2, s.Products().Page)
	assert.Equal(t, 2, s.Products().Data[0].ID)
}

func TestProductStore_UpdateSoloTocaElId(t *testing.T) {
	s := store.NewProductStore(10)
	gen := s.Seq.Next()
	s.ReplacePage(gen, entity.Page[entity.Product]{Total: 3, Page: 1, Limit: 10, Data: []entity.Product{
		{ID: 1, Nombre: "A", CategoriaID: 5, Categoria: &entity.CategoryRef{Nombre: "Bebidas"}},
		{ID: 2, Nombre: "B"},
		{ID: 3, Nombre: "C"},
	}})

	require.True(t, s.UpdateProduct(1, entity.Product{ID: 1, Nombre: "A2", CategoriaID: 5}))

	got := s.Products().Data
	require.Len(t, got, 3)
	assert.Equal(t, "A2", got[0].Nombre)
	require.NotNil(t, got[0].Categoria)
	assert.Equal(t, "Bebidas", got[0].Categoria.Nombre)
	assert.Equal(t, "B", got[1].Nombre)
	assert.Equal(t, "C", got[2].Nombre)

	assert.False(t, s.UpdateProduct(99, entity.Product{ID: 99}))
}

func TestProductStore_AddYCategorias(t *testing.T) {
	s := store.NewProductStore(10)
	s.AddProduct(entity.Product{ID: 7})
	assert.Equal(t, 1, s.Products().Total)

	s.ReplaceCategories([]entity.ProductCategory{{ID: 1, Nombre: "Lácteos"}})
	s.AddCategory(entity.ProductCategory{ID: 2, Nombre: "Bebidas"})
	require.Len(t, s.Categories(), 2)

	require.True(t, s.UpdateCategory(1, entity.ProductCategory{ID: 1, Nombre: "Lácteos y derivados"}))
	assert.Equal(t, "Lácteos y derivados", s.Categories()[0].Nombre)

	s.Reset()
	assert.Empty(t, s.Products().Data)
	assert.Empty(t, s.Categories())
}

func TestBusinessStore_CategoriaCreadaSeAgregaUnaVez(t *testing.T) {
	s := store.NewBusinessStore(10)
	s.ReplaceCategories([]entity.BusinessCategory{{ID: 1, Nombre: "Restaurante"}})

	s.AppendCategory(entity.BusinessCategory{ID: 2, Nombre: "Farmacia"})

	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Farmacia", cats[1].Nombre)
}

func TestBusinessStore_ReplaceYAppend(t *testing.T) {
	s := store.NewBusinessStore(10)
	gen := s.Seq.Next()
	require.True(t, s.ReplaceBusinesses(gen, entity.Page[entity.Business]{Total: 1, Page: 1, Limit: 10, Data: []entity.Business{{ID: 1, Nombre: "Uno"}}}))

	s.AppendBusiness(entity.Business{ID: 2, Nombre: "Dos"})
	assert.Equal(t, 2, s.Businesses().Total)

	require.True(t, s.ReplaceBusiness(1, entity.Business{ID: 1, Nombre: "Uno bis"}))
	assert.Equal(t, "Uno bis", s.Businesses().Data[0].Nombre)
	assert.False(t, s.ReplaceBusiness(42, entity.Business{}))
}

func TestUserStore(t *testing.T) {
	s := store.NewUserStore()
	gen := s.Seq.Next()
	require.True(t, s.SetUsers(gen, []entity.User{{ID: 1, Nombre: "Ana"}}))
	s.AddUser(entity.User{ID: 2, Nombre: "Luis"})
	require.True(t, s.UpdateUser(1, entity.User{ID: 1, Nombre: "Ana María"}))

	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "Ana María", users[0].Nombre)
	assert.False(t, s.SetUsers(gen-1, nil))
}

func TestReset_DescartaCargasEnVuelo(t *testing.T) {
	b := store.NewBusinessStore(10)
	gen := b.Seq.Next()
	require.True(t, b.ReplaceBusinesses(gen, entity.Page[entity.Business]{Data: []entity.Business{{ID: 1}}, Total: 1, Page: 1, Limit: 10}))
	b.AppendCategory(entity.BusinessCategory{ID: 1, Nombre: "Farmacia"})
	inFlight := b.Seq.Next()
	b.Reset()
	assert.Empty(t, b.Businesses().Data)
	assert.Equal(t, 10, b.Businesses().Limit)
	assert.Empty(t, b.Categories())
	assert.False(t, b.ReplaceBusinesses(inFlight, entity.Page[entity.Business]{Data: []entity.Business{{ID: 2}}}))

	u := store.NewUserStore()
	gen = u.Seq.Next()
	require.True(t, u.SetUsers(gen, []entity.User{{ID: 1}}))
	inFlight = u.Seq.Next()
	u.Reset()
	assert.Empty(t, u.Users())
	assert.False(t, u.SetUsers(inFlight, []entity.User{{ID: 2}}))
}
