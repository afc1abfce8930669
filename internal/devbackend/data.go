// Package devbackend backend REST en memoria que habla el mismo contrato que el backend
// real de negocios. Lo usan cmd/devbackend y las pruebas de punta a punta de la consola.
package devbackend

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// account usuario con el hash bcrypt de su contraseña.
type account struct {
	user entity.User
	hash []byte
}

// Data estado en memoria del backend de desarrollo.
type Data struct {
	mu sync.RWMutex

	users        []account
	businesses   []entity.Business
	busCats      []entity.BusinessCategory
	products     []entity.Product
	prodCats     []entity.ProductCategory
	nextUser     int
	nextBusiness int
	nextBusCat   int
	nextProduct  int
	nextProdCat  int
}

// NewData datos vacíos.
func NewData() *Data {
	return &Data{nextUser: 1, nextBusiness: 1, nextBusCat: 1, nextProduct: 1, nextProdCat: 1}
}

// Seed datos iniciales: un negocio con un ROOT y un ADMIN, categorías y algunos productos.
func Seed() *Data {
	d := NewData()
	for _, n := range []string{"Restaurante", "Farmacia", "Tienda"} {
		d.AddBusinessCategory(n)
	}
	central := d.AddBusiness(entity.Business{
		Nombre: "Negocio Central", Propietario: "Laura Pérez", Direccion: "Av. Principal 123",
		Telefono: "987654321", Estatus: true, CategoriaID: 3,
	})
	d.AddUser(entity.User{Nombre: "Administrador", Email: "root@consola.dev", Role: entity.RoleRoot, Estatus: true, NegocioID: central.ID}, "root123")
	d.AddUser(entity.User{Nombre: "Ana Gómez", Email: "a@b.com", Role: entity.RoleAdmin, Estatus: true, NegocioID: central.ID}, "x")

	lacteos := d.AddProductCategory(central.ID, "Lácteos")
	bebidas := d.AddProductCategory(central.ID, "Bebidas")
	venc := entity.NewDate(time.Now().AddDate(0, 6, 0))
	sku := "LEC-001"
	d.AddProduct(entity.Product{
		Nombre: "Leche entera", Descripcion: "Caja 1L", SKU: &sku, Precio: decimal.RequireFromString("3.90"),
		Stock: decimal.NewFromInt(40), TipoUnidad: "und", Estatus: true, FechaExpiracion: &venc,
		NegocioID: central.ID, CategoriaID: lacteos.ID,
	})
	d.AddProduct(entity.Product{
		Nombre: "Agua mineral", Descripcion: "Botella 625ml", Precio: decimal.RequireFromString("1.50"),
		Stock: decimal.NewFromInt(120), TipoUnidad: "und", Estatus: true,
		NegocioID: central.ID, CategoriaID: bebidas.ID,
	})
	return d
}

// AddUser alta de usuario: hashea la contraseña con bcrypt y devuelve el usuario con id asignado.
func (d *Data) AddUser(u entity.User, password string) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	u.ID = d.nextUser
	d.nextUser++
	d.users = append(d.users, account{user: u, hash: hash})
	return d.withNegocioLocked(u), nil
}

// Authenticate busca por email y compara la contraseña con el hash. Un usuario inactivo no entra.
func (d *Data) Authenticate(email, password string) (entity.User, bool) {
	d.mu.RLock()
	var found *account
	for i := range d.users {
		if strings.EqualFold(d.users[i].user.Email, email) {
			a := d.users[i]
			found = &a
			break
		}
	}
	d.mu.RUnlock()
	if found == nil || !found.user.Estatus {
		return entity.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword(found.hash, []byte(password)); err != nil {
		return entity.User{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.withNegocioLocked(found.user), true
}

// EmailTaken indica si ya hay un usuario con ese email.
func (d *Data) EmailTaken(email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.users {
		if strings.EqualFold(a.user.Email, email) {
			return true
		}
	}
	return false
}

// User usuario por id con el negocio anidado.
func (d *Data) User(id int) (entity.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.users {
		if a.user.ID == id {
			return d.withNegocioLocked(a.user), true
		}
	}
	return entity.User{}, false
}

// Users todos los usuarios con el negocio anidado.
func (d *Data) Users() []entity.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]entity.User, 0, len(d.users))
	for _, a := range d.users {
		out = append(out, d.withNegocioLocked(a.user))
	}
	return out
}

// UpdateUser reemplaza los campos editables; password vacío no cambia la contraseña.
// ok=false si el id no existe.
func (d *Data) UpdateUser(id int, u entity.User, password string) (entity.User, bool, error) {
	var hash []byte
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, false, err
		}
		hash = h
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].user.ID != id {
			continue
		}
		u.ID = id
		u.Negocio = nil
		d.users[i].user = u
		if hash != nil {
			d.users[i].hash = hash
		}
		return d.withNegocioLocked(u), true, nil
	}
	return entity.User{}, false, nil
}

func (d *Data) withNegocioLocked(u entity.User) entity.User {
	for _, b := range d.businesses {
		if b.ID == u.NegocioID {
			u.Negocio = &entity.NegocioRef{Nombre: b.Nombre}
			return u
		}
	}
	u.Negocio = nil
	return u
}

// AddBusinessCategory alta de categoría de negocio.
func (d *Data) AddBusinessCategory(nombre string) entity.BusinessCategory {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := entity.BusinessCategory{ID: d.nextBusCat, Nombre: nombre}
	d.nextBusCat++
	d.busCats = append(d.busCats, c)
	return c
}

// BusinessCategories lista plana.
func (d *Data) BusinessCategories() []entity.BusinessCategory {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]entity.BusinessCategory{}, d.busCats...)
}

// AddBusiness alta de negocio.
func (d *Data) AddBusiness(b entity.Business) entity.Business {
	d.mu.Lock()
	defer d.mu.Unlock()
	b.ID = d.nextBusiness
	d.nextBusiness++
	d.businesses = append(d.businesses, b)
	return b
}

// UpdateBusiness reemplazo por id.
func (d *Data) UpdateBusiness(id int, b entity.Business) (entity.Business, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.businesses {
		if d.businesses[i].ID == id {
			b.ID = id
			d.businesses[i] = b
			return b, true
		}
	}
	return entity.Business{}, false
}

// Businesses página 1-based de negocios ordenados por id.
func (d *Data) Businesses(page, limit int) entity.Page[entity.Business] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return paginate(d.businesses, page, limit)
}

// AddProductCategory alta de categoría de producto del negocio.
func (d *Data) AddProductCategory(negocioID int, nombre string) entity.ProductCategory {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := entity.ProductCategory{ID: d.nextProdCat, NegocioID: negocioID, Nombre: nombre}
	d.nextProdCat++
	d.prodCats = append(d.prodCats, c)
	return c
}

// UpdateProductCategory renombra; false si no existe en ese negocio.
func (d *Data) UpdateProductCategory(negocioID, id int, nombre string) (entity.ProductCategory, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.prodCats {
		if d.prodCats[i].ID == id && d.prodCats[i].NegocioID == negocioID {
			d.prodCats[i].Nombre = nombre
			return d.prodCats[i], true
		}
	}
	return entity.ProductCategory{}, false
}

// ProductCategories categorías del negocio.
func (d *Data) ProductCategories(negocioID int) []entity.ProductCategory {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []entity.ProductCategory{}
	for _, c := range d.prodCats {
		if c.NegocioID == negocioID {
			out = append(out, c)
		}
	}
	return out
}

// AddProduct alta de producto con la categoría anidada.
func (d *Data) AddProduct(p entity.Product) entity.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	p.ID = d.nextProduct
	d.nextProduct++
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt, p.UpdatedAt = now, now
	p.Categoria = nil
	d.products = append(d.products, p)
	return d.withCategoryLocked(p)
}

// UpdateProduct reemplazo por id. La respuesta no trae la categoría anidada, como el backend real.
func (d *Data) UpdateProduct(id int, p entity.Product) (entity.Product, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.products {
		if d.products[i].ID != id {
			continue
		}
		p.ID = id
		p.CreatedAt = d.products[i].CreatedAt
		p.CreatedBy = d.products[i].CreatedBy
		p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		p.Categoria = nil
		d.products[i] = p
		return p, true
	}
	return entity.Product{}, false
}

// Product producto por id.
func (d *Data) Product(id int) (entity.Product, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.products {
		if p.ID == id {
			return d.withCategoryLocked(p), true
		}
	}
	return entity.Product{}, false
}

// Products página de productos del negocio; search filtra sin distinguir mayúsculas por nombre o sku.
func (d *Data) Products(negocioID, page, limit int, search string) entity.Page[entity.Product] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	search = strings.ToLower(strings.TrimSpace(search))
	var match []entity.Product
	for _, p := range d.products {
		if p.NegocioID != negocioID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Nombre), search) &&
			!strings.Contains(strings.ToLower(p.SKUOrEmpty()), search) {
			continue
		}
		match = append(match, d.withCategoryLocked(p))
	}
	return paginate(match, page, limit)
}

func (d *Data) withCategoryLocked(p entity.Product) entity.Product {
	for _, c := range d.prodCats {
		if c.ID == p.CategoriaID {
			p.Categoria = &entity.CategoryRef{Nombre: c.Nombre}
			break
		}
	}
	return p
}

func paginate[T any](all []T, page, limit int) entity.Page[T] {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	out := entity.Page[T]{Total: len(all), Page: page, Limit: limit, Data: []T{}}
	start := (page - 1) * limit
	if start >= len(all) {
		return out
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	out.Data = append(out.Data, all[start:end]...)
	return out
}
