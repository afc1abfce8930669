package store

import "github.com/jhoicas/consola-negocios/internal/domain/entity"

// ProductStore caché de la página actual de productos (siempre normalizada como
// entity.Page) y de las categorías de producto del negocio.
type ProductStore struct {
	status
	Seq        Sequence
	limit      int
	products   entity.Page[entity.Product]
	categories []entity.ProductCategory
}

// NewProductStore store vacía con el tamaño de página dado.
func NewProductStore(limit int) *ProductStore {
	return &ProductStore{
		limit:      limit,
		products:   entity.EmptyPage[entity.Product](limit),
		categories: []entity.ProductCategory{},
	}
}

// Products copia de la página cacheada.
func (s *ProductStore) Products() entity.Page[entity.Product] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.products
	p.Data = append([]entity.Product(nil), s.products.Data...)
	return p
}

// Categories copia de las categorías cacheadas.
func (s *ProductStore) Categories() []entity.ProductCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.ProductCategory(nil), s.categories...)
}

// ReplacePage reemplazo total de la página si gen sigue vigente.
func (s *ProductStore) ReplacePage(gen uint64, page entity.Page[entity.Product]) bool {
	s.mu.Lock()
	if !s.Seq.IsCurrent(gen) {
		s.mu.Unlock()
		return false
	}
	if page.Data == nil {
		page.Data = []entity.Product{}
	}
	if page.Limit <= 0 {
		page.Limit = s.limit
	}
	if page.Page <= 0 {
		page.Page = 1
	}
	s.products = page
	s.mu.Unlock()
	s.changed()
	return true
}

// ResetPage vacía la página si gen sigue vigente (fallo al listar).
func (s *ProductStore) ResetPage(gen uint64) {
	s.ReplacePage(gen, entity.EmptyPage[entity.Product](s.limit))
}

// AddProduct agrega el producto creado y suma uno al total.
func (s *ProductStore) AddProduct(p entity.Product) {
	s.mu.Lock()
	s.products.Data = append(s.products.Data, p)
	s.products.Total++
	s.mu.Unlock()
	s.changed()
}

// UpdateProduct reemplaza solo el producto con ese id; el resto de la página no se toca.
// Si la respuesta no trae la categoría anidada y la categoría no cambió, se conserva la anterior.
func (s *ProductStore) UpdateProduct(id int, p entity.Product) bool {
	s.mu.Lock()
	found := false
	for i := range s.products.Data {
		old := s.products.Data[i]
		if old.ID != id {
			continue
		}
		if p.Categoria == nil && p.CategoriaID == old.CategoriaID {
			p.Categoria = old.Categoria
		}
		s.products.Data[i] = p
		found = true
		break
	}
	s.mu.Unlock()
	if found {
		s.changed()
	}
	return found
}

// ReplaceCategories reemplazo total de categorías.
func (s *ProductStore) ReplaceCategories(cats []entity.ProductCategory) {
	if cats == nil {
		cats = []entity.ProductCategory{}
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	s.changed()
}

// AddCategory agrega la categoría creada.
func (s *ProductStore) AddCategory(c entity.ProductCategory) {
	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()
	s.changed()
}

// UpdateCategory reemplaza la categoría con ese id.
func (s *ProductStore) UpdateCategory(id int, c entity.ProductCategory) bool {
	s.mu.Lock()
	found := false
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = c
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.changed()
	}
	return found
}

// Reset vuelve al estado inicial (al cerrar sesión).
func (s *ProductStore) Reset() {
	s.Seq.Next()
	s.mu.Lock()
	s.products = entity.EmptyPage[entity.Product](s.limit)
	s.categories = []entity.ProductCategory{}
	s.err = ""
	s.mu.Unlock()
	s.changed()
}
