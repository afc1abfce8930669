package store

import "github.com/jhoicas/consola-negocios/internal/domain/entity"

// BusinessStore caché de la página actual de negocios y de las categorías de negocio.
type BusinessStore struct {
	status
	Seq        Sequence
	limit      int
	businesses entity.Page[entity.Business]
	categories []entity.BusinessCategory
}

// NewBusinessStore store vacía con el tamaño de página dado.
func NewBusinessStore(limit int) *BusinessStore {
	return &BusinessStore{
		limit:      limit,
		businesses: entity.EmptyPage[entity.Business](limit),
		categories: []entity.BusinessCategory{},
	}
}

// Businesses copia de la página cacheada.
func (s *BusinessStore) Businesses() entity.Page[entity.Business] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.businesses
	p.Data = append([]entity.Business(nil), s.businesses.Data...)
	return p
}

// Categories copia de las categorías cacheadas.
func (s *BusinessStore) Categories() []entity.BusinessCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.BusinessCategory(nil), s.categories...)
}

// ReplaceBusinesses reemplazo total de la página si gen sigue vigente.
func (s *BusinessStore) ReplaceBusinesses(gen uint64, page entity.Page[entity.Business]) bool {
	s.mu.Lock()
	if !s.Seq.IsCurrent(gen) {
		s.mu.Unlock()
		return false
	}
	if page.Data == nil {
		page.Data = []entity.Business{}
	}
	s.businesses = page
	s.mu.Unlock()
	s.changed()
	return true
}

// AppendBusiness agrega el negocio creado por el servidor.
func (s *BusinessStore) AppendBusiness(b entity.Business) {
	s.mu.Lock()
	s.businesses.Data = append(s.businesses.Data, b)
	s.businesses.Total++
	s.mu.Unlock()
	s.changed()
}

// ReplaceBusiness reemplaza por id; false si no estaba en la página.
func (s *BusinessStore) ReplaceBusiness(id int, b entity.Business) bool {
	s.mu.Lock()
	found := false
	for i := range s.businesses.Data {
		if s.businesses.Data[i].ID == id {
			s.businesses.Data[i] = b
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

// ReplaceCategories reemplazo total de categorías.
func (s *BusinessStore) ReplaceCategories(cats []entity.BusinessCategory) {
	if cats == nil {
		cats = []entity.BusinessCategory{}
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	s.changed()
}

// AppendCategory agrega la categoría creada por el servidor.
func (s *BusinessStore) AppendCategory(c entity.BusinessCategory) {
	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()
	s.changed()
}

// Reset vuelve al estado inicial (al cerrar sesión).
func (s *BusinessStore) Reset() {
	s.Seq.Next()
	s.mu.Lock()
	s.businesses = entity.EmptyPage[entity.Business](s.limit)
	s.categories = []entity.BusinessCategory{}
	s.err = ""
	s.mu.Unlock()
	s.changed()
}
