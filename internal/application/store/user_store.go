package store

import "github.com/jhoicas/consola-negocios/internal/domain/entity"

// UserStore caché de la lista de usuarios.
type UserStore struct {
	status
	Seq   Sequence
	users []entity.User
}

// NewUserStore store vacía.
func NewUserStore() *UserStore {
	return &UserStore{users: []entity.User{}}
}

// Users copia de la lista cacheada.
func (s *UserStore) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.User(nil), s.users...)
}

// SetUsers reemplazo total si gen sigue vigente.
func (s *UserStore) SetUsers(gen uint64, users []entity.User) bool {
	s.mu.Lock()
	if !s.Seq.IsCurrent(gen) {
		s.mu.Unlock()
		return false
	}
	if users == nil {
		users = []entity.User{}
	}
	s.users = users
	s.mu.Unlock()
	s.changed()
	return true
}

// AddUser agrega el usuario registrado.
func (s *UserStore) AddUser(u entity.User) {
	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()
	s.changed()
}

// UpdateUser reemplaza por id.
func (s *UserStore) UpdateUser(id int, u entity.User) bool {
	s.mu.Lock()
	found := false
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = u
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

// Reset vacía la lista (al cerrar sesión).
func (s *UserStore) Reset() {
	s.Seq.Next()
	s.mu.Lock()
	s.users = []entity.User{}
	s.err = ""
	s.mu.Unlock()
	s.changed()
}
