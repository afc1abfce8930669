package view

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// UsersView usuarios agrupados por negocio. Los grupos arrancan expandidos; el filtro
// por nombre o email ignora mayúsculas y tildes.
type UsersView struct {
	mu        sync.Mutex
	uc        *usecase.UserUseCase
	collapsed map[int]bool
	query     string
}

func NewUsersView(uc *usecase.UserUseCase) *UsersView {
	return &UsersView{uc: uc, collapsed: map[int]bool{}}
}

// Open pide la lista de usuarios.
func (v *UsersView) Open(ctx context.Context) error {
	return v.uc.FetchUsers(ctx)
}

// Filter fija el texto de búsqueda (sin llamada de red).
func (v *UsersView) Filter(q string) {
	v.mu.Lock()
	v.query = strings.TrimSpace(q)
	v.mu.Unlock()
}

// ToggleGroup expande o colapsa el grupo del negocio; devuelve el estado nuevo (expandido).
func (v *UsersView) ToggleGroup(negocioID int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.collapsed[negocioID] = !v.collapsed[negocioID]
	return !v.collapsed[negocioID]
}

// Register alta de usuario.
func (v *UsersView) Register(ctx context.Context, in dto.RegisterUserRequest) (*entity.User, error) {
	return v.uc.RegisterUser(ctx, in)
}

// Edit copia editable del usuario id de la lista cacheada.
func (v *UsersView) Edit(id int) (dto.UpdateUserRequest, bool) {
	for _, u := range v.uc.Store().Users() {
		if u.ID == id {
			return dto.UpdateFromUser(u), true
		}
	}
	return dto.UpdateUserRequest{}, false
}

// Update edición de perfil por id; lo omitido conserva el valor actual.
func (v *UsersView) Update(ctx context.Context, id int, in dto.UpdateUserRequest) (*entity.User, error) {
	return v.uc.UpdateUser(ctx, id, in)
}

// Response grupos ordenados por id de negocio; los usuarios de cada grupo en el orden del backend.
func (v *UsersView) Response() dto.UsersViewResponse {
	v.mu.Lock()
	query := v.query
	collapsed := make(map[int]bool, len(v.collapsed))
	for k, c := range v.collapsed {
		collapsed[k] = c
	}
	v.mu.Unlock()

	st := v.uc.Store()
	needle := fold(query)
	byNegocio := map[int]*dto.UserGroup{}
	var ids []int
	for _, u := range st.Users() {
		if needle != "" && !strings.Contains(fold(u.Nombre), needle) && !strings.Contains(fold(u.Email), needle) {
			continue
		}
		g, ok := byNegocio[u.NegocioID]
		if !ok {
			g = &dto.UserGroup{NegocioID: u.NegocioID, Expanded: !collapsed[u.NegocioID], Users: []entity.User{}}
			byNegocio[u.NegocioID] = g
			ids = append(ids, u.NegocioID)
		}
		if g.Negocio == "" {
			g.Negocio = u.NegocioNombre()
		}
		g.Users = append(g.Users, u)
	}
	sort.Ints(ids)
	groups := make([]dto.UserGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, *byNegocio[id])
	}
	return dto.UsersViewResponse{
		Query:   query,
		Loading: st.Loading(),
		Error:   st.LastError(),
		Groups:  groups,
	}
}

// fold minúsculas sin marcas diacríticas: "José" -> "jose".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
