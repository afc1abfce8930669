package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Mensajes de usuarios.
const (
	MsgUsuarioRegistrado     = "Usuario registrado correctamente"
	MsgPerfilActualizado     = "Perfil actualizado correctamente"
	MsgErrorUsuarios         = "No se pudo cargar los datos"
	MsgErrorRegistrarUsuario = "Error al registrar el usuario"
	MsgErrorActualizarPerfil = "Error al actualizar el perfil"
)

// UserUseCase administración de usuarios (vista solo ROOT).
type UserUseCase struct {
	gw       ports.UserGateway
	session  *store.SessionStore
	store    *store.UserStore
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewUserUseCase construye el caso de uso. La lista se vacía al cerrarse la sesión.
func NewUserUseCase(gw ports.UserGateway, session *store.SessionStore, st *store.UserStore, notifier ports.Notifier, log zerolog.Logger) *UserUseCase {
	session.Subscribe(func() {
		if session.Token() == "" {
			st.Reset()
		}
	})
	return &UserUseCase{gw: gw, session: session, store: st, notifier: notifier, log: log}
}

// Store store subyacente (lectura).
func (uc *UserUseCase) Store() *store.UserStore { return uc.store }

// FetchUsers reemplaza la lista cacheada.
func (uc *UserUseCase) FetchUsers(ctx context.Context) error {
	token := uc.session.Token()
	if token == "" {
		return nil
	}
	gen := uc.store.Seq.Next()
	return track(uc.store, uc.notifier, uc.log, MsgErrorUsuarios, func() error {
		users, err := uc.gw.ListUsers(ctx, token)
		if err != nil {
			return err
		}
		if !uc.store.SetUsers(gen, users) {
			return fmt.Errorf("usuarios: %w", domain.ErrStaleResponse)
		}
		return nil
	})
}

// RegisterUser alta de usuario; el rol por defecto es USER.
func (uc *UserUseCase) RegisterUser(ctx context.Context, in dto.RegisterUserRequest) (*entity.User, error) {
	token := uc.session.Token()
	if token == "" {
		return nil, nil
	}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if err := domain.ValidateNewUser(in.User(), in.Password); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var created *entity.User
	err := track(uc.store, uc.notifier, uc.log, MsgErrorRegistrarUsuario, func() error {
		u, err := uc.gw.RegisterUser(ctx, token, in)
		if err != nil {
			return err
		}
		uc.store.AddUser(*u)
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgUsuarioRegistrado)
	return created, nil
}

// UpdateUser edita el perfil de un usuario por id. Los campos enviados se aplican sobre el
// registro cacheado (se recarga la lista si no está), así un campo omitido no viaja en cero.
// A un usuario ROOT no se le cambia el rol.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id int, in dto.UpdateUserRequest) (*entity.User, error) {
	token := uc.session.Token()
	if token == "" || id == 0 {
		return nil, nil
	}
	if in.Role != "" && !entity.ValidRole(in.Role) {
		return nil, rejectInvalid(uc.notifier, domain.Invalid("role", domain.MsgRolInvalido))
	}
	current, ok := uc.cached(id)
	if !ok {
		if err := uc.FetchUsers(ctx); err != nil {
			return nil, err
		}
		if current, ok = uc.cached(id); !ok {
			return nil, rejectInvalid(uc.notifier, domain.Invalid("id", domain.MsgUsuarioNoExiste))
		}
	}
	if current.Role == entity.RoleRoot && in.Role != "" && in.Role != entity.RoleRoot {
		return nil, rejectInvalid(uc.notifier, domain.Invalid("role", domain.MsgRolRootInmutable))
	}
	in = in.Apply(current)
	if err := domain.ValidateUserUpdate(entity.User{Nombre: in.Nombre, Email: in.Email, Role: in.Role}); err != nil {
		return nil, rejectInvalid(uc.notifier, err)
	}
	var updated *entity.User
	err := track(uc.store, uc.notifier, uc.log, MsgErrorActualizarPerfil, func() error {
		u, err := uc.gw.UpdateProfile(ctx, token, id, in)
		if err != nil {
			return err
		}
		if u.ID == 0 {
			u.ID = id
		}
		uc.store.UpdateUser(id, *u)
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Success(MsgPerfilActualizado)
	return updated, nil
}

func (uc *UserUseCase) cached(id int) (entity.User, bool) {
	for _, u := range uc.store.Users() {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}
