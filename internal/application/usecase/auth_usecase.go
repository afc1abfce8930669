package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Estados del login.
const (
	StateAnonymous      = "anonymous"
	StateAuthenticating = "authenticating"
	StateAuthenticated  = "authenticated"
)

// Mensajes del flujo de autenticación.
const (
	MsgLoginOK            = "Inicio de sesión exitoso"
	MsgCredenciales       = "Credenciales incorrectas"
	MsgErrorLogin         = "Error en el login"
	MsgPerfilNoDisponible = "No se pudo cargar el perfil"
)

// AuthUseCase orquesta login, logout y perfil del operador:
// anonymous → authenticating → authenticated → (logout | expiración) → anonymous.
type AuthUseCase struct {
	auth     ports.AuthGateway
	session  *store.SessionStore
	notifier ports.Notifier
	log      zerolog.Logger
	seq      store.Sequence

	mu      sync.RWMutex
	state   string
	profile *entity.User
	err     string
}

// NewAuthUseCase construye el caso de uso. El estado inicial sigue a la sesión restaurada
// y cualquier cierre de sesión posterior (manual, timer o 401) lo devuelve a anonymous.
func NewAuthUseCase(auth ports.AuthGateway, session *store.SessionStore, notifier ports.Notifier, log zerolog.Logger) *AuthUseCase {
	uc := &AuthUseCase{auth: auth, session: session, notifier: notifier, log: log, state: StateAnonymous}
	if session.Token() != "" {
		uc.state = StateAuthenticated
	}
	session.Subscribe(uc.onSessionChange)
	return uc
}

func (uc *AuthUseCase) onSessionChange() {
	if uc.session.Token() != "" {
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state == StateAuthenticating {
		return
	}
	uc.state = StateAnonymous
	uc.profile = nil
}

// State estado actual del login.
func (uc *AuthUseCase) State() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state
}

// Error último error del login o del perfil.
func (uc *AuthUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.err
}

// Profile perfil cacheado o nil.
func (uc *AuthUseCase) Profile() *entity.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.profile == nil {
		return nil
	}
	p := *uc.profile
	return &p
}

func (uc *AuthUseCase) setState(state, errMsg string) {
	uc.mu.Lock()
	uc.state = state
	uc.err = errMsg
	uc.mu.Unlock()
}

// Login autentica, decodifica la expiración del token y carga el perfil para fijar el rol.
// Si el perfil falla con otro error que no sea 401 la sesión se establece igual con rol USER.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return rejectInvalid(uc.notifier, domain.Invalid("credenciales", domain.MsgCamposRequeridos))
	}
	uc.setState(StateAuthenticating, "")

	token, err := uc.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		uc.setState(StateAnonymous, MsgErrorLogin)
		uc.notifier.Error(MsgCredenciales)
		uc.log.Warn().Err(err).Str("email", email).Msg("login rechazado")
		return err
	}

	role := entity.RoleUser
	profile, err := uc.auth.Profile(ctx, token)
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		uc.setState(StateAnonymous, MsgErrorLogin)
		uc.notifier.Error(store.MsgSesionExpiradaPerfil)
		return err
	case err != nil:
		uc.log.Warn().Err(err).Msg("perfil no disponible tras el login")
		uc.notifier.Error(MsgPerfilNoDisponible)
		profile = nil
	case entity.ValidRole(profile.Role):
		role = profile.Role
	}

	if err := uc.session.Establish(token, role); err != nil {
		uc.setState(StateAnonymous, MsgErrorLogin)
		uc.notifier.Error(MsgCredenciales)
		uc.log.Warn().Err(err).Msg("token de login inutilizable")
		return err
	}

	uc.mu.Lock()
	uc.state = StateAuthenticated
	uc.err = ""
	uc.profile = profile
	uc.mu.Unlock()
	uc.notifier.Success(MsgLoginOK)
	return nil
}

// Logout cierre manual; detiene el timer de expiración.
func (uc *AuthUseCase) Logout() error {
	err := uc.session.Logout()
	uc.setState(StateAnonymous, "")
	uc.log.Info().Msg("sesión cerrada por el operador")
	return err
}

// LoadProfile pide el perfil con el token actual. Sin token no hace nada.
// Un 401 cierra la sesión y avisa una única vez.
func (uc *AuthUseCase) LoadProfile(ctx context.Context) (*entity.User, error) {
	token := uc.session.Token()
	if token == "" {
		return nil, nil
	}
	gen := uc.seq.Next()

	u, err := uc.auth.Profile(ctx, token)
	if errors.Is(err, domain.ErrSessionExpired) {
		uc.session.Expire(store.MsgSesionExpiradaPerfil)
		return nil, err
	}
	if err != nil {
		uc.mu.Lock()
		uc.err = MsgPerfilNoDisponible
		uc.mu.Unlock()
		uc.notifier.Error(MsgPerfilNoDisponible)
		uc.log.Warn().Err(err).Msg("cargar perfil")
		return nil, err
	}
	if !uc.seq.IsCurrent(gen) || uc.session.Token() != token {
		return uc.Profile(), nil
	}

	uc.mu.Lock()
	uc.profile = u
	uc.err = ""
	uc.mu.Unlock()

	if entity.ValidRole(u.Role) && u.Role != uc.session.Role() {
		if err := uc.session.SetRole(u.Role); err != nil {
			uc.log.Error().Err(err).Msg("persistir rol")
		}
	}
	return uc.Profile(), nil
}

// EnsureProfile perfil cacheado o, si no hay, lo carga. Sin sesión devuelve domain.ErrNoSession.
func (uc *AuthUseCase) EnsureProfile(ctx context.Context) (*entity.User, error) {
	if p := uc.Profile(); p != nil {
		return p, nil
	}
	p, err := uc.LoadProfile(ctx)
	if err == nil && p == nil {
		return nil, domain.ErrNoSession
	}
	return p, err
}

// Token token de la sesión actual.
func (uc *AuthUseCase) Token() string { return uc.session.Token() }

// Role rol de la sesión actual.
func (uc *AuthUseCase) Role() string { return uc.session.Role() }
