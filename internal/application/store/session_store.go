package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/pkg/clock"
	"github.com/jhoicas/consola-negocios/pkg/jwt"
)

// Mensajes de expiración de sesión.
const (
	MsgSesionExpirada       = "Tu sesión ha expirado. Inicia sesión nuevamente."
	MsgSesionExpiradaPerfil = "Sesión expirado, por favor inicia sesión"
)

// Session copia inmutable del estado de sesión.
type Session struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

// Authenticated hay token.
func (s Session) Authenticated() bool { return s.Token != "" }

// SessionStore token y rol del operador, persistidos en el almacén durable. Es la única
// fuente de verdad de "hay sesión". Guarda el handle del timer de expiración y lo
// cancela en Logout sea cual sea el disparador.
type SessionStore struct {
	mu        sync.RWMutex
	token     string
	role      string
	expiresAt time.Time
	timer     clock.Timer
	timerGen  uint64

	kv       ports.KeyValueStore
	clock    clock.Clock
	notifier ports.Notifier
	log      zerolog.Logger
	obs      observers
	onExpire func()
}

// NewSessionStore restaura la sesión persistida. Si falta token o rol, o el token ya
// expiró o no se puede decodificar, se limpia; si no, se rearma el timer de expiración.
func NewSessionStore(kv ports.KeyValueStore, clk clock.Clock, notifier ports.Notifier, log zerolog.Logger) (*SessionStore, error) {
	s := &SessionStore{kv: kv, clock: clk, notifier: notifier, log: log}

	token, okToken, err := kv.Get(ports.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("sesión: restaurar token: %w", err)
	}
	role, okRole, err := kv.Get(ports.KeyRole)
	if err != nil {
		return nil, fmt.Errorf("sesión: restaurar rol: %w", err)
	}
	if !okToken && !okRole {
		return s, nil
	}
	if !okToken || !okRole || token == "" || role == "" {
		log.Warn().Msg("sesión persistida incompleta; se descarta")
		return s, s.Logout()
	}
	exp, err := jwt.ExpiresAt(token)
	if err != nil || !exp.After(clk.Now()) {
		log.Info().Msg("sesión persistida expirada; se descarta")
		return s, s.Logout()
	}

	s.mu.Lock()
	s.token, s.role, s.expiresAt = token, role, exp
	s.armLocked(exp)
	s.mu.Unlock()
	log.Info().Str("role", role).Time("expires_at", exp).Msg("sesión restaurada")
	return s, nil
}

// Snapshot estado actual.
func (s *SessionStore) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Token: s.token, Role: s.role, ExpiresAt: s.expiresAt}
}

// Token token actual o "".
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Role rol actual o "".
func (s *SessionStore) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetToken persiste (o borra si es "") el token. Un token no vacío programa la
// expiración automática según su claim exp.
func (s *SessionStore) SetToken(token string) error {
	if token == "" {
		s.mu.Lock()
		s.stopTimerLocked()
		s.token, s.expiresAt = "", time.Time{}
		s.mu.Unlock()
		err := s.kv.Delete(ports.KeyToken)
		s.obs.notify()
		return err
	}
	exp, err := jwt.ExpiresAt(token)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ports.KeyToken, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token, s.expiresAt = token, exp
	s.armLocked(exp)
	s.mu.Unlock()
	s.obs.notify()
	return nil
}

// SetRole persiste (o borra si es "") el rol.
func (s *SessionStore) SetRole(role string) error {
	var err error
	if role == "" {
		err = s.kv.Delete(ports.KeyRole)
	} else {
		err = s.kv.Set(ports.KeyRole, role)
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.role = role
	s.mu.Unlock()
	s.obs.notify()
	return nil
}

// Establish fija token y rol juntos; es la vía usada tras un login correcto.
func (s *SessionStore) Establish(token, role string) error {
	exp, err := jwt.ExpiresAt(token)
	if err != nil {
		return err
	}
	if !exp.After(s.clock.Now()) {
		return domain.ErrSessionExpired
	}
	if err := s.kv.Set(ports.KeyToken, token); err != nil {
		return err
	}
	if err := s.kv.Set(ports.KeyRole, role); err != nil {
		_ = s.kv.Delete(ports.KeyToken)
		return err
	}
	s.mu.Lock()
	s.token, s.role, s.expiresAt = token, role, exp
	s.armLocked(exp)
	s.mu.Unlock()
	s.obs.notify()
	s.log.Info().Str("role", role).Time("expires_at", exp).Msg("sesión iniciada")
	return nil
}

// Logout borra la sesión persistida, detiene el timer y deja token y rol vacíos.
// Las preferencias (columnas, tema) no se tocan.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.token, s.role, s.expiresAt = "", "", time.Time{}
	s.mu.Unlock()
	err := s.kv.Delete(ports.KeyToken, ports.KeyRole)
	s.obs.notify()
	return err
}

// Expire cierra la sesión forzadamente y avisa al operador una sola vez: si ya no había
// sesión no hace nada y devuelve false.
func (s *SessionStore) Expire(msg string) bool {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return false
	}
	s.stopTimerLocked()
	s.token, s.role, s.expiresAt = "", "", time.Time{}
	s.mu.Unlock()

	if err := s.kv.Delete(ports.KeyToken, ports.KeyRole); err != nil {
		s.log.Error().Err(err).Msg("borrar sesión expirada")
	}
	s.obs.notify()
	s.log.Info().Msg("sesión expirada")
	s.notifier.Error(msg)
	if s.onExpire != nil {
		s.onExpire()
	}
	return true
}

// OnExpire registra un hook para cada cierre forzado (métricas). Llamar antes de usar la store.
func (s *SessionStore) OnExpire(fn func()) {
	s.onExpire = fn
}

// Subscribe registra fn para cada cambio de sesión.
func (s *SessionStore) Subscribe(fn func()) func() {
	return s.obs.subscribe(fn)
}

func (s *SessionStore) armLocked(exp time.Time) {
	s.stopTimerLocked()
	s.timerGen++
	gen := s.timerGen
	d := exp.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	s.log.Debug().Dur("in", d).Msg("cierre automático de sesión programado")
	s.timer = s.clock.AfterFunc(d, func() { s.onTimer(gen) })
}

func (s *SessionStore) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

func (s *SessionStore) onTimer(gen uint64) {
	s.mu.Lock()
	stale := gen != s.timerGen
	s.mu.Unlock()
	if stale {
		return
	}
	s.Expire(MsgSesionExpirada)
}
