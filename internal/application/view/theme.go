package view

import (
	"sync"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/domain"
)

// Temas.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// MsgTemaInvalido tema fuera de light|dark|system.
const MsgTemaInvalido = "Tema inválido"

// ThemeState preferencia guardada y tema efectivo.
type ThemeState struct {
	Preference string `json:"preference"`
	Effective  string `json:"effective"`
	SystemDark bool   `json:"system_dark"`
}

// Theme preferencia de tema persistida bajo ports.KeyTheme (por defecto "system").
// Con "system" el tema efectivo sigue la preferencia del sistema operativo.
type Theme struct {
	mu         sync.Mutex
	kv         ports.KeyValueStore
	preference string
	systemDark bool
}

// LoadTheme lee la preferencia guardada; un valor desconocido se trata como "system".
func LoadTheme(kv ports.KeyValueStore, systemDark bool) (*Theme, error) {
	t := &Theme{kv: kv, preference: ThemeSystem, systemDark: systemDark}
	v, ok, err := kv.Get(ports.KeyTheme)
	if err != nil {
		return nil, err
	}
	if ok && validTheme(v) {
		t.preference = v
	}
	return t, nil
}

// Set guarda la preferencia.
func (t *Theme) Set(pref string) (ThemeState, error) {
	if !validTheme(pref) {
		return ThemeState{}, domain.Invalid("theme", MsgTemaInvalido)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.kv.Set(ports.KeyTheme, pref); err != nil {
		return ThemeState{}, err
	}
	t.preference = pref
	return t.stateLocked(), nil
}

// SystemPreferenceChanged el sistema operativo cambió entre claro y oscuro.
func (t *Theme) SystemPreferenceChanged(dark bool) ThemeState {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.systemDark = dark
	return t.stateLocked()
}

// State estado actual.
func (t *Theme) State() ThemeState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Theme) stateLocked() ThemeState {
	eff := t.preference
	if eff == ThemeSystem {
		eff = ThemeLight
		if t.systemDark {
			eff = ThemeDark
		}
	}
	return ThemeState{Preference: t.preference, Effective: eff, SystemDark: t.systemDark}
}

func validTheme(v string) bool {
	return v == ThemeLight || v == ThemeDark || v == ThemeSystem
}
