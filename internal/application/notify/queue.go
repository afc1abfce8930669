// Package notify cola de avisos transitorios (toasts) para el operador de la consola.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
)

var _ ports.Notifier = (*Queue)(nil)

// Tipos de aviso.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// maxPending avisos retenidos sin leer; los más viejos se descartan.
const maxPending = 100

// Notification un aviso.
type Notification struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Queue cola en memoria, segura para uso concurrente.
type Queue struct {
	mu     sync.Mutex
	items  []Notification
	log    zerolog.Logger
	onPush func(kind string)
}

// NewQueue construye la cola.
func NewQueue(log zerolog.Logger) *Queue {
	return &Queue{log: log}
}

// OnPush registra un observador por cada aviso encolado (métricas).
func (q *Queue) OnPush(fn func(kind string)) {
	q.mu.Lock()
	q.onPush = fn
	q.mu.Unlock()
}

func (q *Queue) Success(msg string) {
	q.log.Info().Str("kind", KindSuccess).Msg(msg)
	q.push(KindSuccess, msg)
}

func (q *Queue) Error(msg string) {
	q.log.Warn().Str("kind", KindError).Msg(msg)
	q.push(KindError, msg)
}

func (q *Queue) push(kind, msg string) {
	q.mu.Lock()
	q.items = append(q.items, Notification{ID: uuid.NewString(), Kind: kind, Message: msg, At: time.Now()})
	if len(q.items) > maxPending {
		q.items = q.items[len(q.items)-maxPending:]
	}
	hook := q.onPush
	q.mu.Unlock()
	if hook != nil {
		hook(kind)
	}
}

// Drain devuelve los avisos pendientes y vacía la cola.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
