// Package store contenedores de estado en memoria de la consola: sesión y caché de
// negocios, productos y usuarios con sus banderas de carga y error. Se inyectan
// explícitamente en los casos de uso; no hay estado global.
package store

import (
	"sync"
	"sync/atomic"
)

// Sequence generador monótono de generaciones de petición. Una respuesta cuya
// generación ya no es la última se descarta.
type Sequence struct {
	n atomic.Uint64
}

// Next abre una nueva generación.
func (s *Sequence) Next() uint64 { return s.n.Add(1) }

// IsCurrent indica si gen sigue siendo la última generación emitida.
func (s *Sequence) IsCurrent(gen uint64) bool { return s.n.Load() == gen }

// observers lista de suscriptores a cambios.
type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (o *observers) subscribe(fn func()) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.fns, id)
	}
}

func (o *observers) notify() {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.fns))
	for _, fn := range o.fns {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// status banderas loading/error comunes a las stores de entidades.
// loading es un contador de peticiones en vuelo: dos cargas en paralelo no se pisan.
type status struct {
	mu       sync.RWMutex
	inFlight int
	err      string
	obs      observers
}

// Begin fase 1: loading=true, error=nil.
func (s *status) Begin() {
	s.mu.Lock()
	s.inFlight++
	s.err = ""
	s.mu.Unlock()
	s.obs.notify()
}

// Finish fase 3: baja loading siempre; errMsg vacío = éxito.
func (s *status) Finish(errMsg string) {
	s.mu.Lock()
	if s.inFlight > 0 {
		s.inFlight--
	}
	if errMsg != "" {
		s.err = errMsg
	}
	s.mu.Unlock()
	s.obs.notify()
}

// Loading hay al menos una petición en vuelo.
func (s *status) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// LastError último error o "".
func (s *status) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Subscribe registra fn para cada cambio; devuelve la función para darse de baja.
func (s *status) Subscribe(fn func()) func() {
	return s.obs.subscribe(fn)
}

func (s *status) changed() { s.obs.notify() }
