package devbackend

import (
	"fmt"
	"net"
)

// Start escucha en addr ("127.0.0.1:0" elige un puerto libre) y atiende en segundo plano.
// Devuelve la URL base de la API (http://host:port/api) y la función de parada.
func (s *Server) Start(addr string) (string, func() error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("devbackend: escuchar %s: %w", addr, err)
	}
	go func() {
		if err := s.App.Listener(ln); err != nil {
			s.log.Error().Err(err).Msg("devbackend detenido")
		}
	}()
	return fmt.Sprintf("http://%s/api", ln.Addr().String()), s.App.Shutdown, nil
}
