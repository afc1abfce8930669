package usecase

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/domain"
)

// tracker fases de carga de una store de entidades.
type tracker interface {
	Begin()
	Finish(errMsg string)
}

// track aplica el patrón de tres fases: loading=true/error=nil, llamada, loading=false
// siempre y error solo si falló. El fallo también se avisa al operador con msg.
// Una respuesta descartada (domain.ErrStaleResponse) no es un fallo: solo se registra.
func track(st tracker, n ports.Notifier, log zerolog.Logger, msg string, fn func() error) error {
	st.Begin()
	err := fn()
	if err == nil {
		st.Finish("")
		return nil
	}
	if errors.Is(err, domain.ErrStaleResponse) {
		st.Finish("")
		log.Debug().Err(err).Msg("respuesta descartada")
		return nil
	}
	st.Finish(describe(msg, err))
	n.Error(msg)
	log.Warn().Err(err).Msg(msg)
	return err
}

// describe mensaje de la acción más el detalle que dio el backend.
func describe(msg string, err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", msg, apiErr.Message)
	}
	if errors.Is(err, domain.ErrTransport) {
		return fmt.Sprintf("%s: %s", msg, domain.ErrTransport.Error())
	}
	return msg
}

// rejectInvalid avisa un fallo de validación sin tocar la red.
func rejectInvalid(n ports.Notifier, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		n.Error(ve.Message)
	}
	return err
}
