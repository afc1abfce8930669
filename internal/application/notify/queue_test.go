package notify_test

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-negocios/internal/application/notify"
)

func TestQueue_DrainVacia(t *testing.T) {
	q := notify.NewQueue(zerolog.Nop())
	q.Success("Inicio de sesión exitoso")
	q.Error("No se pudo cargar el perfil")

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, notify.KindSuccess, got[0].Kind)
	assert.Equal(t, notify.KindError, got[1].Kind)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	assert.Empty(t, q.Drain())
}

func TestQueue_DescartaLosMasViejos(t *testing.T) {
	q := notify.NewQueue(zerolog.Nop())
	for i := 0; i < 150; i++ {
		q.Success(fmt.Sprintf("aviso %d", i))
	}
	got := q.Drain()
	require.Len(t, got, 100)
	assert.Equal(t, "aviso 50", got[0].Message)
}

func TestQueue_OnPush(t *testing.T) {
	q := notify.NewQueue(zerolog.Nop())
	counts := map[string]int{}
	q.OnPush(func(kind string) { counts[kind]++ })

	q.Success("ok")
	q.Error("falló")
	q.Error("falló otra vez")

	assert.Equal(t, map[string]int{notify.KindSuccess: 1, notify.KindError: 2}, counts)
}
