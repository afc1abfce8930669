package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-negocios/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "consola-negocios", cfg.App.Name)
	assert.Equal(t, 10, cfg.Pagination.ProductsLimit)
	assert.Equal(t, "127.0.0.1:8090", cfg.HTTP.Addr())
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout())
	assert.False(t, cfg.Backend.BareToken)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com/api/")
	t.Setenv("PRODUCTS_PAGE_LIMIT", "25")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "15")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	t.Setenv("BACKEND_BARE_TOKEN", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.Backend.URL, "se recorta la barra final")
	assert.Equal(t, 25, cfg.Pagination.ProductsLimit)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout())
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.True(t, cfg.Backend.BareToken)
}

func TestLoad_LimiteInvalido(t *testing.T) {
	t.Setenv("BUSINESSES_PAGE_LIMIT", "0")

	_, err := config.Load()
	assert.Error(t, err)
}
