package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	Backend    BackendConfig
	Storage    StorageConfig
	HTTP       HTTPConfig
	Pagination PaginationConfig
	Telemetry  TelemetryConfig
	DevBackend DevBackendConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// BackendConfig API REST remota contra la que trabaja la consola.
type BackendConfig struct {
	URL            string
	TimeoutSeconds int  // 0 = sin timeout
	BareToken      bool // Authorization sin prefijo Bearer
}

// Timeout devuelve el timeout de red como time.Duration.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig almacenamiento local durable (token, rol, preferencias).
type StorageConfig struct {
	Path string
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PaginationConfig tamaños de página fijos por vista.
type PaginationConfig struct {
	ProductsLimit   int
	BusinessesLimit int
}

// TelemetryConfig métricas y trazas.
type TelemetryConfig struct {
	MetricsPrefix string
	OTLPEndpoint  string
	OTLPInsecure  bool
}

// DevBackendConfig solo para cmd/devbackend.
type DevBackendConfig struct {
	Port          int
	JWTSecret     string
	JWTExpiration int // minutos
	JWTIssuer     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, STORAGE_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "consola-negocios"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			URL:            strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:3000/api"), "/"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 0),
			BareToken:      getBool(v, "BACKEND_BARE_TOKEN", false),
		},
		Storage: StorageConfig{
			Path: getString(v, "STORAGE_PATH", "./data/console"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		Pagination: PaginationConfig{
			ProductsLimit:   getInt(v, "PRODUCTS_PAGE_LIMIT", 10),
			BusinessesLimit: getInt(v, "BUSINESSES_PAGE_LIMIT", 10),
		},
		Telemetry: TelemetryConfig{
			MetricsPrefix: getString(v, "METRICS_PREFIX", "consola"),
			OTLPEndpoint:  getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPInsecure:  getBool(v, "OTEL_EXPORTER_OTLP_INSECURE", false),
		},
		DevBackend: DevBackendConfig{
			Port:          getInt(v, "DEV_BACKEND_PORT", 3000),
			JWTSecret:     getString(v, "JWT_SECRET", "dev-secret"),
			JWTExpiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			JWTIssuer:     getString(v, "JWT_ISSUER", "consola-negocios-dev"),
		},
	}

	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("config: BACKEND_URL vacío")
	}
	if cfg.Pagination.ProductsLimit <= 0 || cfg.Pagination.BusinessesLimit <= 0 {
		return nil, fmt.Errorf("config: los límites de página deben ser positivos")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
