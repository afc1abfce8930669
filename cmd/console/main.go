package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"github.com/jhoicas/consola-negocios/internal/application/notify"
	"github.com/jhoicas/consola-negocios/internal/application/store"
	"github.com/jhoicas/consola-negocios/internal/application/usecase"
	"github.com/jhoicas/consola-negocios/internal/application/view"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/backend"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/consola-negocios/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/consola-negocios/internal/interfaces/http"
	"github.com/jhoicas/consola-negocios/pkg/clock"
	"github.com/jhoicas/consola-negocios/pkg/config"
	"github.com/jhoicas/consola-negocios/pkg/logger"
	"github.com/jhoicas/consola-negocios/pkg/telemetry"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.URL).
		Msg("iniciando consola")

	shutdownTracing := telemetry.Setup(telemetry.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.OTLPInsecure,
	}, log.Component("telemetry"))

	kv, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("abrir almacenamiento local")
	}
	defer kv.Close()

	m := metrics.New(cfg.Telemetry.MetricsPrefix)
	clk := clock.Real()

	queue := notify.NewQueue(log.Component("notify"))
	queue.OnPush(m.Notification)

	// La sesión persistida se restaura aquí; un token vencido se descarta al arrancar.
	session, err := store.NewSessionStore(kv, clk, queue, log.Component("session"))
	if err != nil {
		log.Fatal().Err(err).Msg("restaurar sesión")
	}
	session.OnExpire(m.SessionExpired)

	client := backend.NewClient(backend.Config{
		BaseURL:   cfg.Backend.URL,
		Timeout:   cfg.Backend.Timeout(),
		BareToken: cfg.Backend.BareToken,
	}, log.Component("backend"), m)

	authUC := usecase.NewAuthUseCase(client, session, queue, log.Component("auth"))
	productUC := usecase.NewProductUseCase(client, authUC, session, store.NewProductStore(cfg.Pagination.ProductsLimit),
		queue, clk, log.Component("products"), cfg.Pagination.ProductsLimit)
	businessUC := usecase.NewBusinessUseCase(client, session, store.NewBusinessStore(cfg.Pagination.BusinessesLimit),
		queue, log.Component("businesses"), cfg.Pagination.BusinessesLimit)
	userUC := usecase.NewUserUseCase(client, session, store.NewUserStore(), queue, log.Component("users"))

	cols, err := view.LoadColumnPrefs(kv, log.Component("columns"))
	if err != nil {
		log.Fatal().Err(err).Msg("preferencias de columnas")
	}
	theme, err := view.LoadTheme(kv, false)
	if err != nil {
		log.Fatal().Err(err).Msg("preferencia de tema")
	}

	// Perfil en segundo plano si la sesión se restauró con token.
	if session.Token() != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if _, err := authUC.EnsureProfile(ctx); err != nil {
				log.Warn().Err(err).Msg("perfil de la sesión restaurada")
			}
		}()
	}

	serverCfg := httpRouter.ServerConfig{AppName: cfg.App.Name, Metrics: m}
	if _, err := os.Stat(swaggerFile); err == nil {
		serverCfg.SwaggerFile = swaggerFile
	}
	app := httpRouter.NewApp(serverCfg, httpRouter.RouterDeps{
		Session:       session,
		AuthUC:        authUC,
		Products:      view.NewProductsView(productUC, cols, view.NewFormatter(language.Spanish)),
		Businesses:    view.NewBusinessesView(businessUC),
		Users:         view.NewUsersView(userUC),
		Theme:         theme,
		Notifications: queue,
		Exporter:      infrapdf.NewProductsExporter(),
		Clock:         clk,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("consola escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("consola detenida")
}
