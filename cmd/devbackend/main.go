// devbackend levanta el backend REST en memoria con datos de ejemplo para probar la consola en local.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/consola-negocios/internal/devbackend"
	"github.com/jhoicas/consola-negocios/pkg/config"
	"github.com/jhoicas/consola-negocios/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "devbackend"})

	srv := devbackend.New(devbackend.Config{
		Secret: cfg.DevBackend.JWTSecret,
		Issuer: cfg.DevBackend.JWTIssuer,
		TTL:    time.Duration(cfg.DevBackend.JWTExpiration) * time.Minute,
	}, devbackend.Seed(), log.Component("devbackend"))

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.DevBackend.Port)
	go func() {
		if err := srv.App.Listen(addr); err != nil {
			log.Error().Err(err).Msg("devbackend finalizado")
		}
	}()
	log.Info().Str("url", "http://"+addr+"/api").
		Str("root", "root@consola.dev").
		Str("admin", "a@b.com").
		Msg("devbackend escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.App.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("apagado del devbackend")
	}
}
