// Package backend cliente del backend REST de negocios. Implementa ports.Backend:
// cada método hace una sola llamada HTTP con el token del operador y devuelve el
// payload desempaquetado o un *domain.APIError.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
	"github.com/jhoicas/consola-negocios/internal/domain"
	"github.com/jhoicas/consola-negocios/internal/infrastructure/metrics"
)

var _ ports.Backend = (*Client)(nil)

// maxBody límite de lectura de una respuesta.
const maxBody = 4 << 20

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	// Timeout 0 = sin límite (solo el del contexto).
	Timeout time.Duration
	// BareToken manda el token sin el prefijo "Bearer " en Authorization.
	BareToken bool
}

// Client cliente HTTP del backend.
type Client struct {
	baseURL    string
	bareToken  bool
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Metrics
}

// NewClient construye el cliente. El transporte va instrumentado con otelhttp; m puede ser nil.
func NewClient(cfg Config, log zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		bareToken: cfg.BareToken,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log:     log,
		metrics: m,
	}
}

// call describe una llamada: ruta lógica (para métricas y logs), ruta real, cuerpo y
// el mensaje genérico cuando el backend no manda uno legible.
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	token    string
	body     any
	fallback string
	// fields campos del sobre donde puede venir el payload, en orden de preferencia.
	fields []string
}

// do ejecuta la llamada y deja en out el payload desempaquetado.
func (c *Client) do(ctx context.Context, in call, out any) error {
	var reader io.Reader
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("backend: serializar %s: %w", in.endpoint, err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, reader)
	if err != nil {
		return fmt.Errorf("backend: crear request %s: %w", in.endpoint, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in.token != "" {
		req.Header.Set("Authorization", c.authorization(in.token))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(in.endpoint, in.method, 0, time.Since(start))
		c.log.Warn().Err(err).Str("method", in.method).Str("path", in.path).Str("request_id", reqID).Msg("backend: fallo de red")
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, in.method, in.endpoint, ctx.Err())
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, in.method, in.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	elapsed := time.Since(start)
	c.metrics.ObserveBackend(in.endpoint, in.method, resp.StatusCode, elapsed)
	if err != nil {
		return fmt.Errorf("%w: leer respuesta de %s: %v", domain.ErrTransport, in.endpoint, err)
	}

	ev := c.log.Debug()
	if resp.StatusCode >= http.StatusBadRequest {
		ev = c.log.Warn()
	}
	ev.Str("method", in.method).Str("path", in.path).Int("status", resp.StatusCode).
		Dur("duration", elapsed).Str("request_id", reqID).Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, raw, in.fallback)
	}
	if out == nil {
		return nil
	}
	if err := unwrap(raw, out, in.fields...); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, in.endpoint, err)
	}
	return nil
}

// apiError construye el error a partir del campo message; si el cuerpo no se puede
// leer usa el mensaje genérico de la llamada.
func apiError(status int, raw []byte, fallback string) *domain.APIError {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := fallback
	if err := json.Unmarshal(raw, &env); err == nil {
		switch {
		case strings.TrimSpace(env.Message) != "":
			msg = env.Message
		case strings.TrimSpace(env.Error) != "":
			msg = env.Error
		}
	}
	if msg == "" {
		msg = "Error desconocido"
	}
	return &domain.APIError{Status: status, Message: msg}
}

// unwrap única función de desempaquetado del sobre de respuesta. Si el cuerpo es un
// objeto y trae alguno de fields, el payload es ese campo; si no, es el cuerpo entero.
func unwrap(raw []byte, out any, fields ...string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return errors.New("cuerpo vacío")
	}
	if raw[0] == '{' && len(fields) > 0 {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return err
		}
		for _, f := range fields {
			if v, ok := env[f]; ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return json.Unmarshal(v, out)
			}
		}
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) authorization(token string) string {
	if c.bareToken {
		return token
	}
	return "Bearer " + token
}
