package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Policy parámetros de una clase de límite: scope nombrado + presupuesto por ventana.
type Policy struct {
	Scope  string
	Limit  int64
	Window time.Duration
}

// Result resultado de un chequeo de límite.
type Result struct {
	Allowed   bool
	Remaining int64
}

// Limiter servicio de rate limiting por (scope, identificador). Se construye
// una sola vez en el arranque y se inyecta; el backend elegido es transparente
// para los llamadores. Si Redis está configurado se usa como backend
// compartido; si falla una llamada se cae al backend en memoria (límites
// independientes por proceso: debilidad conocida y aceptada).
type Limiter struct {
	shared  Store // nil si no hay Redis configurado
	local   Store
	monitor *Monitor
	log     zerolog.Logger
}

// NewLimiter construye el limiter. shared puede ser nil (solo memoria).
func NewLimiter(shared Store, monitor *Monitor, log zerolog.Logger) *Limiter {
	return &Limiter{
		shared:  shared,
		local:   NewMemoryStore(),
		monitor: monitor,
		log:     log,
	}
}

// Check incrementa el contador de (scope, identificador) y decide.
// En rechazo registra el evento en el monitor; el llamador solo ve Allowed=false.
func (l *Limiter) Check(ctx context.Context, identifier string, p Policy) Result {
	key := "rl:" + p.Scope + ":" + identifier

	count, err := l.incr(ctx, key, p.Window)
	if err != nil {
		// Contador indisponible: dejamos pasar antes que tumbar el hot path.
		l.log.Error().Err(err).Str("scope", p.Scope).Msg("rate limit: backend indisponible")
		return Result{Allowed: true, Remaining: p.Limit}
	}

	remaining := p.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	if count > p.Limit {
		l.monitor.RecordHit(identifier, p.Scope, p.Limit, p.Window)
		l.log.Warn().
			Str("scope", p.Scope).
			Str("identifier", identifier).
			Int64("limit", p.Limit).
			Msg("rate limit excedido")
		return Result{Allowed: false, Remaining: 0}
	}
	return Result{Allowed: true, Remaining: remaining}
}

func (l *Limiter) incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if l.shared != nil {
		count, err := l.shared.Incr(ctx, key, window)
		if err == nil {
			return count, nil
		}
		l.log.Warn().Err(err).Msg("rate limit: backend compartido falló, usando memoria")
	}
	return l.local.Incr(ctx, key, window)
}

// ClientID resuelve el identificador del cliente en orden: IP directa del
// peer → x-real-ip (primer valor) → x-forwarded-for (primer valor) →
// loopback fijo. Best-effort y falsificable: es un amortiguador, no
// un mecanismo de autenticación.
func ClientID(c *fiber.Ctx) string {
	if ip := c.IP(); ip != "" {
		return ip
	}
	if v := firstValue(c.Get("X-Real-IP")); v != "" {
		return v
	}
	if v := firstValue(c.Get("X-Forwarded-For")); v != "" {
		return v
	}
	return "127.0.0.1"
}

func firstValue(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}
