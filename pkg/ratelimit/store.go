package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// Store estrategia de contador: incremento atómico con expiración por ventana.
// Devuelve el conteo acumulado dentro de la ventana vigente.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Backend Redis: contador compartido entre procesos (INCR + PEXPIRE).
// ─────────────────────────────────────────────────────────────────────────────

// RedisStore contador compartido sobre Redis. El TTL se fija en el primer
// incremento de la ventana; al expirar la clave, la ventana reinicia.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore construye el backend compartido desde una URL de Redis.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsear REDIS_URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// Incr incrementa el contador y fija la expiración si es el primer hit de la ventana.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("redis pexpire: %w", err)
		}
	}
	return count, nil
}

// Ping verifica la conexión (usado al decidir el backend en el arranque).
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Backend en memoria: caché LRU acotada, límites independientes por proceso.
// ─────────────────────────────────────────────────────────────────────────────

// maxEntries tope de pares (scope, identificador) retenidos; el más viejo se desaloja.
const maxEntries = 2000

type counterEntry struct {
	count       int64
	windowStart time.Time
}

// MemoryStore contador local por proceso. La ventana no decae gradualmente:
// al superar su duración el contador reinicia a 1 con un nuevo inicio
// (sub-bloquea en el borde de ventana; aceptado para amortiguar abuso,
// no para cuotas duras).
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *counterEntry]
	now   func() time.Time
}

// NewMemoryStore construye el backend local acotado.
func NewMemoryStore() *MemoryStore {
	cache, _ := lru.New[string, *counterEntry](maxEntries)
	return &MemoryStore{cache: cache, now: time.Now}
}

// Incr incrementa bajo mutex: en un runtime multi-hilo la secuencia
// leer-verificar-escribir necesita exclusión explícita.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.cache.Get(key)
	if !ok || now.Sub(entry.windowStart) > window {
		s.cache.Add(key, &counterEntry{count: 1, windowStart: now})
		return 1, nil
	}
	entry.count++
	return entry.count, nil
}
