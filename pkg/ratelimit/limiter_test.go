package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter() (*Limiter, *Monitor, *MemoryStore) {
	monitor := NewMonitor()
	limiter := NewLimiter(nil, monitor, zerolog.Nop())
	local := limiter.local.(*MemoryStore)
	return limiter, monitor, local
}

// Dos peticiones por segundo: la tercera dentro de la ventana se rechaza y
// pasada la ventana vuelve a entrar.
func TestLimiterDeniesOverBudgetAndRecovers(t *testing.T) {
	limiter, monitor, local := testLimiter()
	now := time.Now()
	local.now = func() time.Time { return now }

	policy := Policy{Scope: "test", Limit: 2, Window: time.Second}
	ctx := context.Background()

	first := limiter.Check(ctx, "1.2.3.4", policy)
	assert.True(t, first.Allowed)
	assert.Equal(t, int64(1), first.Remaining)

	second := limiter.Check(ctx, "1.2.3.4", policy)
	assert.True(t, second.Allowed)
	assert.Equal(t, int64(0), second.Remaining)

	third := limiter.Check(ctx, "1.2.3.4", policy)
	assert.False(t, third.Allowed, "la tercera dentro de la ventana se rechaza")
	assert.Equal(t, int64(0), third.Remaining)

	// El rechazo queda registrado en el monitor.
	stats := monitor.GetStats(time.Time{})
	assert.Equal(t, 1, stats.TotalHits)
	assert.Equal(t, 1, stats.ByScope["test"])

	// Pasada la ventana el contador reinicia.
	now = now.Add(1100 * time.Millisecond)
	fourth := limiter.Check(ctx, "1.2.3.4", policy)
	assert.True(t, fourth.Allowed)
}

func TestLimiterIdentifiersAreIndependent(t *testing.T) {
	limiter, _, _ := testLimiter()
	policy := Policy{Scope: "test", Limit: 1, Window: time.Minute}
	ctx := context.Background()

	assert.True(t, limiter.Check(ctx, "1.1.1.1", policy).Allowed)
	assert.False(t, limiter.Check(ctx, "1.1.1.1", policy).Allowed)
	assert.True(t, limiter.Check(ctx, "2.2.2.2", policy).Allowed, "otra IP tiene su propio presupuesto")
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("backend caído")
}

// Backend compartido caído: se cae al contador local sin rechazar.
func TestLimiterFallsBackToLocalStore(t *testing.T) {
	monitor := NewMonitor()
	limiter := NewLimiter(failingStore{}, monitor, zerolog.Nop())
	policy := Policy{Scope: "test", Limit: 1, Window: time.Minute}
	ctx := context.Background()

	assert.True(t, limiter.Check(ctx, "ip", policy).Allowed)
	assert.False(t, limiter.Check(ctx, "ip", policy).Allowed, "el fallback local sigue contando")
}

func TestPickRuleFirstMatchWins(t *testing.T) {
	cases := []struct {
		path      string
		wantScope string
	}{
		{"/api/venue/cafe-centro/menu", "api:menu"},
		{"/api/venue/x/menu?category=hot", "api:menu"},
		{"/api/products", "api:products"},
		{"/api/products/abc/history", "api:products"},
		{"/admin", "page:admin"},
		{"/admin/productos", "page:admin"},
		{"/administrador", "global"},
		{"/api/csrf", "global"},
		{"/", "global"},
	}
	for _, tc := range cases {
		rule := PickRule(tc.path)
		assert.Equal(t, tc.wantScope, rule.Policy.Scope, "path %s", tc.path)
	}
}

func TestDefaultRuleMatchesEverything(t *testing.T) {
	require.True(t, DefaultRule.Matcher.MatchString("/cualquier/cosa"))
	assert.Equal(t, "global", DefaultRule.Policy.Scope)
}
