package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCountsWithinWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		count, err := store.Incr(ctx, "rl:test:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
}

// Al superar la ventana el contador reinicia a 1 con nuevo inicio: no hay
// decaimiento gradual.
func TestMemoryStoreWindowReset(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = store.Incr(ctx, "k", time.Second)
	count, err := store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Justo dentro de la ventana sigue acumulando.
	now = now.Add(900 * time.Millisecond)
	count, err = store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Pasada la ventana, reinicio a 1.
	now = now.Add(2 * time.Second)
	count, err = store.Incr(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, _ = store.Incr(ctx, "rl:menu:a", time.Minute)
	_, _ = store.Incr(ctx, "rl:menu:a", time.Minute)
	count, err := store.Incr(ctx, "rl:menu:b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "otro identificador arranca de cero")
}
