package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorAggregatesByScopeAndIdentifier(t *testing.T) {
	m := NewMonitor()
	m.RecordHit("1.1.1.1", "api:menu", 300, time.Minute)
	m.RecordHit("1.1.1.1", "api:menu", 300, time.Minute)
	m.RecordHit("1.1.1.1", "api:products", 60, 30*time.Second)
	m.RecordHit("2.2.2.2", "api:menu", 300, time.Minute)

	stats := m.GetStats(time.Time{})
	assert.Equal(t, 4, stats.TotalHits)
	assert.Equal(t, 3, stats.ByScope["api:menu"])
	assert.Equal(t, 1, stats.ByScope["api:products"])
	assert.Equal(t, 3, stats.ByIdentifier["1.1.1.1"])
	assert.Equal(t, 1, stats.ByIdentifier["2.2.2.2"])
	require.NotNil(t, stats.From)
	require.NotNil(t, stats.To)

	// El primer ofensor es el par (identificador, scope) con más rechazos.
	require.NotEmpty(t, stats.TopOffenders)
	top := stats.TopOffenders[0]
	assert.Equal(t, "1.1.1.1", top.Identifier)
	assert.Equal(t, "api:menu", top.Scope)
	assert.Equal(t, 2, top.Hits)
}

func TestMonitorTopOffendersCapped(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 15; i++ {
		m.RecordHit(fmt.Sprintf("10.0.0.%d", i), "global", 300, time.Minute)
	}
	stats := m.GetStats(time.Time{})
	assert.Equal(t, 15, stats.TotalHits)
	assert.Len(t, stats.TopOffenders, 10, "el top se recorta a 10")
}

func TestMonitorSinceFilters(t *testing.T) {
	m := NewMonitor()
	base := time.Now()
	current := base
	m.now = func() time.Time { return current }

	m.RecordHit("viejo", "global", 300, time.Minute)
	current = base.Add(time.Hour)
	m.RecordHit("nuevo", "global", 300, time.Minute)

	stats := m.GetStats(base.Add(30 * time.Minute))
	assert.Equal(t, 1, stats.TotalHits)
	assert.Equal(t, 1, stats.ByIdentifier["nuevo"])
	assert.Zero(t, stats.ByIdentifier["viejo"])
}

func TestMonitorRingDropsOldest(t *testing.T) {
	m := NewMonitor()
	for i := 0; i <= maxEvents; i++ {
		m.RecordHit(fmt.Sprintf("id-%d", i), "global", 300, time.Minute)
	}
	stats := m.GetStats(time.Time{})
	assert.Equal(t, maxEvents, stats.TotalHits)
	assert.Zero(t, stats.ByIdentifier["id-0"], "el evento más viejo se descartó")
}

func TestMonitorReset(t *testing.T) {
	m := NewMonitor()
	m.RecordHit("x", "global", 300, time.Minute)
	m.Reset()
	assert.Zero(t, m.GetStats(time.Time{}).TotalHits)
}
