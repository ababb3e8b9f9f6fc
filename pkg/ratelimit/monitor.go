package ratelimit

import (
	"sort"
	"sync"
	"time"
)

// maxEvents retiene solo los últimos N rechazos.
const maxEvents = 1000

// HitEvent un rechazo de rate limit.
type HitEvent struct {
	Identifier string        `json:"identifier"`
	Scope      string        `json:"scope"`
	Limit      int64         `json:"limit"`
	Window     time.Duration `json:"window_ms"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Offender par (identificador, scope) con más rechazos.
type Offender struct {
	Identifier string `json:"identifier"`
	Scope      string `json:"scope"`
	Hits       int    `json:"hits"`
}

// Stats agregados de rechazos para el endpoint de métricas admin.
type Stats struct {
	TotalHits    int            `json:"totalHits"`
	ByScope      map[string]int `json:"byScope"`
	ByIdentifier map[string]int `json:"byIdentifier"`
	TopOffenders []Offender     `json:"topOffenders"`
	From         *time.Time     `json:"from"`
	To           *time.Time     `json:"to"`
}

// Monitor colector en memoria de rechazos de rate limit. Instancia explícita
// inyectada en el arranque: un espacio de contadores compartido por proceso,
// sin estado global de paquete.
type Monitor struct {
	mu     sync.Mutex
	events []HitEvent
	now    func() time.Time
}

// NewMonitor construye el colector.
func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

// RecordHit registra un rechazo; descarta el evento más viejo al superar el tope.
func (m *Monitor) RecordHit(identifier, scope string, limit int64, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, HitEvent{
		Identifier: identifier,
		Scope:      scope,
		Limit:      limit,
		Window:     window,
		Timestamp:  m.now(),
	})
	if len(m.events) > maxEvents {
		m.events = m.events[1:]
	}
}

// GetStats agrega los rechazos desde `since` (cero = todos): totales por
// scope, por identificador y top 10 de pares ofensores.
func (m *Monitor) GetStats(since time.Time) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{
		ByScope:      map[string]int{},
		ByIdentifier: map[string]int{},
	}
	type pairKey struct{ identifier, scope string }
	pairs := map[pairKey]int{}

	for i := range m.events {
		e := m.events[i]
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		stats.TotalHits++
		stats.ByScope[e.Scope]++
		stats.ByIdentifier[e.Identifier]++
		pairs[pairKey{e.Identifier, e.Scope}]++
		if stats.From == nil {
			ts := e.Timestamp
			stats.From = &ts
		}
		ts := e.Timestamp
		stats.To = &ts
	}

	for k, hits := range pairs {
		stats.TopOffenders = append(stats.TopOffenders, Offender{
			Identifier: k.identifier,
			Scope:      k.scope,
			Hits:       hits,
		})
	}
	sort.Slice(stats.TopOffenders, func(i, j int) bool {
		if stats.TopOffenders[i].Hits != stats.TopOffenders[j].Hits {
			return stats.TopOffenders[i].Hits > stats.TopOffenders[j].Hits
		}
		return stats.TopOffenders[i].Identifier < stats.TopOffenders[j].Identifier
	})
	if len(stats.TopOffenders) > 10 {
		stats.TopOffenders = stats.TopOffenders[:10]
	}
	return stats
}

// Reset vacía el colector (endpoint admin).
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
