package storefront_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/qrmenu-api/internal/storefront"
)

type applyRecorder struct {
	mu      sync.Mutex
	applied []string
}

func (r *applyRecorder) apply(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, text)
}

func (r *applyRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.applied...)
}

// Solo el último texto de una ráfaga de teclas llega a aplicarse.
func TestSearchDebouncerAppliesOnlyLastInput(t *testing.T) {
	rec := &applyRecorder{}
	d := storefront.NewSearchDebouncer(20*time.Millisecond, rec.apply)

	d.Input("l")
	d.Input("la")
	d.Input("lat")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"lat"}, rec.snapshot())
}

func TestSearchDebouncerStopDiscardsPending(t *testing.T) {
	rec := &applyRecorder{}
	d := storefront.NewSearchDebouncer(20*time.Millisecond, rec.apply)

	d.Input("latte")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
