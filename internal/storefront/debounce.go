package storefront

import (
	"sync"
	"time"
)

// SearchDelay demora de inactividad antes de aplicar el texto de búsqueda,
// para no re-filtrar en cada tecla.
const SearchDelay = 350 * time.Millisecond

// SearchDebouncer aplica el texto de búsqueda tras una pausa de tecleo.
// Cada entrada cancela el timer anterior; Stop descarta lo pendiente.
type SearchDebouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	apply func(text string)
}

// NewSearchDebouncer construye el debouncer con la demora dada (0 = SearchDelay).
func NewSearchDebouncer(delay time.Duration, apply func(text string)) *SearchDebouncer {
	if delay <= 0 {
		delay = SearchDelay
	}
	return &SearchDebouncer{delay: delay, apply: apply}
}

// Input registra una tecla: reinicia la espera con el texto nuevo.
func (d *SearchDebouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.apply(text) })
}

// Stop cancela cualquier aplicación pendiente.
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
