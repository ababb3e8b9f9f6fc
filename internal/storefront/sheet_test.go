package storefront_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qrmenu-api/internal/storefront"
)

// manualScheduler controla los diferidos a mano: el test decide cuándo
// "llega" el siguiente frame o vence el timer.
type manualScheduler struct {
	frame     func()
	timer     func()
	cancelled int
}

func (s *manualScheduler) RequestFrame(fn func()) func() {
	s.frame = fn
	return func() {
		if s.frame != nil {
			s.frame = nil
			s.cancelled++
		}
	}
}

func (s *manualScheduler) AfterDelay(_ time.Duration, fn func()) func() {
	s.timer = fn
	return func() {
		if s.timer != nil {
			s.timer = nil
			s.cancelled++
		}
	}
}

func (s *manualScheduler) fireFrame(t *testing.T) {
	t.Helper()
	require.NotNil(t, s.frame, "no hay frame agendado")
	fn := s.frame
	s.frame = nil
	fn()
}

func (s *manualScheduler) fireTimer(t *testing.T) {
	t.Helper()
	require.NotNil(t, s.timer, "no hay timer agendado")
	fn := s.timer
	s.timer = nil
	fn()
}

func TestSheetOpenCycle(t *testing.T) {
	sched := &manualScheduler{}
	var seen []storefront.SheetState
	sheet := storefront.NewSheet(sched, func(st storefront.SheetState) { seen = append(seen, st) })

	p := latte()
	sheet.Open(p)
	assert.Equal(t, storefront.SheetOpening, sheet.State())
	assert.False(t, sheet.Ready(), "ready recién flippea en el siguiente frame")
	assert.Equal(t, p, sheet.Product())

	sched.fireFrame(t)
	assert.Equal(t, storefront.SheetOpen, sheet.State())
	assert.True(t, sheet.Ready())

	sheet.Close()
	assert.Equal(t, storefront.SheetClosing, sheet.State())
	assert.False(t, sheet.Ready(), "ready cae de inmediato al cerrar")
	assert.NotNil(t, sheet.Product(), "el contenido sigue montado durante la salida")

	sched.fireTimer(t)
	assert.Equal(t, storefront.SheetClosed, sheet.State())
	assert.Nil(t, sheet.Product())

	assert.Equal(t, []storefront.SheetState{
		storefront.SheetOpening, storefront.SheetOpen,
		storefront.SheetClosing, storefront.SheetClosed,
	}, seen)
}

// Abrir durante el cierre completa el desmontaje primero: nunca se reabre
// sobre un desmontaje a medias.
func TestSheetReopenDuringClosing(t *testing.T) {
	sched := &manualScheduler{}
	sheet := storefront.NewSheet(sched, nil)

	sheet.Open(latte())
	sched.fireFrame(t)
	sheet.SetPendingQuantity(3)
	sheet.Close()
	require.Equal(t, storefront.SheetClosing, sheet.State())

	b := brownie()
	sheet.Open(b)

	assert.Equal(t, storefront.SheetOpening, sheet.State())
	assert.Equal(t, b, sheet.Product())
	assert.Zero(t, sheet.PendingQuantity(), "el desmontaje limpió la cantidad pendiente")
	assert.Equal(t, 1, sched.cancelled, "el timer de desmontaje quedó cancelado")

	// El timer viejo ya no existe; el frame nuevo completa la apertura.
	assert.Nil(t, sched.timer)
	sched.fireFrame(t)
	assert.Equal(t, storefront.SheetOpen, sheet.State())
}

func TestSheetRapidOpenCloseCancelsFrame(t *testing.T) {
	sched := &manualScheduler{}
	sheet := storefront.NewSheet(sched, nil)

	sheet.Open(latte())
	sheet.Close()

	assert.Equal(t, storefront.SheetClosing, sheet.State())
	assert.Nil(t, sched.frame, "el frame pendiente de la apertura se canceló")

	sched.fireTimer(t)
	assert.Equal(t, storefront.SheetClosed, sheet.State())
}

func TestSheetCloseWhenClosedIsNoop(t *testing.T) {
	sched := &manualScheduler{}
	sheet := storefront.NewSheet(sched, nil)

	sheet.Close()
	assert.Equal(t, storefront.SheetClosed, sheet.State())
	assert.Nil(t, sched.timer)

	// Cerrar dos veces tampoco agenda un segundo timer.
	sheet.Open(latte())
	sched.fireFrame(t)
	sheet.Close()
	first := sched.timer
	sheet.Close()
	assert.Equal(t, storefront.SheetClosing, sheet.State())
	assert.NotNil(t, first)
}

func TestSheetEscapeAndBackdropClose(t *testing.T) {
	sched := &manualScheduler{}
	sheet := storefront.NewSheet(sched, nil)

	sheet.Open(latte())
	sched.fireFrame(t)
	sheet.HandleEscape()
	assert.Equal(t, storefront.SheetClosing, sheet.State())
	sched.fireTimer(t)

	sheet.Open(latte())
	sched.fireFrame(t)
	sheet.HandleBackdrop()
	assert.Equal(t, storefront.SheetClosing, sheet.State())
}

func TestSheetContentClickDoesNothing(t *testing.T) {
	sched := &manualScheduler{}
	sheet := storefront.NewSheet(sched, nil)

	sheet.Open(latte())
	sched.fireFrame(t)
	sheet.HandleContentClick()
	assert.Equal(t, storefront.SheetOpen, sheet.State())
}

func TestSheetPendingQuantityFloor(t *testing.T) {
	sheet := storefront.NewSheet(&manualScheduler{}, nil)
	sheet.SetPendingQuantity(5)
	assert.Equal(t, 5, sheet.PendingQuantity())
	sheet.SetPendingQuantity(-3)
	assert.Zero(t, sheet.PendingQuantity())
}

func TestScrollLocked(t *testing.T) {
	sched := &manualScheduler{}
	detail := storefront.NewSheet(sched, nil)
	cartSheet := storefront.NewSheet(&manualScheduler{}, nil)

	assert.False(t, storefront.ScrollLocked(detail, cartSheet))

	detail.Open(latte())
	assert.True(t, storefront.ScrollLocked(detail, cartSheet), "cualquier hoja no cerrada bloquea el scroll")

	sched.fireFrame(t)
	detail.Close()
	assert.True(t, storefront.ScrollLocked(detail, cartSheet), "Closing también bloquea")

	sched.fireTimer(t)
	assert.False(t, storefront.ScrollLocked(detail, cartSheet))
}
