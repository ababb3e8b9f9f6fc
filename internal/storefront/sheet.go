package storefront

import (
	"sync"
	"time"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
)

// SheetState estado de una hoja superpuesta (detalle de producto o resumen
// del carrito).
//
//	Closed → Opening (frame pendiente) → Open → Closing (timer pendiente) → Closed
//
// Closing nunca vuelve a Opening sin completar el desmontaje: cualquier
// frame o timer pendiente se cancela antes de agendar uno nuevo.
type SheetState int

const (
	SheetClosed SheetState = iota
	SheetOpening
	SheetOpen
	SheetClosing
)

// TeardownDelay duración de la transición de salida: el elemento se desmonta
// recién después de que terminó de animarse.
const TeardownDelay = 220 * time.Millisecond

// Scheduler abstrae los dos diferidos cancelables de la hoja: el callback de
// siguiente frame (para que el renderer observe la transición de entrada) y
// el timer de desmontaje.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
	AfterDelay(d time.Duration, fn func()) (cancel func())
}

// frameInterval aproximación de un frame de render para el scheduler real.
const frameInterval = 16 * time.Millisecond

// TimerScheduler implementación real sobre time.AfterFunc.
type TimerScheduler struct{}

// RequestFrame agenda fn para el siguiente frame.
func (TimerScheduler) RequestFrame(fn func()) func() {
	t := time.AfterFunc(frameInterval, fn)
	return func() { t.Stop() }
}

// AfterDelay agenda fn tras la demora dada.
func (TimerScheduler) AfterDelay(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Sheet una hoja superpuesta con su máquina de estados. A lo sumo uno de
// {frame pendiente, timer pendiente} vive a la vez; agendar siempre cancela
// el anterior para que dos ciclos rápidos de abrir/cerrar no corrompan el
// estado visible.
type Sheet struct {
	mu    sync.Mutex
	state SheetState
	ready bool

	product    *entity.Product // hoja de detalle; nil en la hoja de carrito
	pendingQty int             // cantidad local todavía no volcada al carrito

	cancelFrame func()
	cancelTimer func()

	scheduler Scheduler
	onChange  func(SheetState) // opcional, para el render
}

// NewSheet construye una hoja cerrada.
func NewSheet(scheduler Scheduler, onChange func(SheetState)) *Sheet {
	return &Sheet{scheduler: scheduler, onChange: onChange}
}

// Open abre la hoja: cancela diferidos pendientes, completa cualquier
// desmontaje en vuelo (Closing termina en Closed antes de un nuevo Opening)
// y agenda el flip de "ready" al siguiente frame.
func (s *Sheet) Open(product *entity.Product) {
	s.mu.Lock()
	s.cancelPendingLocked()
	if s.state == SheetClosing {
		s.teardownLocked()
	}
	s.state = SheetOpening
	s.ready = false
	s.product = product
	s.pendingQty = 0
	s.cancelFrame = s.scheduler.RequestFrame(s.onFrame)
	s.mu.Unlock()
	s.notify(SheetOpening)
}

func (s *Sheet) onFrame() {
	s.mu.Lock()
	s.cancelFrame = nil
	if s.state != SheetOpening {
		s.mu.Unlock()
		return
	}
	s.state = SheetOpen
	s.ready = true
	s.mu.Unlock()
	s.notify(SheetOpen)
}

// Close cierra la hoja: "ready" cae de inmediato (arranca la transición de
// salida) y el desmontaje corre tras TeardownDelay.
func (s *Sheet) Close() {
	s.mu.Lock()
	if s.state == SheetClosed || s.state == SheetClosing {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked()
	s.state = SheetClosing
	s.ready = false
	s.cancelTimer = s.scheduler.AfterDelay(TeardownDelay, s.onTeardown)
	s.mu.Unlock()
	s.notify(SheetClosing)
}

func (s *Sheet) onTeardown() {
	s.mu.Lock()
	s.cancelTimer = nil
	if s.state != SheetClosing {
		s.mu.Unlock()
		return
	}
	s.teardownLocked()
	s.mu.Unlock()
	s.notify(SheetClosed)
}

// HandleEscape tecla Escape: cierra.
func (s *Sheet) HandleEscape() { s.Close() }

// HandleBackdrop click en el fondo: cierra.
func (s *Sheet) HandleBackdrop() { s.Close() }

// HandleContentClick click dentro del contenido: no hace nada (el click no
// propaga al fondo).
func (s *Sheet) HandleContentClick() {}

// State estado actual.
func (s *Sheet) State() SheetState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ready flag de transición de entrada observable por el renderer.
func (s *Sheet) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Product producto mostrado en la hoja de detalle (nil si está desmontada).
func (s *Sheet) Product() *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product
}

// PendingQuantity cantidad local de la hoja de detalle, previa al volcado al carrito.
func (s *Sheet) PendingQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingQty
}

// SetPendingQuantity ajusta la cantidad local (piso en 0).
func (s *Sheet) SetPendingQuantity(qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty < 0 {
		qty = 0
	}
	s.pendingQty = qty
}

// requiere s.mu
func (s *Sheet) cancelPendingLocked() {
	if s.cancelFrame != nil {
		s.cancelFrame()
		s.cancelFrame = nil
	}
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
}

// requiere s.mu
func (s *Sheet) teardownLocked() {
	s.state = SheetClosed
	s.ready = false
	s.product = nil
	s.pendingQty = 0
}

func (s *Sheet) notify(st SheetState) {
	if s.onChange != nil {
		s.onChange(st)
	}
}

// ScrollLocked indica si la página debe bloquear el scroll: alguna de las
// hojas no está cerrada.
func ScrollLocked(sheets ...*Sheet) bool {
	for _, sh := range sheets {
		if sh.State() != SheetClosed {
			return true
		}
	}
	return false
}
