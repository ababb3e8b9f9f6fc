package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/storefront"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type recordingNotifier struct {
	added   []string
	removed []string
	opened  int
}

func (n *recordingNotifier) ItemAdded(id string)   { n.added = append(n.added, id) }
func (n *recordingNotifier) ItemRemoved(id string) { n.removed = append(n.removed, id) }
func (n *recordingNotifier) CartOpened()           { n.opened++ }

type recordingAnnouncer struct{ messages []string }

func (a *recordingAnnouncer) Announce(msg string) { a.messages = append(a.messages, msg) }

type stubConfirmer struct {
	answer bool
	asked  int
}

func (c *stubConfirmer) Confirm(string) bool {
	c.asked++
	return c.answer
}

func latte() *entity.Product {
	return &entity.Product{ID: "p-latte", Name: "Latte", PriceCents: 12000}
}

func brownie() *entity.Product {
	return &entity.Product{ID: "p-brownie", Name: "Brownie", PriceCents: 8000}
}

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestCartAddAccumulatesAndNotifiesOncePerCall(t *testing.T) {
	notifier := &recordingNotifier{}
	cart := storefront.NewCart(nil, storefront.WithHostNotifier(notifier))

	cart.Add(latte(), 1)
	cart.Add(latte(), 3)

	assert.Equal(t, 4, cart.Quantity("p-latte"))
	assert.Equal(t, 1, cart.Len())
	// Una notificación por operación, no por unidad.
	assert.Equal(t, []string{"p-latte", "p-latte"}, notifier.added)
}

func TestCartAddZeroOrNegativeIsNoop(t *testing.T) {
	notifier := &recordingNotifier{}
	announcer := &recordingAnnouncer{}
	cart := storefront.NewCart(nil, storefront.WithHostNotifier(notifier), storefront.WithAnnouncer(announcer))

	cart.Add(latte(), 0)
	cart.Add(latte(), -2)

	assert.Zero(t, cart.Quantity("p-latte"))
	assert.Empty(t, notifier.added)
	assert.Empty(t, announcer.messages, "un no-op no anuncia nada")
}

func TestCartAddAnnouncesQuantity(t *testing.T) {
	announcer := &recordingAnnouncer{}
	cart := storefront.NewCart(storefront.NewBroadcaster(), storefront.WithAnnouncer(announcer))

	cart.Add(latte(), 1)
	cart.Add(latte(), 2)

	require.Len(t, announcer.messages, 2)
	assert.Equal(t, "Latte agregado al carrito", announcer.messages[0])
	assert.Equal(t, "2 × Latte agregados al carrito", announcer.messages[1])
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestCartRemoveDecrementsByOne(t *testing.T) {
	cart := storefront.NewCart(storefront.NewBroadcaster())
	cart.Add(latte(), 3)

	cart.Remove(latte(), 3)
	assert.Equal(t, 2, cart.Quantity("p-latte"))
}

func TestCartRemoveLastUnitAsksConfirmation(t *testing.T) {
	confirmer := &stubConfirmer{answer: true}
	cart := storefront.NewCart(storefront.NewBroadcaster(), storefront.WithConfirmer(confirmer))
	cart.Add(latte(), 1)

	cart.Remove(latte(), 1)

	assert.Equal(t, 1, confirmer.asked)
	assert.Zero(t, cart.Quantity("p-latte"))
	assert.Zero(t, cart.Len(), "la entrada en 0 se borra, no se retiene")
}

func TestCartRemoveDeclinedLeavesStateIntact(t *testing.T) {
	confirmer := &stubConfirmer{answer: false}
	notifier := &recordingNotifier{}
	cart := storefront.NewCart(nil, storefront.WithConfirmer(confirmer), storefront.WithHostNotifier(notifier))
	cart.Add(latte(), 1)

	cart.Remove(latte(), 1)

	assert.Equal(t, 1, confirmer.asked)
	assert.Equal(t, 1, cart.Quantity("p-latte"), "rechazar la confirmación no toca el libro")
	assert.Empty(t, notifier.removed)
}

func TestCartRemoveAboveOneDoesNotAsk(t *testing.T) {
	confirmer := &stubConfirmer{answer: false}
	cart := storefront.NewCart(storefront.NewBroadcaster(), storefront.WithConfirmer(confirmer))
	cart.Add(latte(), 2)

	cart.Remove(latte(), 2)

	assert.Zero(t, confirmer.asked)
	assert.Equal(t, 1, cart.Quantity("p-latte"))
}

func TestCartRemoveNegativeUsesLedgerQuantity(t *testing.T) {
	confirmer := &stubConfirmer{answer: true}
	cart := storefront.NewCart(storefront.NewBroadcaster(), storefront.WithConfirmer(confirmer))
	cart.Add(latte(), 1)

	// currentQuantity < 0: el carrito consulta su propia cantidad (1) y confirma.
	cart.Remove(latte(), -1)

	assert.Equal(t, 1, confirmer.asked)
	assert.Zero(t, cart.Quantity("p-latte"))
}

// Sin broadcaster ni anfitrión el carrito sigue operando: el constructor
// provee su propio canal de difusión.
func TestCartWithoutBroadcasterOrHost(t *testing.T) {
	cart := storefront.NewCart(nil)

	cart.Add(latte(), 2)
	cart.Open()
	assert.Equal(t, 2, cart.Quantity("p-latte"))

	cart.Remove(latte(), 2)
	cart.Remove(latte(), -1) // sin confirmador, la última unidad sale sin preguntar
	assert.Zero(t, cart.Quantity("p-latte"))
	assert.Zero(t, cart.Len())
}

func TestCartRemoveUnknownProductIsNoop(t *testing.T) {
	notifier := &recordingNotifier{}
	cart := storefront.NewCart(nil, storefront.WithHostNotifier(notifier))

	cart.Remove(latte(), -1)
	assert.Empty(t, notifier.removed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificación: anfitrión primero, difusión como fallback
// ──────────────────────────────────────────────────────────────────────────────

func TestCartBroadcastFallbackWhenNoHost(t *testing.T) {
	broadcast := storefront.NewBroadcaster()
	events := broadcast.Subscribe()
	cart := storefront.NewCart(broadcast)

	cart.Add(latte(), 1)
	cart.Open()

	ev := <-events
	assert.Equal(t, "added", ev.Kind)
	assert.Equal(t, "p-latte", ev.ProductID)
	ev = <-events
	assert.Equal(t, "opened", ev.Kind)
}

func TestCartHostNotifierTakesPriorityOverBroadcast(t *testing.T) {
	broadcast := storefront.NewBroadcaster()
	events := broadcast.Subscribe()
	notifier := &recordingNotifier{}
	cart := storefront.NewCart(broadcast, storefront.WithHostNotifier(notifier))

	cart.Add(latte(), 1)
	cart.Open()

	assert.Equal(t, []string{"p-latte"}, notifier.added)
	assert.Equal(t, 1, notifier.opened)
	select {
	case ev := <-events:
		t.Fatalf("con anfitrión registrado no debe difundirse nada, llegó %+v", ev)
	default:
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestCartSummaryRecomputesTotals(t *testing.T) {
	cart := storefront.NewCart(storefront.NewBroadcaster())
	cart.Add(latte(), 2)
	cart.Add(brownie(), 1)

	s := cart.Summary()
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, int64(2*12000+8000), s.TotalCents)
	require.Len(t, s.Entries, 2)
	// Entradas ordenadas por nombre para render estable.
	assert.Equal(t, "Brownie", s.Entries[0].Product.Name)
	assert.Equal(t, "Latte", s.Entries[1].Product.Name)

	cart.Remove(latte(), 2)
	s = cart.Summary()
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, int64(12000+8000), s.TotalCents)
}

func TestCartSummaryEmpty(t *testing.T) {
	cart := storefront.NewCart(storefront.NewBroadcaster())
	s := cart.Summary()
	assert.Zero(t, s.Count)
	assert.Zero(t, s.TotalCents)
	assert.Empty(t, s.Entries)
}
