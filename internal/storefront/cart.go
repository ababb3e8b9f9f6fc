package storefront

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
)

// CartEntry línea del carrito: snapshot del producto más cantidad.
// Una entrada con cantidad 0 no existe: se borra, no se retiene en cero.
type CartEntry struct {
	Product  *entity.Product
	Quantity int
}

// CartSummary totales derivados, recalculados en cada mutación (nunca cacheados).
type CartSummary struct {
	Count      int
	TotalCents int64
	Entries    []CartEntry
}

// HostNotifier punto de integración con la página anfitriona: una
// notificación por operación (no por unidad).
type HostNotifier interface {
	ItemAdded(productID string)
	ItemRemoved(productID string)
	CartOpened()
}

// Announcer región viva de accesibilidad: recibe el anuncio para lectores de pantalla.
type Announcer interface {
	Announce(message string)
}

// Confirmer confirmación interactiva bloqueante (sí/no) antes de quitar la última unidad.
type Confirmer interface {
	Confirm(message string) bool
}

// CartEvent notificación difundida cuando no hay anfitrión registrado.
type CartEvent struct {
	Kind      string // "added" | "removed" | "opened"
	ProductID string
}

// Broadcaster canal genérico de publicación/suscripción para eventos del
// carrito. Fallback cuando el anfitrión no aporta un HostNotifier:
// "notificar al anfitrión si existe, si no difundir".
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan CartEvent
}

// NewBroadcaster construye el canal de difusión.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe devuelve un canal con buffer que recibirá los eventos siguientes.
func (b *Broadcaster) Subscribe() <-chan CartEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan CartEvent, 16)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish difunde sin bloquear: un suscriptor lento pierde eventos.
func (b *Broadcaster) Publish(ev CartEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Cart libro del carrito, estado efímero del lado del cliente: mapa
// productID → entrada, sin persistencia en servidor. El mutex existe porque
// en Go no hay el event loop cooperativo que daba exclusión implícita.
type Cart struct {
	mu        sync.Mutex
	items     map[string]CartEntry
	notifier  HostNotifier // nil = usar broadcast
	broadcast *Broadcaster
	announcer Announcer
	confirmer Confirmer
}

// CartOption configuración opcional del carrito.
type CartOption func(*Cart)

// WithHostNotifier registra el callback del anfitrión (tiene prioridad sobre el broadcast).
func WithHostNotifier(n HostNotifier) CartOption {
	return func(c *Cart) { c.notifier = n }
}

// WithAnnouncer registra la región viva de accesibilidad.
func WithAnnouncer(a Announcer) CartOption {
	return func(c *Cart) { c.announcer = a }
}

// WithConfirmer registra la confirmación interactiva. Sin confirmador, quitar
// la última unidad procede sin preguntar (no hay con quién confirmar).
func WithConfirmer(f Confirmer) CartOption {
	return func(c *Cart) { c.confirmer = f }
}

// NewCart construye el carrito vacío. Un broadcast nil se sustituye por un
// canal propio: el fallback de difusión siempre tiene a dónde publicar.
func NewCart(broadcast *Broadcaster, opts ...CartOption) *Cart {
	if broadcast == nil {
		broadcast = NewBroadcaster()
	}
	c := &Cart{
		items:     map[string]CartEntry{},
		broadcast: broadcast,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add agrega cantidad de un producto. Cantidad <= 0 es no-op. Emite una sola
// notificación externa por llamada y anuncia nombre y cantidad al lector de
// pantalla.
func (c *Cart) Add(product *entity.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	c.mu.Lock()
	entry, ok := c.items[product.ID]
	if ok {
		entry.Quantity += quantity
	} else {
		entry = CartEntry{Product: product, Quantity: quantity}
	}
	c.items[product.ID] = entry
	c.mu.Unlock()

	c.notifyAdded(product.ID)
	if quantity == 1 {
		c.announce(fmt.Sprintf("%s agregado al carrito", product.Name))
	} else {
		c.announce(fmt.Sprintf("%d × %s agregados al carrito", quantity, product.Name))
	}
}

// Remove quita exactamente una unidad. Si la cantidad efectiva llegaría a 0,
// primero exige confirmación interactiva; rechazarla deja el estado intacto.
// En 0 la entrada se borra del mapa. currentQuantity < 0 usa la cantidad del
// libro.
func (c *Cart) Remove(product *entity.Product, currentQuantity int) {
	c.mu.Lock()
	entry, ok := c.items[product.ID]
	effective := currentQuantity
	if effective < 0 {
		if ok {
			effective = entry.Quantity
		} else {
			effective = 0
		}
	}
	c.mu.Unlock()

	if effective <= 1 {
		if c.confirmer != nil && !c.confirmer.Confirm(fmt.Sprintf("%s se quitará del carrito. ¿Seguro?", product.Name)) {
			return
		}
	}

	c.mu.Lock()
	entry, ok = c.items[product.ID]
	if !ok {
		c.mu.Unlock()
		return
	}
	if entry.Quantity <= 1 {
		delete(c.items, product.ID)
	} else {
		entry.Quantity--
		c.items[product.ID] = entry
	}
	c.mu.Unlock()

	c.notifyRemoved(product.ID)
	c.announce(fmt.Sprintf("%s quitado del carrito", product.Name))
}

// Open notifica la apertura del resumen del carrito al anfitrión.
func (c *Cart) Open() {
	if c.notifier != nil {
		c.notifier.CartOpened()
		return
	}
	c.broadcast.Publish(CartEvent{Kind: "opened"})
}

// Quantity cantidad vigente de un producto (0 si no está).
func (c *Cart) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[productID].Quantity
}

// Len número de entradas distintas.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Summary recalcula los totales desde cero: Σ cantidad y Σ cantidad × precio.
func (c *Cart) Summary() CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := CartSummary{Entries: make([]CartEntry, 0, len(c.items))}
	for _, entry := range c.items {
		s.Count += entry.Quantity
		s.TotalCents += int64(entry.Quantity) * entry.Product.PriceCents
		s.Entries = append(s.Entries, entry)
	}
	sort.Slice(s.Entries, func(i, j int) bool {
		return s.Entries[i].Product.Name < s.Entries[j].Product.Name
	})
	return s
}

func (c *Cart) notifyAdded(productID string) {
	if c.notifier != nil {
		c.notifier.ItemAdded(productID)
		return
	}
	c.broadcast.Publish(CartEvent{Kind: "added", ProductID: productID})
}

func (c *Cart) notifyRemoved(productID string) {
	if c.notifier != nil {
		c.notifier.ItemRemoved(productID)
		return
	}
	c.broadcast.Publish(CartEvent{Kind: "removed", ProductID: productID})
}

func (c *Cart) announce(message string) {
	if c.announcer != nil {
		c.announcer.Announce(message)
	}
}
