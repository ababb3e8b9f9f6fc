package entity

import "time"

// ViewLog registro de acceso al menú público (por mesa si el QR la incluye).
// Se escribe fire-and-forget: nunca bloquea la respuesta del menú.
type ViewLog struct {
	ID        string
	VenueID   string
	TableID   *string
	UserAgent *string
	CreatedAt time.Time
}
