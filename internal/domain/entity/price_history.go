package entity

import "time"

// PriceHistory registro inmutable de cambio de precio. Se crea en la misma
// transacción que la mutación del precio del producto, nunca se actualiza.
type PriceHistory struct {
	ID            string
	ProductID     string
	OldPriceCents int64
	NewPriceCents int64
	Reason        string
	CreatedAt     time.Time
}
