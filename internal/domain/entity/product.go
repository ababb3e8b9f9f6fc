package entity

import "time"

// Product producto del menú. El precio siempre es un entero de centavos
// (nunca moneda fraccionaria); DeletedAt marca borrado lógico y excluye
// el producto de todo listado público.
type Product struct {
	ID            string
	VenueID       string
	Name          string
	Slug          string // único por local
	Category      string // campo legado de texto libre; CategoryID es la referencia real
	CategoryID    *string
	SubCategoryID *string
	Description   string
	PriceCents    int64
	ImageURL      string
	IsActive      bool
	IsInStock     bool
	DietTags      []string
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Deleted indica si el producto está borrado lógicamente.
func (p *Product) Deleted() bool {
	return p.DeletedAt != nil
}
