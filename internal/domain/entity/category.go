package entity

import "time"

// Category categoría de menú de un local. Slug único por local.
// DisplayOrder define el orden en el menú público; empates por nombre.
type Category struct {
	ID           string
	VenueID      string
	Slug         string
	Name         string
	DisplayOrder int
	IsVisible    bool
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubCategory subcategoría dentro de una categoría (ej. "espressos" dentro de "calientes").
type SubCategory struct {
	ID           string
	VenueID      string
	CategoryID   string
	Slug         string
	Name         string
	DisplayOrder int
	IsVisible    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
