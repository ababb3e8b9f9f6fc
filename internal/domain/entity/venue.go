package entity

import "time"

// Venue representa un local (restaurante o café) con su menú público.
// El slug es la clave pública que aparece en el QR de cada mesa.
type Venue struct {
	ID           string
	Name         string
	Slug         string
	Announcement string // aviso opcional mostrado en la cabecera del menú
	OpeningHours string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
