package repository

import "github.com/jhoicas/qrmenu-api/internal/domain/entity"

// VenueRepository puerto de persistencia para locales.
type VenueRepository interface {
	Create(venue *entity.Venue) error
	GetByID(id string) (*entity.Venue, error)
	GetBySlug(slug string) (*entity.Venue, error)
	// GetByIDOrSlug resuelve un identificador que puede ser id real o slug (ej. "ornek-kafe").
	GetByIDOrSlug(idOrSlug string) (*entity.Venue, error)
}
