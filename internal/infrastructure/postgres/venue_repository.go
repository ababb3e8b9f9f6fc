package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

var _ repository.VenueRepository = (*VenueRepo)(nil)

// VenueRepo implementación del puerto VenueRepository sobre PostgreSQL (usable con pool o tx).
type VenueRepo struct {
	q Querier
}

// NewVenueRepository construye el adaptador de persistencia para locales.
func NewVenueRepository(q Querier) *VenueRepo {
	return &VenueRepo{q: q}
}

const venueColumns = `id, name, slug, announcement, opening_hours, created_at, updated_at`

// Create persiste un nuevo local.
func (r *VenueRepo) Create(venue *entity.Venue) error {
	query := `
		INSERT INTO venues (id, name, slug, announcement, opening_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		venue.ID, venue.Name, venue.Slug, venue.Announcement, venue.OpeningHours,
		venue.CreatedAt, venue.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

// GetByID obtiene un local por ID.
func (r *VenueRepo) GetByID(id string) (*entity.Venue, error) {
	return r.getOne(`SELECT `+venueColumns+` FROM venues WHERE id = $1`, id)
}

// GetBySlug obtiene un local por slug (clave pública del QR).
func (r *VenueRepo) GetBySlug(slug string) (*entity.Venue, error) {
	return r.getOne(`SELECT `+venueColumns+` FROM venues WHERE slug = $1`, slug)
}

// GetByIDOrSlug resuelve un identificador que puede ser id real o slug.
func (r *VenueRepo) GetByIDOrSlug(idOrSlug string) (*entity.Venue, error) {
	venue, err := r.GetByID(idOrSlug)
	if err != nil {
		return nil, err
	}
	if venue != nil {
		return venue, nil
	}
	return r.GetBySlug(idOrSlug)
}

func (r *VenueRepo) getOne(query string, arg any) (*entity.Venue, error) {
	var v entity.Venue
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.Name, &v.Slug, &v.Announcement, &v.OpeningHours, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return &v, nil
}
