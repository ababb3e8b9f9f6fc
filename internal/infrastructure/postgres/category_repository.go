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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, venue_id, slug, name, display_order, is_visible, image_url, created_at, updated_at`

// Create persiste una nueva categoría. Slug único por local.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, venue_id, slug, name, display_order, is_visible, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.VenueID, category.Slug, category.Name, category.DisplayOrder,
		category.IsVisible, category.ImageURL, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id).Scan(
		&c.ID, &c.VenueID, &c.Slug, &c.Name, &c.DisplayOrder, &c.IsVisible, &c.ImageURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetBySlugOrName busca por slug normalizado o por nombre exacto.
func (r *CategoryRepo) GetBySlugOrName(venueID, slug, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE venue_id = $1 AND (slug = $2 OR name = $3) LIMIT 1`,
		venueID, slug, name).Scan(
		&c.ID, &c.VenueID, &c.Slug, &c.Name, &c.DisplayOrder, &c.IsVisible, &c.ImageURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by slug/name: %w", err)
	}
	return &c, nil
}

// ListVisibleByVenue lista categorías visibles del local ordenadas por displayOrder, luego nombre.
func (r *CategoryRepo) ListVisibleByVenue(venueID string) ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryColumns+` FROM categories
		WHERE venue_id = $1 AND is_visible
		ORDER BY display_order ASC, name ASC`, venueID)
}

// ListByVenue lista todas las categorías del local (panel admin).
func (r *CategoryRepo) ListByVenue(venueID string) ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryColumns+` FROM categories
		WHERE venue_id = $1
		ORDER BY display_order ASC, name ASC`, venueID)
}

func (r *CategoryRepo) list(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.VenueID, &c.Slug, &c.Name, &c.DisplayOrder, &c.IsVisible,
			&c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET slug = $2, name = $3, display_order = $4, is_visible = $5, image_url = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Slug, category.Name, category.DisplayOrder,
		category.IsVisible, category.ImageURL, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina una categoría. El caso de uso verifica antes que ningún
// producto no borrado la referencie.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
