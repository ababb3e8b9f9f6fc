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

var _ repository.SubCategoryRepository = (*SubCategoryRepo)(nil)

// SubCategoryRepo implementación del puerto SubCategoryRepository sobre PostgreSQL.
type SubCategoryRepo struct {
	q Querier
}

// NewSubCategoryRepository construye el adaptador de persistencia para subcategorías.
func NewSubCategoryRepository(q Querier) *SubCategoryRepo {
	return &SubCategoryRepo{q: q}
}

const subCategoryColumns = `id, venue_id, category_id, slug, name, display_order, is_visible, created_at, updated_at`

// Create persiste una nueva subcategoría.
func (r *SubCategoryRepo) Create(sub *entity.SubCategory) error {
	query := `
		INSERT INTO sub_categories (id, venue_id, category_id, slug, name, display_order, is_visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.VenueID, sub.CategoryID, sub.Slug, sub.Name, sub.DisplayOrder,
		sub.IsVisible, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

// GetByID obtiene una subcategoría por ID.
func (r *SubCategoryRepo) GetByID(id string) (*entity.SubCategory, error) {
	var s entity.SubCategory
	err := r.q.QueryRow(context.Background(),
		`SELECT `+subCategoryColumns+` FROM sub_categories WHERE id = $1`, id).Scan(
		&s.ID, &s.VenueID, &s.CategoryID, &s.Slug, &s.Name, &s.DisplayOrder, &s.IsVisible,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

// ListVisibleByVenue lista subcategorías visibles del local ordenadas por displayOrder, luego nombre.
func (r *SubCategoryRepo) ListVisibleByVenue(venueID string) ([]*entity.SubCategory, error) {
	return r.list(`SELECT `+subCategoryColumns+` FROM sub_categories
		WHERE venue_id = $1 AND is_visible
		ORDER BY display_order ASC, name ASC`, venueID)
}

// ListByCategory lista las subcategorías de una categoría (panel admin).
func (r *SubCategoryRepo) ListByCategory(categoryID string) ([]*entity.SubCategory, error) {
	return r.list(`SELECT `+subCategoryColumns+` FROM sub_categories
		WHERE category_id = $1
		ORDER BY display_order ASC, name ASC`, categoryID)
}

func (r *SubCategoryRepo) list(query string, args ...any) ([]*entity.SubCategory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubCategory
	for rows.Next() {
		var s entity.SubCategory
		if err := rows.Scan(&s.ID, &s.VenueID, &s.CategoryID, &s.Slug, &s.Name, &s.DisplayOrder,
			&s.IsVisible, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza una subcategoría existente.
func (r *SubCategoryRepo) Update(sub *entity.SubCategory) error {
	query := `
		UPDATE sub_categories SET slug = $2, name = $3, display_order = $4, is_visible = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.Slug, sub.Name, sub.DisplayOrder, sub.IsVisible, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update subcategory: %w", err)
	}
	return nil
}

// Delete elimina una subcategoría. El caso de uso verifica referencias antes.
func (r *SubCategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}
