package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// diet_tags se guarda como JSON en una columna de texto (puede ser NULL).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, venue_id, name, slug, category, category_id, sub_category_id,
	description, price_cents, image_url, is_active, is_in_stock, diet_tags, deleted_at, created_at, updated_at`

// Create persiste un nuevo producto. Devuelve domain.ErrDuplicate en colisión
// de slug para que el caso de uso reintente con sufijo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, venue_id, name, slug, category, category_id, sub_category_id,
			description, price_cents, image_url, is_active, is_in_stock, diet_tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.VenueID, product.Name, product.Slug, product.Category,
		product.CategoryID, product.SubCategoryID, product.Description, product.PriceCents,
		product.ImageURL, product.IsActive, product.IsInStock, encodeDietTags(product.DietTags),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluye borrados lógicos; decide el caso de uso).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListMenuByVenue lista productos activos no borrados en el orden del menú
// público: categoría, subcategoría, precio descendente, nombre ascendente.
func (r *ProductRepo) ListMenuByVenue(venueID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE venue_id = $1 AND is_active AND deleted_at IS NULL
		ORDER BY category_id ASC NULLS LAST, sub_category_id ASC NULLS LAST, price_cents DESC, name ASC`
	return r.list(query, venueID)
}

// ListAdmin listado del panel admin: excluye borrados, filtra por categoría
// legada, búsqueda en nombre/descripción y estado activo.
func (r *ProductRepo) ListAdmin(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL`
	args := []any{}
	n := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, filter.Category)
		n++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", n, n)
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", n)
		args = append(args, *filter.IsActive)
		n++
	}
	query += " ORDER BY created_at DESC"
	return r.list(query, args...)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables. El precio se muta solo vía
// ChangePrice (transacción con histórico), nunca por acá.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, slug = $3, category = $4, category_id = $5, sub_category_id = $6,
			description = $7, is_active = $8, is_in_stock = $9, diet_tags = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Slug, product.Category, product.CategoryID,
		product.SubCategoryID, product.Description, product.IsActive, product.IsInStock,
		encodeDietTags(product.DietTags), product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateImageURL actualiza solo la imagen (ruta de subida de fotos).
func (r *ProductRepo) UpdateImageURL(id, imageURL string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET image_url = $2, updated_at = now() WHERE id = $1`, id, imageURL)
	if err != nil {
		return fmt.Errorf("update product image: %w", err)
	}
	return nil
}

// UpdatePrice actualiza solo el precio; lo usa la transacción de cambio de precio.
func (r *ProductRepo) UpdatePrice(id string, priceCents int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET price_cents = $2, updated_at = now() WHERE id = $1`, id, priceCents)
	if err != nil {
		return fmt.Errorf("update product price: %w", err)
	}
	return nil
}

// SoftDelete marca el producto como borrado; desaparece de todo listado público.
func (r *ProductRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

// CountByCategory cuenta productos no borrados que referencian la categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE category_id = $1 AND deleted_at IS NULL`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// CountBySubCategory cuenta productos no borrados que referencian la subcategoría.
func (r *ProductRepo) CountBySubCategory(subCategoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE sub_category_id = $1 AND deleted_at IS NULL`, subCategoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by subcategory: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var dietTags *string
	err := row.Scan(
		&p.ID, &p.VenueID, &p.Name, &p.Slug, &p.Category, &p.CategoryID, &p.SubCategoryID,
		&p.Description, &p.PriceCents, &p.ImageURL, &p.IsActive, &p.IsInStock,
		&dietTags, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dietTags != nil && *dietTags != "" {
		// Ignoramos tags corruptos antes que romper el listado del menú.
		_ = json.Unmarshal([]byte(*dietTags), &p.DietTags)
	}
	return &p, nil
}

func encodeDietTags(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}
