package repository

import "github.com/jhoicas/qrmenu-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetBySlugOrName busca por slug normalizado o por nombre exacto (resolución del campo legado).
	GetBySlugOrName(venueID, slug, name string) (*entity.Category, error)
	// ListVisibleByVenue lista categorías visibles ordenadas por displayOrder, luego nombre.
	ListVisibleByVenue(venueID string) ([]*entity.Category, error)
	ListByVenue(venueID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}

// SubCategoryRepository puerto de persistencia para subcategorías.
type SubCategoryRepository interface {
	Create(sub *entity.SubCategory) error
	GetByID(id string) (*entity.SubCategory, error)
	// ListVisibleByVenue lista subcategorías visibles ordenadas por displayOrder, luego nombre.
	ListVisibleByVenue(venueID string) ([]*entity.SubCategory, error)
	ListByCategory(categoryID string) ([]*entity.SubCategory, error)
	Update(sub *entity.SubCategory) error
	Delete(id string) error
}
