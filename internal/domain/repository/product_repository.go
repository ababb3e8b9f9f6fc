package repository

import "github.com/jhoicas/qrmenu-api/internal/domain/entity"

// ProductFilter filtros del listado admin de productos.
type ProductFilter struct {
	Category string // campo legado de texto libre
	Search   string // substring sobre nombre o descripción, sin distinguir mayúsculas
	IsActive *bool
}

// ProductRepository puerto de persistencia para productos.
// Todos los métodos excluyen productos con borrado lógico salvo GetByID.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// ListMenuByVenue lista productos activos no borrados ordenados por
	// categoría, precio descendente y nombre ascendente (orden del menú público).
	ListMenuByVenue(venueID string) ([]*entity.Product, error)
	ListAdmin(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateImageURL(id, imageURL string) error
	SoftDelete(id string) error
	// CountByCategory cuenta productos no borrados que referencian la categoría (bloqueo de borrado).
	CountByCategory(categoryID string) (int, error)
	CountBySubCategory(subCategoryID string) (int, error)
}

// PriceHistoryRepository puerto para el histórico de precios (solo inserción).
type PriceHistoryRepository interface {
	Create(history *entity.PriceHistory) error
	ListByProduct(productID string) ([]*entity.PriceHistory, error)
}
