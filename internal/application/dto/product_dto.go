package dto

import "time"

// CreateProductRequest entrada para crear un producto. El precio llega en
// centavos; el slug se deriva del nombre en el servidor.
type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Description   string   `json:"description"`
	PriceCents    int64    `json:"price_cents" validate:"min=0"`
	Category      string   `json:"category"`
	CategoryID    *string  `json:"category_id"`
	SubCategoryID *string  `json:"sub_category_id"`
	ImageURL      string   `json:"image_url"`
	IsActive      *bool    `json:"is_active"`
	IsInStock     *bool    `json:"is_in_stock"`
	DietTags      []string `json:"diet_tags"`
}

// UpdateProductRequest entrada para actualizar un producto. El precio no
// se toca aquí; los cambios de precio pasan por ChangePrice con su histórico.
type UpdateProductRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	CategoryID    *string  `json:"category_id"`
	SubCategoryID *string  `json:"sub_category_id"`
	ImageURL      *string  `json:"image_url"`
	IsActive      *bool    `json:"is_active"`
	IsInStock     *bool    `json:"is_in_stock"`
	DietTags      []string `json:"diet_tags"`
}

// ChangePriceRequest entrada para el cambio transaccional de precio.
type ChangePriceRequest struct {
	PriceCents int64  `json:"price_cents" validate:"min=0"`
	Reason     string `json:"reason"`
}

// ProductResponse salida de un producto para el panel admin.
type ProductResponse struct {
	ID            string     `json:"id"`
	VenueID       string     `json:"venue_id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	PriceCents    int64      `json:"price_cents"`
	Price         string     `json:"price"`
	Category      string     `json:"category"`
	CategoryID    *string    `json:"category_id"`
	SubCategoryID *string    `json:"sub_category_id"`
	ImageURL      string     `json:"image_url"`
	IsActive      bool       `json:"is_active"`
	IsInStock     bool       `json:"is_in_stock"`
	DietTags      []string   `json:"diet_tags"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProductListResponse listado admin de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// PriceHistoryResponse entrada del histórico de precios.
type PriceHistoryResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	OldPriceCents int64     `json:"old_price_cents"`
	NewPriceCents int64     `json:"new_price_cents"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
