package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	DisplayOrder int    `json:"display_order"`
	IsVisible    *bool  `json:"is_visible"`
	ImageURL     string `json:"image_url"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	DisplayOrder *int    `json:"display_order"`
	IsVisible    *bool   `json:"is_visible"`
	ImageURL     *string `json:"image_url"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string    `json:"id"`
	VenueID      string    `json:"venue_id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    bool      `json:"is_visible"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSubCategoryRequest entrada para crear una subcategoría.
type CreateSubCategoryRequest struct {
	CategoryID   string `json:"category_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	DisplayOrder int    `json:"display_order"`
	IsVisible    *bool  `json:"is_visible"`
}

// UpdateSubCategoryRequest entrada para actualizar una subcategoría.
type UpdateSubCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	DisplayOrder *int    `json:"display_order"`
	IsVisible    *bool   `json:"is_visible"`
}

// SubCategoryResponse salida de una subcategoría.
type SubCategoryResponse struct {
	ID           string    `json:"id"`
	VenueID      string    `json:"venue_id"`
	CategoryID   string    `json:"category_id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    bool      `json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
