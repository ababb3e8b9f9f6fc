package dto

// MenuProduct producto tal como lo ve el menú público: precio ya formateado,
// nombre capitalizado, imagen con fallback resuelto.
type MenuProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description,omitempty"`
	PriceCents    int64    `json:"price_cents"`
	Price         string   `json:"price"`
	Category      string   `json:"category"`
	CategoryID    *string  `json:"category_id,omitempty"`
	SubCategoryID *string  `json:"sub_category_id,omitempty"`
	ImageURL      string   `json:"image_url"`
	IsInStock     bool     `json:"is_in_stock"`
	DietTags      []string `json:"diet_tags,omitempty"`
}

// MenuCategory categoría visible del menú con sus subcategorías ordenadas.
type MenuCategory struct {
	ID            string            `json:"id"`
	Slug          string            `json:"slug"`
	Name          string            `json:"name"`
	ImageURL      string            `json:"image_url"`
	SubCategories []MenuSubCategory `json:"sub_categories"`
}

// MenuSubCategory subcategoría visible del menú.
type MenuSubCategory struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// MenuGroup grupo de productos por subcategoría (modo agrupado).
type MenuGroup struct {
	Slug  string        `json:"slug"`
	Name  string        `json:"name"`
	Items []MenuProduct `json:"items"`
}

// MenuResponse respuesta completa del menú público. Groups solo viene
// cuando hay categoría seleccionada sin filtro de subcategoría; si no,
// Items trae la lista plana filtrada.
type MenuResponse struct {
	Venue      MenuVenue      `json:"venue"`
	Categories []MenuCategory `json:"categories"`
	Items      []MenuProduct  `json:"items,omitempty"`
	Groups     []MenuGroup    `json:"groups,omitempty"`
}

// MenuVenue datos de cabecera del local.
type MenuVenue struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Announcement string `json:"announcement,omitempty"`
	OpeningHours string `json:"opening_hours,omitempty"`
}
