package storefront

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
)

// SentinelAll valor distinguido del selector de subcategoría: sin filtro aplicado.
const SentinelAll = "ALL"

// Cubeta fija para productos sin subcategoría resoluble.
const (
	UncategorizedSlug  = "uncategorized"
	uncategorizedLabel = "Otros"
)

// PlaceholderImage imagen neutra cuando no hay ninguna otra resoluble.
const PlaceholderImage = "/images/placeholder.jpg"

// Query selección vigente del navegador de menú.
type Query struct {
	CategorySlug    string
	SubCategorySlug string // SentinelAll o vacío = sin filtro de subcategoría
	Search          string // substring sin distinguir mayúsculas sobre nombre o descripción
}

// Group grupo de productos por subcategoría en la vista agrupada.
type Group struct {
	Slug  string
	Name  string
	Items []*entity.Product
}

// Catalog motor de filtrado y agrupado del menú de un local. Se construye
// desde los datos ya cargados (productos, categorías, subcategorías) y es
// de solo lectura después.
type Catalog struct {
	products []*entity.Product

	idToSlug      map[string]string
	slugToImage   map[string]string
	subIDToSlug   map[string]string
	subSlugToName map[string]string
	subsByCatSlug map[string][]*entity.SubCategory

	collator *collate.Collator
}

// NewCatalog indexa los datos del menú para el filtrado.
func NewCatalog(products []*entity.Product, categories []*entity.Category, subCategories []*entity.SubCategory) *Catalog {
	c := &Catalog{
		products:      products,
		idToSlug:      map[string]string{},
		slugToImage:   map[string]string{},
		subIDToSlug:   map[string]string{},
		subSlugToName: map[string]string{},
		subsByCatSlug: map[string][]*entity.SubCategory{},
		collator:      collate.New(language.Spanish),
	}

	for _, cat := range categories {
		if cat.ID != "" {
			c.idToSlug[cat.ID] = cat.Slug
		}
		if cat.Slug != "" {
			if _, ok := c.slugToImage[cat.Slug]; !ok {
				img := cat.ImageURL
				if img == "" {
					// Convención: imagen por defecto derivada del slug
					img = "/images/categories/" + cat.Slug + ".jpg"
				}
				c.slugToImage[cat.Slug] = img
			}
		}
	}

	for _, sub := range subCategories {
		if sub.ID != "" {
			c.subIDToSlug[sub.ID] = sub.Slug
		}
		if sub.Slug != "" {
			c.subSlugToName[sub.Slug] = sub.Name
		}
		catSlug, ok := c.idToSlug[sub.CategoryID]
		if !ok {
			continue
		}
		c.subsByCatSlug[catSlug] = append(c.subsByCatSlug[catSlug], sub)
	}
	for key := range c.subsByCatSlug {
		subs := c.subsByCatSlug[key]
		sort.SliceStable(subs, func(i, j int) bool {
			if subs[i].DisplayOrder != subs[j].DisplayOrder {
				return subs[i].DisplayOrder < subs[j].DisplayOrder
			}
			return c.collator.CompareString(subs[i].Name, subs[j].Name) < 0
		})
	}

	// Productos aportan imagen a categorías legadas que no tienen ninguna.
	for _, p := range products {
		key := NormalizeLegacyCategory(p.Category)
		if key == "" || p.ImageURL == "" {
			continue
		}
		if _, ok := c.slugToImage[key]; !ok {
			c.slugToImage[key] = p.ImageURL
		}
	}

	return c
}

// NormalizeLegacyCategory normaliza el campo legado de texto libre: mapeo
// fijo de etiquetas históricas a slugs canónicos y slugificación del resto
// (minúsculas, espacios a guiones).
func NormalizeLegacyCategory(category string) string {
	if category == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(category))
	switch lower {
	case "coffee":
		// La etiqueta histórica "coffee" se pliega en la categoría canónica.
		return "hot"
	case "hot", "cold", "dessert":
		return lower
	}
	return strings.Join(strings.Fields(lower), "-")
}

// ResolveCategory resuelve el slug de categoría de un producto: referencia
// directa si existe, si no normalización del campo legado.
func (c *Catalog) ResolveCategory(p *entity.Product) string {
	if p.CategoryID != nil {
		if slug, ok := c.idToSlug[*p.CategoryID]; ok {
			return slug
		}
	}
	return NormalizeLegacyCategory(p.Category)
}

// ResolveSubCategory resuelve el slug de subcategoría; vacío si no hay referencia válida.
func (c *Catalog) ResolveSubCategory(p *entity.Product) string {
	if p.SubCategoryID != nil {
		if slug, ok := c.subIDToSlug[*p.SubCategoryID]; ok {
			return slug
		}
	}
	return ""
}

// Filter aplica la selección y devuelve la lista plana ordenada por precio
// descendente, empates por nombre ascendente (comparación por locale).
// Orden total fijo, estable ante cualquier permutación de entrada.
func (c *Catalog) Filter(q Query) []*entity.Product {
	search := strings.ToLower(q.Search)
	subSelected := q.SubCategorySlug != "" && q.SubCategorySlug != SentinelAll

	var result []*entity.Product
	for _, p := range c.products {
		if q.CategorySlug != "" && c.ResolveCategory(p) != q.CategorySlug {
			continue
		}
		if q.CategorySlug != "" && subSelected && c.ResolveSubCategory(p) != q.SubCategorySlug {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		result = append(result, p)
	}
	c.sortByPriceDesc(result)
	return result
}

// Grouped produce la vista agrupada por subcategoría. Solo activa cuando hay
// categoría seleccionada y el selector de subcategoría está en el centinela
// "todas"; cualquier otra combinación devuelve nil (usar Filter).
func (c *Catalog) Grouped(q Query) []Group {
	if q.CategorySlug == "" {
		return nil
	}
	if q.SubCategorySlug != "" && q.SubCategorySlug != SentinelAll {
		return nil
	}

	filtered := c.Filter(q)
	buckets := map[string][]*entity.Product{}
	for _, p := range filtered {
		slug := c.ResolveSubCategory(p)
		if slug == "" {
			slug = UncategorizedSlug
		}
		buckets[slug] = append(buckets[slug], p)
	}

	groups := make([]Group, 0, len(buckets))
	for slug, items := range buckets {
		name := uncategorizedLabel
		if slug != UncategorizedSlug {
			if n, ok := c.subSlugToName[slug]; ok {
				name = n
			} else {
				name = slug
			}
		}
		groups = append(groups, Group{Slug: slug, Name: name, Items: items})
	}

	// Orden de grupos: displayOrder de la subcategoría; desconocidos y la
	// cubeta sin categoría van después de todos los conocidos.
	order := map[string]int{}
	for idx, sub := range c.subsByCatSlug[q.CategorySlug] {
		order[sub.Slug] = idx
	}
	unknown := len(order) + 1
	rank := func(g Group) int {
		if r, ok := order[g.Slug]; ok {
			return r
		}
		return unknown
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := rank(groups[i]), rank(groups[j])
		if ri != rj {
			return ri < rj
		}
		return c.collator.CompareString(groups[i].Name, groups[j].Name) < 0
	})
	return groups
}

// SubCategoriesFor subcategorías de una categoría en su orden de presentación.
func (c *Catalog) SubCategoriesFor(categorySlug string) []*entity.SubCategory {
	return c.subsByCatSlug[categorySlug]
}

// CategoryImage resuelve la imagen de una categoría: explícita → convención
// por slug → imagen aportada por algún producto → placeholder neutro.
func (c *Catalog) CategoryImage(slug string) string {
	if img, ok := c.slugToImage[slug]; ok && img != "" {
		return img
	}
	return PlaceholderImage
}

func (c *Catalog) sortByPriceDesc(items []*entity.Product) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PriceCents != items[j].PriceCents {
			return items[i].PriceCents > items[j].PriceCents
		}
		return c.collator.CompareString(items[i].Name, items[j].Name) < 0
	})
}
