package storefront_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/storefront"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func product(id, name string, cents int64, legacy string, catID, subID *string) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          name,
		PriceCents:    cents,
		Category:      legacy,
		CategoryID:    catID,
		SubCategoryID: subID,
		IsActive:      true,
		IsInStock:     true,
	}
}

func testData() ([]*entity.Product, []*entity.Category, []*entity.SubCategory) {
	categories := []*entity.Category{
		{ID: "cat-hot", Slug: "hot", Name: "calientes", DisplayOrder: 1, IsVisible: true},
		{ID: "cat-cold", Slug: "cold", Name: "fríos", DisplayOrder: 2, IsVisible: true, ImageURL: "/img/cold.png"},
	}
	subCategories := []*entity.SubCategory{
		{ID: "sub-esp", CategoryID: "cat-hot", Slug: "espressos", Name: "espressos", DisplayOrder: 2, IsVisible: true},
		{ID: "sub-te", CategoryID: "cat-hot", Slug: "tes", Name: "tés", DisplayOrder: 1, IsVisible: true},
	}
	products := []*entity.Product{
		product("p1", "latte", 12000, "", strPtr("cat-hot"), strPtr("sub-esp")),
		product("p2", "americano", 9000, "", strPtr("cat-hot"), strPtr("sub-esp")),
		product("p3", "té verde", 8000, "", strPtr("cat-hot"), strPtr("sub-te")),
		product("p4", "chocolate caliente", 9000, "coffee", nil, nil), // legado, sin sub
		product("p5", "limonada", 7000, "", strPtr("cat-cold"), nil),
	}
	return products, categories, subCategories
}

func newTestCatalog() *storefront.Catalog {
	p, c, s := testData()
	return storefront.NewCatalog(p, c, s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtrado y orden
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterByCategorySortsPriceDescNameAsc(t *testing.T) {
	catalog := newTestCatalog()

	items := catalog.Filter(storefront.Query{CategorySlug: "hot"})
	require.Len(t, items, 4)

	// Precio desc; empate 9000 resuelto por nombre asc (americano < chocolate).
	assert.Equal(t, "latte", items[0].Name)
	assert.Equal(t, "americano", items[1].Name)
	assert.Equal(t, "chocolate caliente", items[2].Name)
	assert.Equal(t, "té verde", items[3].Name)
}

// El orden es total: cualquier permutación de entrada produce la misma salida.
func TestFilterOrderStableAcrossPermutations(t *testing.T) {
	products, categories, subCategories := testData()

	baseline := storefront.NewCatalog(products, categories, subCategories).
		Filter(storefront.Query{CategorySlug: "hot"})
	var want []string
	for _, p := range baseline {
		want = append(want, p.ID)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*entity.Product, len(products))
		copy(shuffled, products)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := storefront.NewCatalog(shuffled, categories, subCategories).
			Filter(storefront.Query{CategorySlug: "hot"})
		var ids []string
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, want, ids, "permutación %d", i)
	}
}

func TestFilterBySubCategory(t *testing.T) {
	catalog := newTestCatalog()

	items := catalog.Filter(storefront.Query{CategorySlug: "hot", SubCategorySlug: "espressos"})
	require.Len(t, items, 2)
	assert.Equal(t, "latte", items[0].Name)
	assert.Equal(t, "americano", items[1].Name)

	// El centinela ALL equivale a no filtrar por subcategoría.
	all := catalog.Filter(storefront.Query{CategorySlug: "hot", SubCategorySlug: storefront.SentinelAll})
	assert.Len(t, all, 4)
}

func TestFilterSearchMatchesNameAndDescription(t *testing.T) {
	products, categories, subCategories := testData()
	products[1].Description = "espresso con agua caliente"
	catalog := storefront.NewCatalog(products, categories, subCategories)

	byName := catalog.Filter(storefront.Query{Search: "LATTE"})
	require.Len(t, byName, 1)
	assert.Equal(t, "latte", byName[0].Name)

	byDesc := catalog.Filter(storefront.Query{Search: "agua"})
	require.Len(t, byDesc, 1)
	assert.Equal(t, "americano", byDesc[0].Name)

	assert.Empty(t, catalog.Filter(storefront.Query{Search: "inexistente"}))
}

func TestFilterWithoutCategoryIgnoresSubCategory(t *testing.T) {
	catalog := newTestCatalog()
	// Sin categoría, el filtro de subcategoría no aplica.
	items := catalog.Filter(storefront.Query{SubCategorySlug: "espressos"})
	assert.Len(t, items, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agrupado
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupedOnlyWithCategoryAndNoSubFilter(t *testing.T) {
	catalog := newTestCatalog()

	assert.Nil(t, catalog.Grouped(storefront.Query{}), "sin categoría no hay vista agrupada")
	assert.Nil(t, catalog.Grouped(storefront.Query{CategorySlug: "hot", SubCategorySlug: "espressos"}),
		"con subcategoría concreta se usa la lista plana")

	assert.NotNil(t, catalog.Grouped(storefront.Query{CategorySlug: "hot"}))
	assert.NotNil(t, catalog.Grouped(storefront.Query{CategorySlug: "hot", SubCategorySlug: storefront.SentinelAll}))
}

func TestGroupedOrderAndUncategorizedBucket(t *testing.T) {
	catalog := newTestCatalog()

	groups := catalog.Grouped(storefront.Query{CategorySlug: "hot"})
	require.Len(t, groups, 3)

	// Orden por displayOrder de subcategoría: tés (1) antes que espressos (2);
	// la cubeta sin subcategoría va al final.
	assert.Equal(t, "tes", groups[0].Slug)
	assert.Equal(t, "espressos", groups[1].Slug)
	assert.Equal(t, storefront.UncategorizedSlug, groups[2].Slug)
	assert.Equal(t, "Otros", groups[2].Name)

	// Dentro de cada grupo se mantiene el orden de la lista plana.
	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "latte", groups[1].Items[0].Name)
	assert.Equal(t, "americano", groups[1].Items[1].Name)

	// El producto legado sin subcategoría cae en la cubeta.
	require.Len(t, groups[2].Items, 1)
	assert.Equal(t, "chocolate caliente", groups[2].Items[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización del campo legado e imágenes
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeLegacyCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"coffee", "hot"}, // etiqueta histórica plegada
		{"Coffee", "hot"},
		{"hot", "hot"},
		{"cold", "cold"},
		{"dessert", "dessert"},
		{"Postres Especiales", "postres-especiales"},
		{"  Bebidas  Frías ", "bebidas-frías"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, storefront.NormalizeLegacyCategory(tc.in), "entrada %q", tc.in)
	}
}

func TestResolveCategoryPrefersReference(t *testing.T) {
	catalog := newTestCatalog()
	p, _, _ := testData()

	assert.Equal(t, "hot", catalog.ResolveCategory(p[0]), "referencia directa")
	assert.Equal(t, "hot", catalog.ResolveCategory(p[3]), "legado coffee → hot")

	// Referencia rota cae a la normalización del campo legado.
	broken := product("px", "x", 100, "cold", strPtr("cat-inexistente"), nil)
	assert.Equal(t, "cold", catalog.ResolveCategory(broken))
}

func TestCategoryImageFallbackChain(t *testing.T) {
	products := []*entity.Product{
		product("p1", "brownie", 5000, "dessert", nil, nil),
	}
	products[0].ImageURL = "/img/brownie.jpg"
	categories := []*entity.Category{
		{ID: "c1", Slug: "hot", Name: "calientes", IsVisible: true},
		{ID: "c2", Slug: "cold", Name: "fríos", IsVisible: true, ImageURL: "/img/cold.png"},
	}
	catalog := storefront.NewCatalog(products, categories, nil)

	assert.Equal(t, "/img/cold.png", catalog.CategoryImage("cold"), "imagen explícita gana")
	assert.Equal(t, "/images/categories/hot.jpg", catalog.CategoryImage("hot"), "convención por slug")
	assert.Equal(t, "/img/brownie.jpg", catalog.CategoryImage("dessert"), "imagen aportada por producto")
	assert.Equal(t, storefront.PlaceholderImage, catalog.CategoryImage("nada"), "placeholder final")
}

func TestSubCategoriesForOrdered(t *testing.T) {
	catalog := newTestCatalog()
	subs := catalog.SubCategoriesFor("hot")
	require.Len(t, subs, 2)
	assert.Equal(t, "tes", subs[0].Slug)
	assert.Equal(t, "espressos", subs[1].Slug)
	assert.Empty(t, catalog.SubCategoriesFor("cold"))
}
