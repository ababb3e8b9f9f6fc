package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
	"github.com/jhoicas/qrmenu-api/internal/storefront"
	"github.com/jhoicas/qrmenu-api/pkg/format"
)

// MenuUseCase arma el menú público de un local: datos de cabecera,
// categorías visibles y productos filtrados o agrupados según la selección.
type MenuUseCase struct {
	venues   repository.VenueRepository
	products repository.ProductRepository
	cats     repository.CategoryRepository
	subs     repository.SubCategoryRepository
	views    repository.ViewLogRepository
	log      zerolog.Logger
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(
	venues repository.VenueRepository,
	products repository.ProductRepository,
	cats repository.CategoryRepository,
	subs repository.SubCategoryRepository,
	views repository.ViewLogRepository,
	log zerolog.Logger,
) *MenuUseCase {
	return &MenuUseCase{venues: venues, products: products, cats: cats, subs: subs, views: views, log: log}
}

// GetMenu devuelve el menú del local identificado por id o slug, aplicando
// la selección de categoría, subcategoría y búsqueda. Registra la vista en
// segundo plano; un fallo del registro nunca afecta la respuesta.
func (uc *MenuUseCase) GetMenu(venueIDOrSlug string, query storefront.Query, tableID, userAgent string) (*dto.MenuResponse, error) {
	venue, err := uc.venues.GetByIDOrSlug(venueIDOrSlug)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, domain.ErrVenueNotFound
	}

	products, err := uc.products.ListMenuByVenue(venue.ID)
	if err != nil {
		return nil, err
	}
	categories, err := uc.cats.ListVisibleByVenue(venue.ID)
	if err != nil {
		return nil, err
	}
	subCategories, err := uc.subs.ListVisibleByVenue(venue.ID)
	if err != nil {
		return nil, err
	}

	catalog := storefront.NewCatalog(products, categories, subCategories)

	resp := &dto.MenuResponse{
		Venue: dto.MenuVenue{
			ID:           venue.ID,
			Slug:         venue.Slug,
			Name:         venue.Name,
			Announcement: venue.Announcement,
			OpeningHours: venue.OpeningHours,
		},
		Categories: toMenuCategories(catalog, categories),
	}

	if groups := catalog.Grouped(query); groups != nil {
		resp.Groups = make([]dto.MenuGroup, 0, len(groups))
		for _, g := range groups {
			resp.Groups = append(resp.Groups, dto.MenuGroup{
				Slug:  g.Slug,
				Name:  g.Name,
				Items: toMenuProducts(catalog, g.Items),
			})
		}
	} else {
		resp.Items = toMenuProducts(catalog, catalog.Filter(query))
	}

	uc.recordView(venue.ID, tableID, userAgent)
	return resp, nil
}

// recordView escribe el registro de acceso en una goroutine aparte.
func (uc *MenuUseCase) recordView(venueID, tableID, userAgent string) {
	log := &entity.ViewLog{
		ID:        uuid.New().String(),
		VenueID:   venueID,
		CreatedAt: time.Now(),
	}
	if tableID != "" {
		log.TableID = &tableID
	}
	if userAgent != "" {
		log.UserAgent = &userAgent
	}
	go func() {
		if err := uc.views.Create(log); err != nil {
			uc.log.Warn().Err(err).Str("venue_id", venueID).Msg("no se pudo registrar la vista del menú")
		}
	}()
}

func toMenuCategories(catalog *storefront.Catalog, categories []*entity.Category) []dto.MenuCategory {
	out := make([]dto.MenuCategory, 0, len(categories))
	for _, cat := range categories {
		subs := catalog.SubCategoriesFor(cat.Slug)
		menuSubs := make([]dto.MenuSubCategory, 0, len(subs))
		for _, sub := range subs {
			if !sub.IsVisible {
				continue
			}
			menuSubs = append(menuSubs, dto.MenuSubCategory{
				ID:   sub.ID,
				Slug: sub.Slug,
				Name: format.CapitalizeWords(sub.Name),
			})
		}
		out = append(out, dto.MenuCategory{
			ID:            cat.ID,
			Slug:          cat.Slug,
			Name:          format.CapitalizeWords(cat.Name),
			ImageURL:      catalog.CategoryImage(cat.Slug),
			SubCategories: menuSubs,
		})
	}
	return out
}

func toMenuProducts(catalog *storefront.Catalog, products []*entity.Product) []dto.MenuProduct {
	out := make([]dto.MenuProduct, 0, len(products))
	for _, p := range products {
		image := p.ImageURL
		if image == "" {
			image = catalog.CategoryImage(catalog.ResolveCategory(p))
		}
		out = append(out, dto.MenuProduct{
			ID:            p.ID,
			Name:          format.CapitalizeWords(p.Name),
			Slug:          p.Slug,
			Description:   p.Description,
			PriceCents:    p.PriceCents,
			Price:         format.Price(p.PriceCents),
			Category:      catalog.ResolveCategory(p),
			CategoryID:    p.CategoryID,
			SubCategoryID: p.SubCategoryID,
			ImageURL:      image,
			IsInStock:     p.IsInStock,
			DietTags:      p.DietTags,
		})
	}
	return out
}
