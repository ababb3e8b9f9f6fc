package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
	"github.com/jhoicas/qrmenu-api/pkg/slug"
)

// CategoryUseCase casos de uso de categorías y subcategorías del menú.
// El borrado está bloqueado mientras existan productos asociados.
type CategoryUseCase struct {
	cats     repository.CategoryRepository
	subs     repository.SubCategoryRepository
	products repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	cats repository.CategoryRepository,
	subs repository.SubCategoryRepository,
	products repository.ProductRepository,
) *CategoryUseCase {
	return &CategoryUseCase{cats: cats, subs: subs, products: products}
}

// CreateCategory crea una categoría derivando el slug del nombre.
func (uc *CategoryUseCase) CreateCategory(venueID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	base := slug.Make(in.Name)
	if base == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	cat := &entity.Category{
		ID:           uuid.New().String(),
		VenueID:      venueID,
		Slug:         base,
		Name:         in.Name,
		DisplayOrder: in.DisplayOrder,
		IsVisible:    true,
		ImageURL:     in.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.IsVisible != nil {
		cat.IsVisible = *in.IsVisible
	}

	for attempt := 1; ; attempt++ {
		err := uc.cats.Create(cat)
		if err == nil {
			return toCategoryResponse(cat), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		next := attempt + 1
		if next > maxSlugSuffix {
			return nil, domain.ErrSlugExhausted
		}
		cat.Slug = slug.WithSuffix(base, next)
	}
}

// ListCategories lista todas las categorías del local (panel admin).
func (uc *CategoryUseCase) ListCategories(venueID string) ([]dto.CategoryResponse, error) {
	list, err := uc.cats.ListByVenue(venueID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, *toCategoryResponse(cat))
	}
	return out, nil
}

// UpdateCategory actualiza nombre, orden, visibilidad o imagen. El slug no
// cambia una vez creado: ya puede estar impreso en QRs y enlaces.
func (uc *CategoryUseCase) UpdateCategory(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.cats.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		cat.Name = *in.Name
	}
	if in.DisplayOrder != nil {
		cat.DisplayOrder = *in.DisplayOrder
	}
	if in.IsVisible != nil {
		cat.IsVisible = *in.IsVisible
	}
	if in.ImageURL != nil {
		cat.ImageURL = *in.ImageURL
	}
	cat.UpdatedAt = time.Now()
	if err := uc.cats.Update(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// DeleteCategory borra una categoría. Bloqueado si tiene productos o
// subcategorías asociadas.
func (uc *CategoryUseCase) DeleteCategory(id string) error {
	cat, err := uc.cats.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	count, err := uc.products.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	subs, err := uc.subs.ListByCategory(id)
	if err != nil {
		return err
	}
	if len(subs) > 0 {
		return domain.ErrConflict
	}
	return uc.cats.Delete(id)
}

// CreateSubCategory crea una subcategoría dentro de una categoría existente.
func (uc *CategoryUseCase) CreateSubCategory(venueID string, in dto.CreateSubCategoryRequest) (*dto.SubCategoryResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	parent, err := uc.cats.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.VenueID != venueID {
		return nil, domain.ErrNotFound
	}
	base := slug.Make(in.Name)
	if base == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sub := &entity.SubCategory{
		ID:           uuid.New().String(),
		VenueID:      venueID,
		CategoryID:   in.CategoryID,
		Slug:         base,
		Name:         in.Name,
		DisplayOrder: in.DisplayOrder,
		IsVisible:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.IsVisible != nil {
		sub.IsVisible = *in.IsVisible
	}

	for attempt := 1; ; attempt++ {
		err := uc.subs.Create(sub)
		if err == nil {
			return toSubCategoryResponse(sub), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		next := attempt + 1
		if next > maxSlugSuffix {
			return nil, domain.ErrSlugExhausted
		}
		sub.Slug = slug.WithSuffix(base, next)
	}
}

// ListSubCategories lista las subcategorías de una categoría.
func (uc *CategoryUseCase) ListSubCategories(categoryID string) ([]dto.SubCategoryResponse, error) {
	list, err := uc.subs.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubCategoryResponse, 0, len(list))
	for _, sub := range list {
		out = append(out, *toSubCategoryResponse(sub))
	}
	return out, nil
}

// UpdateSubCategory actualiza nombre, orden o visibilidad. El slug no cambia.
func (uc *CategoryUseCase) UpdateSubCategory(id string, in dto.UpdateSubCategoryRequest) (*dto.SubCategoryResponse, error) {
	sub, err := uc.subs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		sub.Name = *in.Name
	}
	if in.DisplayOrder != nil {
		sub.DisplayOrder = *in.DisplayOrder
	}
	if in.IsVisible != nil {
		sub.IsVisible = *in.IsVisible
	}
	sub.UpdatedAt = time.Now()
	if err := uc.subs.Update(sub); err != nil {
		return nil, err
	}
	return toSubCategoryResponse(sub), nil
}

// DeleteSubCategory borra una subcategoría. Bloqueado si tiene productos.
func (uc *CategoryUseCase) DeleteSubCategory(id string) error {
	sub, err := uc.subs.GetByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}
	count, err := uc.products.CountBySubCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.subs.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		VenueID:      c.VenueID,
		Slug:         c.Slug,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
		IsVisible:    c.IsVisible,
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toSubCategoryResponse(s *entity.SubCategory) *dto.SubCategoryResponse {
	if s == nil {
		return nil
	}
	return &dto.SubCategoryResponse{
		ID:           s.ID,
		VenueID:      s.VenueID,
		CategoryID:   s.CategoryID,
		Slug:         s.Slug,
		Name:         s.Name,
		DisplayOrder: s.DisplayOrder,
		IsVisible:    s.IsVisible,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
