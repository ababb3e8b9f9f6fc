package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
	"github.com/jhoicas/qrmenu-api/internal/infrastructure/storage"
	"github.com/jhoicas/qrmenu-api/pkg/format"
	"github.com/jhoicas/qrmenu-api/pkg/slug"
)

// Límites de la imagen de producto.
const (
	MaxImageBytes = 2 << 20 // 2 MiB
	maxSlugSuffix = 10
)

var allowedImageMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProductUseCase casos de uso del producto para el panel admin. El precio
// solo cambia vía ChangePrice, que escribe el histórico en la misma
// transacción.
type ProductUseCase struct {
	repo    repository.ProductRepository
	history repository.PriceHistoryRepository
	tx      PriceTxRunner
	store   storage.Adapter
	log     zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	history repository.PriceHistoryRepository,
	tx PriceTxRunner,
	store storage.Adapter,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, history: history, tx: tx, store: store, log: log}
}

// Create crea un producto derivando el slug del nombre. Ante colisión de
// slug reintenta con sufijos -2..-10 y si todos chocan devuelve conflicto.
func (uc *ProductUseCase) Create(venueID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.PriceCents < 0 {
		return nil, domain.ErrInvalidInput
	}

	base := slug.Make(in.Name)
	if base == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		VenueID:       venueID,
		Name:          in.Name,
		Slug:          base,
		Category:      in.Category,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		Description:   in.Description,
		PriceCents:    in.PriceCents,
		ImageURL:      in.ImageURL,
		IsActive:      true,
		IsInStock:     true,
		DietTags:      in.DietTags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsInStock != nil {
		product.IsInStock = *in.IsInStock
	}

	for attempt := 1; ; attempt++ {
		err := uc.repo.Create(product)
		if err == nil {
			return toProductResponse(product), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		next := attempt + 1
		if next > maxSlugSuffix {
			return nil, domain.ErrSlugExhausted
		}
		product.Slug = slug.WithSuffix(base, next)
	}
}

// GetByID obtiene un producto por ID (incluye borrados lógicos).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos para el panel admin con filtros opcionales.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListAdmin(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update actualiza campos del producto. El precio no se toca aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted() {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.SubCategoryID != nil {
		product.SubCategoryID = in.SubCategoryID
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsInStock != nil {
		product.IsInStock = *in.IsInStock
	}
	if in.DietTags != nil {
		product.DietTags = in.DietTags
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ChangePrice cambia el precio y registra el histórico en la misma
// transacción. Un precio idéntico al vigente es conflicto, no un no-op.
func (uc *ProductUseCase) ChangePrice(ctx context.Context, id string, in dto.ChangePriceRequest) (*dto.ProductResponse, error) {
	if in.PriceCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted() {
		return nil, nil
	}
	if product.PriceCents == in.PriceCents {
		return nil, domain.ErrPriceUnchanged
	}

	record := &entity.PriceHistory{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		OldPriceCents: product.PriceCents,
		NewPriceCents: in.PriceCents,
		Reason:        in.Reason,
		CreatedAt:     time.Now(),
	}
	err = uc.tx.RunPriceChange(ctx, func(products PriceWriter, history repository.PriceHistoryRepository) error {
		if err := history.Create(record); err != nil {
			return err
		}
		return products.UpdatePrice(product.ID, in.PriceCents)
	})
	if err != nil {
		return nil, err
	}

	product.PriceCents = in.PriceCents
	product.UpdatedAt = record.CreatedAt
	return toProductResponse(product), nil
}

// PriceHistory lista el histórico de precios, más reciente primero.
func (uc *ProductUseCase) PriceHistory(id string) ([]dto.PriceHistoryResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	list, err := uc.history.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.PriceHistoryResponse{
			ID:            h.ID,
			ProductID:     h.ProductID,
			OldPriceCents: h.OldPriceCents,
			NewPriceCents: h.NewPriceCents,
			Reason:        h.Reason,
			CreatedAt:     h.CreatedAt,
		})
	}
	return out, nil
}

// SetImage valida, sube y asocia la imagen del producto. Si el UPDATE de la
// URL falla después de subir, borra el objeto recién escrito.
func (uc *ProductUseCase) SetImage(ctx context.Context, id string, file storage.File) (*dto.ProductResponse, error) {
	if uc.store == nil {
		return nil, domain.ErrStorageDisabled
	}
	if len(file.Data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(file.Data) > MaxImageBytes {
		return nil, domain.ErrFileTooLarge
	}
	if !allowedImageMIME[file.ContentType] {
		return nil, domain.ErrInvalidMIME
	}

	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted() {
		return nil, nil
	}

	stored, err := uc.store.Save(ctx, file, "products")
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateImageURL(product.ID, stored.URL); err != nil {
		if stored.Remove != nil {
			if rmErr := stored.Remove(ctx); rmErr != nil {
				uc.log.Warn().Err(rmErr).Str("url", stored.URL).Msg("no se pudo compensar la imagen subida")
			}
		}
		return nil, err
	}

	// La imagen anterior se borra best-effort una vez confirmado el reemplazo.
	if old := product.ImageURL; old != "" && old != stored.URL {
		if rmErr := uc.store.Remove(ctx, old); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("url", old).Msg("no se pudo borrar la imagen anterior")
		}
	}

	product.ImageURL = stored.URL
	product.UpdatedAt = time.Now()
	return toProductResponse(product), nil
}

// Delete marca el producto como borrado lógico. Idempotente.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.SoftDelete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		VenueID:       p.VenueID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		Price:         format.Price(p.PriceCents),
		Category:      p.Category,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		IsInStock:     p.IsInStock,
		DietTags:      p.DietTags,
		DeletedAt:     p.DeletedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
