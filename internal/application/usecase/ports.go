package usecase

import (
	"context"

	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

// PriceWriter escritura del precio de un producto dentro de una transacción.
type PriceWriter interface {
	UpdatePrice(id string, priceCents int64) error
}

// PriceTxRunner ejecuta el cambio de precio dentro de una transacción:
// el registro del histórico y el UPDATE del precio se confirman juntos o
// ninguno.
type PriceTxRunner interface {
	RunPriceChange(ctx context.Context, fn func(products PriceWriter, history repository.PriceHistoryRepository) error) error
}
