package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo persistencia del histórico de precios (solo append).
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador.
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create inserta un registro de cambio de precio. Corre en la misma
// transacción que el UPDATE del precio.
func (r *PriceHistoryRepo) Create(history *entity.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, product_id, old_price_cents, new_price_cents, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		history.ID, history.ProductID, history.OldPriceCents, history.NewPriceCents,
		history.Reason, history.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// ListByProduct histórico de un producto, más reciente primero.
func (r *PriceHistoryRepo) ListByProduct(productID string) ([]*entity.PriceHistory, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, old_price_cents, new_price_cents, reason, created_at
		 FROM price_history WHERE product_id = $1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistory
	for rows.Next() {
		var h entity.PriceHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.OldPriceCents, &h.NewPriceCents,
			&h.Reason, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
