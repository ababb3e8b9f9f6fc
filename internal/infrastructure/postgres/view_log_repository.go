package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

var _ repository.ViewLogRepository = (*ViewLogRepo)(nil)

// ViewLogRepo persistencia de los registros de acceso al menú público.
type ViewLogRepo struct {
	q Querier
}

// NewViewLogRepository construye el adaptador.
func NewViewLogRepository(q Querier) *ViewLogRepo {
	return &ViewLogRepo{q: q}
}

// Create inserta un registro de vista. Se llama fire-and-forget desde el menú.
func (r *ViewLogRepo) Create(log *entity.ViewLog) error {
	query := `
		INSERT INTO view_logs (id, venue_id, table_id, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.VenueID, log.TableID, log.UserAgent, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert view log: %w", err)
	}
	return nil
}
