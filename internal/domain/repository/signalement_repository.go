package repository

import (
	"context"

	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
)

// SignalementRepository puerto de persistencia del sistema de registro
// (PostgreSQL). Los barridos de sincronización reciben el context del sweep
// para respetar su timeout.
type SignalementRepository interface {
	// Create inserta el signalement y asigna el ID canónico sobre la entidad.
	Create(ctx context.Context, s *entity.Signalement) error
	GetByID(ctx context.Context, id int64) (*entity.Signalement, error)
	List(ctx context.Context) ([]*entity.Signalement, error)
	// ListIDs devuelve solo los IDs canónicos existentes (clasificación de
	// documentos no importados).
	ListIDs(ctx context.Context) ([]int64, error)
	Update(ctx context.Context, s *entity.Signalement) error
	Delete(ctx context.Context, id int64) error
}
