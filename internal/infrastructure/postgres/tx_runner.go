package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appsync "github.com/tahiry-dev/lalana-api/internal/application/sync"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// Ensure TxRunner implements sync.TxRunner.
var _ appsync.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El import
// lo usa para que el alta de un signalement y sus fotos sea atómica.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	sigRepo repository.SignalementRepository,
	photoRepo repository.PhotoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sigRepo := NewSignalementRepository(tx)
	photoRepo := NewPhotoRepository(tx)

	if err := fn(sigRepo, photoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
