package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

var _ repository.SignalementRepository = (*SignalementRepo)(nil)

const signalementColumns = `
	id_signalement, titre, description, latitude, longitude, date_signalement,
	COALESCE(statut, ''), COALESCE(surface_m2, 0), COALESCE(budget, 0),
	COALESCE(entreprise, ''), COALESCE(niveau, 1), id_user,
	date_nouveau, date_en_cours, date_termine`

// SignalementRepo implementación del puerto SignalementRepository sobre PostgreSQL (usable con pool o tx).
type SignalementRepo struct {
	q Querier
}

// NewSignalementRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewSignalementRepository(q Querier) *SignalementRepo {
	return &SignalementRepo{q: q}
}

// Create inserta el signalement y asigna el ID canónico (BIGSERIAL) sobre la entidad.
func (r *SignalementRepo) Create(ctx context.Context, s *entity.Signalement) error {
	query := `
		INSERT INTO signalement (titre, description, latitude, longitude, date_signalement,
			statut, surface_m2, budget, entreprise, niveau, id_user,
			date_nouveau, date_en_cours, date_termine)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id_signalement`
	err := r.q.QueryRow(ctx, query,
		s.Titre, s.Description, s.Latitude, s.Longitude, s.DateSignalement,
		s.Statut, s.SurfaceM2, s.Budget, s.Entreprise, s.Niveau, s.UserID,
		s.DateNouveau, s.DateEnCours, s.DateTermine,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert signalement: %w", err)
	}
	return nil
}

// GetByID obtiene un signalement por su ID canónico. Devuelve nil si no existe.
func (r *SignalementRepo) GetByID(ctx context.Context, id int64) (*entity.Signalement, error) {
	query := `SELECT ` + signalementColumns + ` FROM signalement WHERE id_signalement = $1`
	var s entity.Signalement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Titre, &s.Description, &s.Latitude, &s.Longitude, &s.DateSignalement,
		&s.Statut, &s.SurfaceM2, &s.Budget, &s.Entreprise, &s.Niveau, &s.UserID,
		&s.DateNouveau, &s.DateEnCours, &s.DateTermine,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get signalement by id: %w", err)
	}
	return &s, nil
}

// List devuelve todos los signalements (los barridos de sincronización son
// escaneos completos, sin cursor).
func (r *SignalementRepo) List(ctx context.Context) ([]*entity.Signalement, error) {
	query := `SELECT ` + signalementColumns + ` FROM signalement ORDER BY id_signalement`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list signalements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Signalement
	for rows.Next() {
		var s entity.Signalement
		if err := rows.Scan(
			&s.ID, &s.Titre, &s.Description, &s.Latitude, &s.Longitude, &s.DateSignalement,
			&s.Statut, &s.SurfaceM2, &s.Budget, &s.Entreprise, &s.Niveau, &s.UserID,
			&s.DateNouveau, &s.DateEnCours, &s.DateTermine,
		); err != nil {
			return nil, fmt.Errorf("scan signalement: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListIDs devuelve solo los IDs canónicos existentes.
func (r *SignalementRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id_signalement FROM signalement`)
	if err != nil {
		return nil, fmt.Errorf("list signalement ids: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan signalement id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update persiste todos los campos mutables del signalement.
func (r *SignalementRepo) Update(ctx context.Context, s *entity.Signalement) error {
	query := `
		UPDATE signalement SET titre = $2, description = $3, latitude = $4, longitude = $5,
			date_signalement = $6, statut = $7, surface_m2 = $8, budget = $9,
			entreprise = $10, niveau = $11, id_user = $12,
			date_nouveau = $13, date_en_cours = $14, date_termine = $15
		WHERE id_signalement = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Titre, s.Description, s.Latitude, s.Longitude, s.DateSignalement,
		s.Statut, s.SurfaceM2, s.Budget, s.Entreprise, s.Niveau, s.UserID,
		s.DateNouveau, s.DateEnCours, s.DateTermine,
	)
	if err != nil {
		return fmt.Errorf("update signalement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un signalement por ID.
func (r *SignalementRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM signalement WHERE id_signalement = $1`, id)
	if err != nil {
		return fmt.Errorf("delete signalement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
