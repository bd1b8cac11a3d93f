package postgres

import (
	"context"
	"fmt"

	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

var _ repository.PhotoRepository = (*PhotoRepo)(nil)

// PhotoRepo implementación del puerto PhotoRepository sobre PostgreSQL (usable con pool o tx).
type PhotoRepo struct {
	q Querier
}

// NewPhotoRepository construye el adaptador de persistencia para fotos. Pasar pool o tx (Querier).
func NewPhotoRepository(q Querier) *PhotoRepo {
	return &PhotoRepo{q: q}
}

// Create inserta la referencia de foto y asigna su ID sobre la entidad.
func (r *PhotoRepo) Create(ctx context.Context, photo *entity.Photo) error {
	query := `
		INSERT INTO photo_signalement (id_signalement, url_photo, date_ajout)
		VALUES ($1, $2, $3)
		RETURNING id_photo`
	err := r.q.QueryRow(ctx, query, photo.SignalementID, photo.URL, photo.DateAjout).Scan(&photo.ID)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

// ListBySignalement devuelve las fotos de un signalement.
func (r *PhotoRepo) ListBySignalement(ctx context.Context, signalementID int64) ([]*entity.Photo, error) {
	query := `
		SELECT id_photo, id_signalement, url_photo, date_ajout
		FROM photo_signalement WHERE id_signalement = $1 ORDER BY date_ajout`
	rows, err := r.q.Query(ctx, query, signalementID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Photo
	for rows.Next() {
		var p entity.Photo
		if err := rows.Scan(&p.ID, &p.SignalementID, &p.URL, &p.DateAjout); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountBySignalement cuenta las fotos de un signalement.
func (r *PhotoRepo) CountBySignalement(ctx context.Context, signalementID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM photo_signalement WHERE id_signalement = $1`, signalementID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// Delete elimina una foto de un signalement.
func (r *PhotoRepo) Delete(ctx context.Context, signalementID, photoID int64) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM photo_signalement WHERE id_signalement = $1 AND id_photo = $2`,
		signalementID, photoID,
	)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
