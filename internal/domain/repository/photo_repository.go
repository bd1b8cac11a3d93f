package repository

import (
	"context"

	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
)

// PhotoRepository puerto de persistencia de referencias de fotos.
type PhotoRepository interface {
	Create(ctx context.Context, photo *entity.Photo) error
	ListBySignalement(ctx context.Context, signalementID int64) ([]*entity.Photo, error)
	CountBySignalement(ctx context.Context, signalementID int64) (int, error)
	Delete(ctx context.Context, signalementID, photoID int64) error
}
