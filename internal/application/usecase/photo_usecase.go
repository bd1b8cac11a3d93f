package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// PhotoUseCase gestión de referencias de fotos de un signalement. El binario
// vive en un blob store externo; aquí solo se persisten URLs.
type PhotoUseCase struct {
	photos repository.PhotoRepository
	sigs   repository.SignalementRepository
}

// NewPhotoUseCase construye el caso de uso de fotos.
func NewPhotoUseCase(photos repository.PhotoRepository, sigs repository.SignalementRepository) *PhotoUseCase {
	return &PhotoUseCase{photos: photos, sigs: sigs}
}

// AddByURL asocia una URL de foto al signalement.
func (uc *PhotoUseCase) AddByURL(ctx context.Context, signalementID int64, rawURL string) (*dto.PhotoResponse, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: url de foto inválida", domain.ErrInvalidInput)
	}

	s, err := uc.sigs.GetByID(ctx, signalementID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}

	photo := &entity.Photo{
		SignalementID: signalementID,
		URL:           rawURL,
		DateAjout:     time.Now(),
	}
	if err := uc.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	resp := toPhotoResponse(photo)
	return &resp, nil
}

// ListBySignalement devuelve las fotos del signalement.
func (uc *PhotoUseCase) ListBySignalement(ctx context.Context, signalementID int64) ([]dto.PhotoResponse, error) {
	photos, err := uc.photos.ListBySignalement(ctx, signalementID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoResponse(p))
	}
	return out, nil
}

// CountBySignalement devuelve el número de fotos del signalement.
func (uc *PhotoUseCase) CountBySignalement(ctx context.Context, signalementID int64) (int, error) {
	return uc.photos.CountBySignalement(ctx, signalementID)
}

// Delete elimina una referencia de foto de un signalement.
func (uc *PhotoUseCase) Delete(ctx context.Context, signalementID, photoID int64) error {
	return uc.photos.Delete(ctx, signalementID, photoID)
}

func toPhotoResponse(p *entity.Photo) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:            p.ID,
		SignalementID: p.SignalementID,
		URL:           p.URL,
		DateAjout:     p.DateAjout.UTC().Format(time.RFC3339),
	}
}
