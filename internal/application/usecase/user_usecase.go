package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// UserUseCase administración de cuentas: listado, bloqueo manual y barrido de
// espejo hacia el almacén de documentos.
type UserUseCase struct {
	users  repository.UserRepository
	mirror repository.UserMirror
}

// NewUserUseCase construye el caso de uso de administración de usuarios.
func NewUserUseCase(users repository.UserRepository, mirror repository.UserMirror) *UserUseCase {
	return &UserUseCase{users: users, mirror: mirror}
}

// List devuelve todas las cuentas.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// GetByID recupera una cuenta.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// Lock bloquea una cuenta manualmente.
func (uc *UserUseCase) Lock(ctx context.Context, id string) (*dto.UserResponse, error) {
	return uc.setLocked(ctx, id, true)
}

// Unlock desbloquea una cuenta y reinicia su contador de intentos fallidos.
func (uc *UserUseCase) Unlock(ctx context.Context, id string) (*dto.UserResponse, error) {
	return uc.setLocked(ctx, id, false)
}

func (uc *UserUseCase) setLocked(ctx context.Context, id string, locked bool) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Locked = locked
	if !locked {
		u.FailedAttempts = 0
	}
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// SyncEligible espeja hacia el almacén de documentos todas las cuentas de rol
// "user" que sigan en NOT_SYNCED. Cada cuenta se procesa de forma aislada:
// un fallo no detiene el barrido.
func (uc *UserUseCase) SyncEligible(ctx context.Context) (*dto.UserSyncResult, error) {
	users, err := uc.users.ListByRole(ctx, entity.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("listando cuentas user: %w", err)
	}

	result := &dto.UserSyncResult{Errors: []dto.SyncError{}}
	for _, u := range users {
		if u.IsMirrored() {
			continue
		}
		result.Eligible++

		data := map[string]interface{}{
			"email":     u.Email,
			"role":      u.Role,
			"createdAt": u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := uc.mirror.Save(ctx, u.ID, data); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, dto.SyncError{ID: u.ID, Message: err.Error()})
			log.Warn().Err(err).Str("user_id", u.ID).Msg("Espejo de cuenta fallido durante el barrido")
			continue
		}

		now := time.Now()
		u.MobileUID = u.ID
		u.SyncStatus = entity.SyncStatusSynced
		u.SyncedAt = &now
		u.UpdatedAt = now
		if err := uc.users.Update(ctx, u); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, dto.SyncError{ID: u.ID, Message: fmt.Sprintf("marcando SYNCED: %v", err)})
			continue
		}
		result.SyncedCount++
	}

	result.Success = result.ErrorCount == 0
	log.Info().
		Int("synced", result.SyncedCount).
		Int("errors", result.ErrorCount).
		Msg("Barrido de espejo de usuarios completado")
	return result, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		Locked:         u.Locked,
		FailedAttempts: u.FailedAttempts,
		MobileUID:      u.MobileUID,
		SyncStatus:     u.SyncStatus,
		SyncedAt:       u.SyncedAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
