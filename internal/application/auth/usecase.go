package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
	"github.com/tahiry-dev/lalana-api/pkg/jwt"
)

// Config parámetros de autenticación.
type Config struct {
	JWTSecret        string
	JWTIssuer        string
	JWTExpireMinutes int
	MaxLoginAttempts int // intentos fallidos antes de bloquear la cuenta
}

// UseCase registro, login con bloqueo por intentos y espejo de cuentas
// hacia el almacén de documentos.
type UseCase struct {
	users  repository.UserRepository
	mirror repository.UserMirror
	cfg    Config
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, mirror repository.UserMirror, cfg Config) *UseCase {
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = 3
	}
	return &UseCase{users: users, mirror: mirror, cfg: cfg}
}

// Register crea una cuenta. El rol por defecto es "user"; solo puede existir
// una cuenta "manager" en todo el sistema. Las cuentas "user" se espejan al
// almacén de documentos de forma best-effort.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleManager {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, req.Role)
	}

	if role == entity.RoleManager {
		exists, err := uc.users.ManagerExists(ctx)
		if err != nil {
			return nil, fmt.Errorf("verificando manager existente: %w", err)
		}
		if exists {
			return nil, domain.ErrManagerAlreadyExists
		}
	}

	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("verificando email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generando hash de contraseña: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		SyncStatus:   entity.SyncStatusNotSynced,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.EligibleForMirror() && uc.mirror != nil {
		if err := uc.mirrorUser(ctx, user); err != nil {
			// El registro local ya está hecho; el barrido manual reintentará.
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Espejo de cuenta fallido, queda NOT_SYNCED")
		}
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// Login autentica y devuelve un JWT. Tres fallos consecutivos bloquean la
// cuenta hasta que un administrador la desbloquee.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Locked {
		return nil, domain.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		user.FailedAttempts++
		if user.FailedAttempts >= uc.cfg.MaxLoginAttempts {
			user.Locked = true
		}
		user.UpdatedAt = time.Now()
		if uerr := uc.users.Update(ctx, user); uerr != nil {
			log.Error().Err(uerr).Str("user_id", user.ID).Msg("No se pudo registrar el intento fallido")
		}
		if user.Locked {
			return nil, domain.ErrAccountLocked
		}
		return nil, domain.ErrUnauthorized
	}

	// Login correcto: reiniciar el contador si venía de fallos.
	if user.FailedAttempts != 0 {
		user.FailedAttempts = 0
		user.UpdatedAt = time.Now()
		if uerr := uc.users.Update(ctx, user); uerr != nil {
			log.Error().Err(uerr).Str("user_id", user.ID).Msg("No se pudo reiniciar el contador de intentos")
		}
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.Role, uc.cfg.JWTIssuer, uc.cfg.JWTExpireMinutes)
	if err != nil {
		return nil, fmt.Errorf("generando token: %w", err)
	}

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// CheckManagerExists indica si ya hay una cuenta manager registrada.
func (uc *UseCase) CheckManagerExists(ctx context.Context) (bool, error) {
	return uc.users.ManagerExists(ctx)
}

// mirrorUser publica la cuenta en el almacén de documentos y marca SYNCED.
func (uc *UseCase) mirrorUser(ctx context.Context, user *entity.User) error {
	data := map[string]interface{}{
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := uc.mirror.Save(ctx, user.ID, data); err != nil {
		return err
	}
	now := time.Now()
	user.MobileUID = user.ID
	user.SyncStatus = entity.SyncStatusSynced
	user.SyncedAt = &now
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return fmt.Errorf("marcando cuenta como sincronizada: %w", err)
	}
	return nil
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
