package repository

import (
	"context"

	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	// ManagerExists indica si ya hay una cuenta con rol manager (regla de
	// unicidad aplicada en el registro).
	ManagerExists(ctx context.Context) (bool, error)
}
