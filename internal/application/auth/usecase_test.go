package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahiry-dev/lalana-api/internal/application/auth"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ManagerExists(_ context.Context) (bool, error) {
	for _, u := range r.byID {
		if u.Role == entity.RoleManager {
			return true, nil
		}
	}
	return false, nil
}

type fakeMirror struct {
	saved   map[string]map[string]interface{}
	failAll bool
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{saved: map[string]map[string]interface{}{}}
}

func (m *fakeMirror) Save(_ context.Context, uid string, data map[string]interface{}) error {
	if m.failAll {
		return errors.New("almacén de documentos inaccesible")
	}
	m.saved[uid] = data
	return nil
}

func newAuthUseCase(repo *fakeUserRepo, mirror *fakeMirror) *auth.UseCase {
	return auth.NewUseCase(repo, mirror, auth.Config{
		JWTSecret:        "test-secret",
		JWTIssuer:        "lalana-test",
		JWTExpireMinutes: 60,
		MaxLoginAttempts: 3,
	})
}

func registerUser(t *testing.T, uc *auth.UseCase, email, password, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: email, Password: password, Role: role,
	})
	require.NoError(t, err)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RolPorDefectoEsUser(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())
	u := registerUser(t, uc, "rakoto@lalana.mg", "password123", "")

	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)
}

func TestRegister_UsuarioSeEspejaYQuedaSynced(t *testing.T) {
	repo := newFakeUserRepo()
	mirror := newFakeMirror()
	uc := newAuthUseCase(repo, mirror)

	u := registerUser(t, uc, "rakoto@lalana.mg", "password123", entity.RoleUser)

	assert.Contains(t, mirror.saved, u.ID, "la cuenta user debe espejarse")
	stored, _ := repo.GetByID(context.Background(), u.ID)
	assert.Equal(t, entity.SyncStatusSynced, stored.SyncStatus)
	assert.Equal(t, u.ID, stored.MobileUID)
	assert.NotNil(t, stored.SyncedAt)
}

func TestRegister_EspejoFallidoNoRompeElRegistro(t *testing.T) {
	repo := newFakeUserRepo()
	mirror := newFakeMirror()
	mirror.failAll = true
	uc := newAuthUseCase(repo, mirror)

	u := registerUser(t, uc, "rakoto@lalana.mg", "password123", entity.RoleUser)

	stored, _ := repo.GetByID(context.Background(), u.ID)
	require.NotNil(t, stored, "el registro local debe completarse aunque el espejo falle")
	assert.Equal(t, entity.SyncStatusNotSynced, stored.SyncStatus,
		"la cuenta queda pendiente para el barrido manual")
}

func TestRegister_ManagerNoSeEspeja(t *testing.T) {
	mirror := newFakeMirror()
	uc := newAuthUseCase(newFakeUserRepo(), mirror)

	u := registerUser(t, uc, "manager@lalana.mg", "password123", entity.RoleManager)

	assert.NotContains(t, mirror.saved, u.ID, "el manager opera solo en web, sin espejo")
}

func TestRegister_SoloUnManager(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())
	registerUser(t, uc, "manager@lalana.mg", "password123", entity.RoleManager)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "otro@lalana.mg", Password: "password123", Role: entity.RoleManager,
	})
	assert.ErrorIs(t, err, domain.ErrManagerAlreadyExists)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())
	registerUser(t, uc, "rakoto@lalana.mg", "password123", "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "RAKOTO@lalana.mg", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"el email debe compararse sin distinguir mayúsculas")
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "rakoto@lalana.mg", Password: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_PasswordQuedaHasheada(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo, newFakeMirror())
	u := registerUser(t, uc, "rakoto@lalana.mg", "password123", "")

	stored, _ := repo.GetByID(context.Background(), u.ID)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login — bloqueo por intentos
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Correcto_DevuelveToken(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())
	registerUser(t, uc, "rakoto@lalana.mg", "password123", "")

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "rakoto@lalana.mg", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "rakoto@lalana.mg", out.User.Email)
}

func TestLogin_TercerFalloBloqueaLaCuenta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo, newFakeMirror())
	u := registerUser(t, uc, "rakoto@lalana.mg", "password123", "")

	// Dos primeros fallos: credenciales inválidas, cuenta sigue abierta.
	for i := 0; i < 2; i++ {
		_, err := uc.Login(context.Background(), dto.LoginRequest{
			Email: "rakoto@lalana.mg", Password: "incorrecta",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}

	// Tercer fallo: la cuenta se bloquea.
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "rakoto@lalana.mg", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)

	stored, _ := repo.GetByID(context.Background(), u.ID)
	assert.True(t, stored.Locked)
	assert.Equal(t, 3, stored.FailedAttempts)

	// Incluso con la contraseña correcta, la cuenta bloqueada no entra.
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "rakoto@lalana.mg", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
}

func TestLogin_ExitoReiniciaContadorDeIntentos(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo, newFakeMirror())
	u := registerUser(t, uc, "rakoto@lalana.mg", "password123", "")

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "rakoto@lalana.mg", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "rakoto@lalana.mg", Password: "password123",
	})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), u.ID)
	assert.Zero(t, stored.FailedAttempts, "un login correcto debe reiniciar el contador")
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@lalana.mg", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckManagerExists
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckManagerExists(t *testing.T) {
	uc := newAuthUseCase(newFakeUserRepo(), newFakeMirror())

	exists, err := uc.CheckManagerExists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)

	registerUser(t, uc, "manager@lalana.mg", "password123", entity.RoleManager)

	exists, err = uc.CheckManagerExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}
