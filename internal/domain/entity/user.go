package entity

import "time"

// Roles válidos para User. Solo puede existir una cuenta manager.
const (
	RoleUser    = "user"
	RoleManager = "manager"
)

// Estados de sincronización del espejo móvil de un usuario.
const (
	SyncStatusNotSynced = "NOT_SYNCED"
	SyncStatusSynced    = "SYNCED"
)

// User representa una cuenta del sistema. Las cuentas con rol "user" se
// espejan en el almacén de documentos para que el cliente móvil las resuelva.
type User struct {
	ID             string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Role           string // user, manager
	Locked         bool   // true tras superar el máximo de intentos fallidos
	FailedAttempts int
	MobileUID      string // identidad espejada en el almacén de documentos; vacío si no hay espejo
	SyncStatus     string // NOT_SYNCED, SYNCED
	SyncedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsMirrored indica si el usuario ya tiene identidad espejada en el almacén de documentos.
func (u *User) IsMirrored() bool {
	return u.MobileUID != "" && u.SyncStatus == SyncStatusSynced
}

// EligibleForMirror solo las cuentas de rol "user" se espejan (el manager opera solo en web).
func (u *User) EligibleForMirror() bool {
	return u.Role == RoleUser
}
