package dto

import "time"

// RegisterRequest entrada para registro: email, password y rol opcional
// (por defecto "user"; solo puede existir un "manager").
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user manager"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	Locked         bool       `json:"locked"`
	FailedAttempts int        `json:"failedAttempts"`
	MobileUID      string     `json:"mobileUid,omitempty"`
	SyncStatus     string     `json:"syncStatus"`
	SyncedAt       *time.Time `json:"syncedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CheckManagerResponse indica si ya existe una cuenta manager (la web lo
// consulta antes de ofrecer el registro de manager).
type CheckManagerResponse struct {
	Exists bool `json:"exists"`
}

// UserSyncResult resumen del barrido de espejo de usuarios hacia el almacén
// de documentos (misma filosofía de fallo parcial que los signalements).
type UserSyncResult struct {
	Success     bool        `json:"success"`
	SyncedCount int         `json:"syncedCount"`
	Eligible    int         `json:"eligible"`
	ErrorCount  int         `json:"errorCount"`
	Errors      []SyncError `json:"errors"`
}
