package repository

import "context"

// UserMirror publica cuentas de rol "user" en el almacén de documentos para
// que el cliente móvil pueda autenticarse. El espejo es best-effort: un fallo
// deja la cuenta en NOT_SYNCED y el barrido manual la reintenta.
type UserMirror interface {
	// Save inserta o actualiza el documento identificado por uid.
	Save(ctx context.Context, uid string, data map[string]interface{}) error
}
