package sync

import (
	"context"

	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// Document es un documento crudo de la colección signalements: el ID opaco del
// almacén más el payload tal cual se guardó (el móvil y el export escriben
// variantes de nombres distintas, la normalización ocurre en el mapper).
type Document struct {
	DocID string
	Data  map[string]interface{}
}

// DocumentUpdate separa los campos de un upsert en dos grupos: Set se aplica
// siempre; SetOnInsert solo cuando el documento no existía. Así el merge de un
// export no pisa campos que solo el móvil escribe (fotos, statut inicial).
type DocumentUpdate struct {
	Set         map[string]interface{}
	SetOnInsert map[string]interface{}
}

// DocumentStore puerto del almacén de documentos para la colección de
// signalements. Capacidad opaca: guardar documento, listar colección,
// upsert condicional por referencia cruzada.
type DocumentStore interface {
	ListAll(ctx context.Context) ([]Document, error)
	// UpsertByCrossRef hace update-merge del documento cuyo campo cruzado
	// idSignalement coincide, o lo crea si no existe. Idempotente por clave.
	UpsertByCrossRef(ctx context.Context, crossRef int64, update DocumentUpdate) error
	// SetCrossRef estampa el ID canónico sobre un documento ya existente
	// (promoción tras el import, evita re-importarlo en el siguiente barrido).
	SetCrossRef(ctx context.Context, docID string, crossRef int64) error
}

// TxRunner ejecuta el alta de un signalement importado junto con sus fotos en
// una sola transacción relacional.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sigRepo repository.SignalementRepository,
		photoRepo repository.PhotoRepository,
	) error) error
}
