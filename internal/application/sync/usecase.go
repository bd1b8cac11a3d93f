package sync

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// UseCase implementa la reconciliación entre el sistema de registro
// (PostgreSQL) y el almacén de documentos del cliente móvil.
//
// No hay changelog ni transacción que abarque ambos almacenes: cada barrido es
// una secuencia de upserts independientes por registro, idempotentes por la
// referencia cruzada idSignalement. Un fallo por registro se acumula en el
// resultado y el barrido continúa; solo un fallo de conectividad aborta.
type UseCase struct {
	sigRepo      repository.SignalementRepository
	tx           TxRunner
	store        DocumentStore
	sweepTimeout time.Duration
}

// NewUseCase construye el caso de uso de sincronización. sweepTimeout acota la
// duración de un barrido completo; cero desactiva el límite.
func NewUseCase(sigRepo repository.SignalementRepository, tx TxRunner, store DocumentStore, sweepTimeout time.Duration) *UseCase {
	return &UseCase{sigRepo: sigRepo, tx: tx, store: store, sweepTimeout: sweepTimeout}
}

// ExportAll empuja todos los registros relacionales al almacén de documentos
// (barrido completo, sin cursor). Documentos existentes se actualizan por
// merge; los nuevos se crean con la referencia cruzada estampada.
func (uc *UseCase) ExportAll(ctx context.Context) (*dto.ExportResult, error) {
	ctx, cancel := uc.withSweepTimeout(ctx)
	defer cancel()

	signalements, err := uc.sigRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar signalements: %w", err)
	}

	res := &dto.ExportResult{
		EligibleCount: len(signalements),
		Errors:        []dto.SyncError{},
	}

	for _, s := range signalements {
		if ctx.Err() != nil {
			res.Errors = append(res.Errors, dto.SyncError{Message: "barrido interrumpido: " + ctx.Err().Error()})
			break
		}
		update := ToDocument(s)
		if err := uc.store.UpsertByCrossRef(ctx, s.ID, update); err != nil {
			log.Warn().Err(err).Int64("id_signalement", s.ID).Msg("error exportando signalement")
			res.Errors = append(res.Errors, dto.SyncError{
				ID:      strconv.FormatInt(s.ID, 10),
				Message: err.Error(),
			})
			continue
		}
		res.ExportedCount++
	}

	res.Success = len(res.Errors) == 0
	res.Message = fmt.Sprintf("%d de %d signalements exportados", res.ExportedCount, res.EligibleCount)
	log.Info().
		Int("exportados", res.ExportedCount).
		Int("elegibles", res.EligibleCount).
		Int("errores", len(res.Errors)).
		Msg("export hacia almacén de documentos terminado")
	return res, nil
}

// ImportUnimported detecta los documentos sin contraparte relacional (creados
// por el móvil y nunca promovidos) y crea su registro canónico. Tras cada alta
// se escribe el nuevo ID canónico sobre el documento origen: esa marca es lo
// que hace idempotente el barrido siguiente.
func (uc *UseCase) ImportUnimported(ctx context.Context) (*dto.ImportResult, error) {
	ctx, cancel := uc.withSweepTimeout(ctx)
	defer cancel()

	docs, err := uc.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	ids, err := uc.sigRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar IDs canónicos: %w", err)
	}
	existing := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}

	// No importado = sin referencia cruzada, o con una que no resuelve a
	// ningún registro relacional existente.
	var unimported []Document
	for _, doc := range docs {
		ref := parseCrossRef(doc.Data[keyCrossRef])
		if ref == nil {
			unimported = append(unimported, doc)
			continue
		}
		if _, ok := existing[*ref]; !ok {
			unimported = append(unimported, doc)
		}
	}

	res := &dto.ImportResult{
		TotalUnimported: len(unimported),
		Errors:          []dto.SyncError{},
	}

	for _, doc := range unimported {
		if ctx.Err() != nil {
			res.ErrorCount++
			res.Errors = append(res.Errors, dto.SyncError{Message: "barrido interrumpido: " + ctx.Err().Error()})
			break
		}
		newID, err := uc.importOne(ctx, doc)
		if err != nil {
			log.Warn().Err(err).Str("doc_id", doc.DocID).Msg("error importando documento")
			res.ErrorCount++
			res.Errors = append(res.Errors, dto.SyncError{ID: doc.DocID, Message: err.Error()})
			continue
		}
		if err := uc.store.SetCrossRef(ctx, doc.DocID, newID); err != nil {
			// El registro quedó promovido pero el documento sin marca; el
			// siguiente barrido lo verá de nuevo como no importado.
			log.Warn().Err(err).Str("doc_id", doc.DocID).Int64("id_signalement", newID).
				Msg("signalement promovido pero sin marca en el documento")
			res.ErrorCount++
			res.Errors = append(res.Errors, dto.SyncError{ID: doc.DocID, Message: "marcado post-import: " + err.Error()})
			continue
		}
		res.ImportedCount++
	}

	res.Success = res.ErrorCount == 0
	log.Info().
		Int("importados", res.ImportedCount).
		Int("errores", res.ErrorCount).
		Int("total_no_importados", res.TotalUnimported).
		Msg("import desde almacén de documentos terminado")
	return res, nil
}

// importOne normaliza un documento, valida su candidato y lo inserta junto con
// sus fotos en una sola transacción. Devuelve el ID canónico asignado.
func (uc *UseCase) importOne(ctx context.Context, doc Document) (int64, error) {
	c := FromDocument(doc)
	if c.Incomplete {
		return 0, fmt.Errorf("documento incompleto: %s", strings.Join(c.Problems, "; "))
	}

	s := c.Signalement
	s.ID = 0 // el ID canónico lo asigna PostgreSQL
	if s.DateNouveau == nil {
		t := s.DateSignalement
		s.DateNouveau = &t
	}

	var newID int64
	err := uc.tx.Run(ctx, func(sigRepo repository.SignalementRepository, photoRepo repository.PhotoRepository) error {
		if err := sigRepo.Create(ctx, &s); err != nil {
			return err
		}
		for _, url := range c.Photos {
			photo := &entity.Photo{
				SignalementID: s.ID,
				URL:           url,
				DateAjout:     time.Now(),
			}
			if err := photoRepo.Create(ctx, photo); err != nil {
				return err
			}
		}
		newID = s.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// PullAll devuelve todos los documentos de la colección en su forma
// normalizada (contrato de lectura del móvil).
func (uc *UseCase) PullAll(ctx context.Context) ([]*dto.DocumentSignalement, error) {
	docs, err := uc.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	out := make([]*dto.DocumentSignalement, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Normalize(doc))
	}
	return out, nil
}

func (uc *UseCase) withSweepTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.sweepTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.sweepTimeout)
}
