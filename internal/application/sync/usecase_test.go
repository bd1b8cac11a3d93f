package sync_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/tahiry-dev/lalana-api/internal/application/sync"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSigRepo struct {
	nextID int64
	items  map[int64]*entity.Signalement
	failOn func(s *entity.Signalement) error
}

func newFakeSigRepo() *fakeSigRepo {
	return &fakeSigRepo{nextID: 1, items: map[int64]*entity.Signalement{}}
}

func (r *fakeSigRepo) Create(_ context.Context, s *entity.Signalement) error {
	if r.failOn != nil {
		if err := r.failOn(s); err != nil {
			return err
		}
	}
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSigRepo) GetByID(_ context.Context, id int64) (*entity.Signalement, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSigRepo) List(_ context.Context) ([]*entity.Signalement, error) {
	out := make([]*entity.Signalement, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if s, ok := r.items[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSigRepo) ListIDs(_ context.Context) ([]int64, error) {
	out := make([]int64, 0, len(r.items))
	for id := range r.items {
		out = append(out, id)
	}
	return out, nil
}

func (r *fakeSigRepo) Update(_ context.Context, s *entity.Signalement) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSigRepo) Delete(_ context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

type fakePhotoRepo struct {
	photos []*entity.Photo
}

func (r *fakePhotoRepo) Create(_ context.Context, p *entity.Photo) error {
	p.ID = int64(len(r.photos) + 1)
	r.photos = append(r.photos, p)
	return nil
}

func (r *fakePhotoRepo) ListBySignalement(_ context.Context, sigID int64) ([]*entity.Photo, error) {
	var out []*entity.Photo
	for _, p := range r.photos {
		if p.SignalementID == sigID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) CountBySignalement(ctx context.Context, sigID int64) (int, error) {
	list, _ := r.ListBySignalement(ctx, sigID)
	return len(list), nil
}

func (r *fakePhotoRepo) Delete(_ context.Context, _, _ int64) error { return nil }

// fakeTxRunner ejecuta el callback sin transacción real.
type fakeTxRunner struct {
	sigRepo   *fakeSigRepo
	photoRepo *fakePhotoRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	sigRepo repository.SignalementRepository,
	photoRepo repository.PhotoRepository,
) error) error {
	return fn(r.sigRepo, r.photoRepo)
}

// fakeStore simula la colección de documentos.
type fakeStore struct {
	docs          map[string]map[string]interface{} // docID → payload
	upsertFailFor map[int64]error                   // crossRef → error forzado
	markFailFor   map[string]error                  // docID → error forzado en SetCrossRef
	upserts       []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:          map[string]map[string]interface{}{},
		upsertFailFor: map[int64]error{},
		markFailFor:   map[string]error{},
	}
}

func (s *fakeStore) ListAll(_ context.Context) ([]appsync.Document, error) {
	var out []appsync.Document
	for id, data := range s.docs {
		cp := map[string]interface{}{}
		for k, v := range data {
			cp[k] = v
		}
		out = append(out, appsync.Document{DocID: id, Data: cp})
	}
	return out, nil
}

func (s *fakeStore) UpsertByCrossRef(_ context.Context, crossRef int64, update appsync.DocumentUpdate) error {
	if err, ok := s.upsertFailFor[crossRef]; ok {
		return err
	}
	s.upserts = append(s.upserts, crossRef)

	// Buscar documento existente por referencia cruzada.
	var docID string
	for id, data := range s.docs {
		if ref, ok := data["idSignalement"]; ok {
			if n, isInt := ref.(int64); isInt && n == crossRef {
				docID = id
				break
			}
			if str, isStr := ref.(string); isStr && str == fmt.Sprintf("%d", crossRef) {
				docID = id
				break
			}
		}
	}

	if docID == "" {
		// Inserción: Set + SetOnInsert
		doc := map[string]interface{}{"idSignalement": crossRef}
		for k, v := range update.SetOnInsert {
			doc[k] = v
		}
		for k, v := range update.Set {
			doc[k] = v
		}
		s.docs[fmt.Sprintf("doc-%d", crossRef)] = doc
		return nil
	}

	// Merge: solo Set
	for k, v := range update.Set {
		s.docs[docID][k] = v
	}
	s.docs[docID]["idSignalement"] = crossRef
	return nil
}

func (s *fakeStore) SetCrossRef(_ context.Context, docID string, crossRef int64) error {
	if err, ok := s.markFailFor[docID]; ok {
		return err
	}
	doc, ok := s.docs[docID]
	if !ok {
		return errors.New("documento no encontrado")
	}
	doc["idSignalement"] = crossRef
	return nil
}

func newSyncUseCase(sigRepo *fakeSigRepo, store *fakeStore) *appsync.UseCase {
	tx := &fakeTxRunner{sigRepo: sigRepo, photoRepo: &fakePhotoRepo{}}
	return appsync.NewUseCase(sigRepo, tx, store, 0)
}

func seedSignalement(t *testing.T, repo *fakeSigRepo, titre, statut string) *entity.Signalement {
	t.Helper()
	s := &entity.Signalement{
		Titre:           titre,
		Statut:          statut,
		DateSignalement: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		SurfaceM2:       decimal.NewFromInt(10),
		Budget:          decimal.NewFromInt(50000),
		Niveau:          1,
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ExportAll
// ──────────────────────────────────────────────────────────────────────────────

func TestExportAll_ExportaTodosLosRegistros(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	seedSignalement(t, repo, "A", entity.StatutNouveau)
	seedSignalement(t, repo, "B", entity.StatutEnCours)
	seedSignalement(t, repo, "C", entity.StatutTermine)

	uc := newSyncUseCase(repo, store)
	res, err := uc.ExportAll(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.ExportedCount)
	assert.Equal(t, 3, res.EligibleCount)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "3 de 3 signalements exportados", res.Message)
	assert.Len(t, store.docs, 3, "cada registro debe tener su documento")
}

func TestExportAll_ErrorPorRegistroNoDetieneElBarrido(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	seedSignalement(t, repo, "A", entity.StatutNouveau)
	bad := seedSignalement(t, repo, "B", entity.StatutNouveau)
	seedSignalement(t, repo, "C", entity.StatutNouveau)
	store.upsertFailFor[bad.ID] = errors.New("escritura rechazada")

	uc := newSyncUseCase(repo, store)
	res, err := uc.ExportAll(context.Background())

	require.NoError(t, err, "un fallo por registro no debe abortar el barrido")
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.ExportedCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, fmt.Sprintf("%d", bad.ID), res.Errors[0].ID)
}

func TestExportAll_EsIdempotente(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	seedSignalement(t, repo, "A", entity.StatutNouveau)

	uc := newSyncUseCase(repo, store)
	_, err := uc.ExportAll(context.Background())
	require.NoError(t, err)
	_, err = uc.ExportAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.docs, 1,
		"dos barridos consecutivos no deben duplicar documentos")
}

func TestExportAll_MergeNoPisaPhotosDelMovil(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	s := seedSignalement(t, repo, "A", entity.StatutEnCours)

	uc := newSyncUseCase(repo, store)
	_, err := uc.ExportAll(context.Background())
	require.NoError(t, err)

	// El móvil añade fotos después del primer export.
	docID := fmt.Sprintf("doc-%d", s.ID)
	store.docs[docID]["photos"] = []string{"http://x/movil.jpg"}

	_, err = uc.ExportAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"http://x/movil.jpg"}, store.docs[docID]["photos"],
		"el re-export no debe pisar las fotos escritas por el móvil")
	assert.Equal(t, entity.StatutEnCours, store.docs[docID]["statut"],
		"el statut del manager sí debe propagarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ImportUnimported
// ──────────────────────────────────────────────────────────────────────────────

func TestImportUnimported_PromueveDocumentosSinCrossRef(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	store.docs["m1"] = map[string]interface{}{
		"titre":           "Desde el móvil",
		"statut":          "nouveau",
		"dateSignalement": "2025-05-02T07:00:00Z",
		"photos":          []interface{}{"http://x/p.jpg"},
	}

	uc := newSyncUseCase(repo, store)
	res, err := uc.ImportUnimported(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedCount)
	assert.Equal(t, 1, res.TotalUnimported)
	assert.Zero(t, res.ErrorCount)

	// El registro canónico existe y el documento quedó marcado.
	require.Len(t, repo.items, 1)
	ref, ok := store.docs["m1"]["idSignalement"].(int64)
	require.True(t, ok, "el documento debe quedar con la referencia cruzada estampada")
	created, _ := repo.GetByID(context.Background(), ref)
	require.NotNil(t, created)
	assert.Equal(t, "Desde el móvil", created.Titre)
	require.NotNil(t, created.DateNouveau,
		"dateNouveau debe rellenarse desde dateSignalement si falta")
}

func TestImportUnimported_IgnoraDocumentosYaPromovidos(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	existing := seedSignalement(t, repo, "Ya promovido", entity.StatutNouveau)
	store.docs["m1"] = map[string]interface{}{
		"idSignalement": existing.ID,
		"titre":         "Ya promovido",
	}

	uc := newSyncUseCase(repo, store)
	res, err := uc.ImportUnimported(context.Background())

	require.NoError(t, err)
	assert.Zero(t, res.TotalUnimported)
	assert.Zero(t, res.ImportedCount)
	assert.Len(t, repo.items, 1, "no debe crearse un duplicado")
}

func TestImportUnimported_CrossRefHuerfanoSeReimporta(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	// Referencia cruzada que no resuelve a ningún registro relacional.
	store.docs["m1"] = map[string]interface{}{
		"idSignalement": int64(999),
		"titre":         "Huérfano",
	}

	uc := newSyncUseCase(repo, store)
	res, err := uc.ImportUnimported(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.ImportedCount,
		"un crossRef que no resuelve debe tratarse como no importado")
	newRef, _ := store.docs["m1"]["idSignalement"].(int64)
	assert.NotEqual(t, int64(999), newRef, "la marca debe reescribirse con el ID canónico real")
}

func TestImportUnimported_DocumentoIncompletoCuentaComoError(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	store.docs["bad"] = map[string]interface{}{"surfaceM2": "treinta"}
	store.docs["good"] = map[string]interface{}{"titre": "Válido"}

	uc := newSyncUseCase(repo, store)
	res, err := uc.ImportUnimported(context.Background())

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.ImportedCount, "el documento válido debe importarse igual")
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, 2, res.TotalUnimported)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "bad", res.Errors[0].ID)
	assert.Contains(t, res.Errors[0].Message, "documento incompleto")
}

func TestImportUnimported_FalloDeMarcadoCuentaComoError(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	store.docs["m1"] = map[string]interface{}{"titre": "X"}
	store.markFailFor["m1"] = errors.New("conexión perdida")

	uc := newSyncUseCase(repo, store)
	res, err := uc.ImportUnimported(context.Background())

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Zero(t, res.ImportedCount)
	assert.Equal(t, 1, res.ErrorCount)
	// El registro quedó creado: el siguiente barrido vería el documento otra
	// vez, ese es el costo aceptado de no tener transacción entre almacenes.
	assert.Len(t, repo.items, 1)
}

func TestImportUnimported_SegundoBarridoNoReimporta(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	store.docs["m1"] = map[string]interface{}{"titre": "Única vez"}

	uc := newSyncUseCase(repo, store)
	res1, err := uc.ImportUnimported(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res1.ImportedCount)

	res2, err := uc.ImportUnimported(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res2.ImportedCount, "la marca estampada hace idempotente el barrido")
	assert.Zero(t, res2.TotalUnimported)
	assert.Len(t, repo.items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Import seguido de export — ciclo completo de reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestImportLuegoExport_TresDocumentosMoviles(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	store.docs["m1"] = map[string]interface{}{
		"titre":           "Analakely",
		"latitude":        -18.9101,
		"longitude":       47.5256,
		"dateSignalement": "2025-05-02T07:00:00Z",
	}
	store.docs["m2"] = map[string]interface{}{
		"titre":     "Ivandry",
		"latitude":  -18.8667,
		"longitude": 47.5333,
	}
	// Reporte previo al fix GPS: sin posición, debe importarse igual.
	store.docs["m3"] = map[string]interface{}{"titre": "Sans GPS"}

	uc := newSyncUseCase(repo, store)

	imp, err := uc.ImportUnimported(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, imp.ImportedCount, "los tres documentos deben promoverse")
	assert.Zero(t, imp.ErrorCount)
	assert.Len(t, repo.items, 3)

	exp, err := uc.ExportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, exp.ExportedCount)

	assert.Len(t, store.docs, 3, "el export posterior no debe duplicar documentos")
	refs := map[int64]bool{}
	for docID, data := range store.docs {
		ref, ok := data["idSignalement"].(int64)
		require.True(t, ok, "el documento %s debe conservar su referencia cruzada", docID)
		refs[ref] = true
	}
	assert.Len(t, refs, 3, "cada documento debe apuntar a un registro canónico distinto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PullAll
// ──────────────────────────────────────────────────────────────────────────────

func TestPullAll_NormalizaTodosLosDocumentos(t *testing.T) {
	repo := newFakeSigRepo()
	store := newFakeStore()
	store.docs["m1"] = map[string]interface{}{
		"status":          "en cours",
		"surface":         22.0,
		"dateSignalement": "2025-05-02T07:00:00Z",
	}

	uc := newSyncUseCase(repo, store)
	out, err := uc.PullAll(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "m1", out[0].ID)
	assert.Equal(t, "en cours", out[0].Statut)
	assert.Equal(t, 22.0, out[0].SurfaceM2)
	assert.Equal(t, "2025-05-02", out[0].Date)
	assert.NotNil(t, out[0].Photos, "photos siempre debe ser array en el contrato de lectura")
}
