package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain"
	"github.com/tahiry-dev/lalana-api/internal/domain/budget"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// SignalementUseCase CRUD de signalements con cálculo de budget y fechas de
// progresión por etapa.
type SignalementUseCase struct {
	repo  repository.SignalementRepository
	calc  *budget.Calculator
	nowFn func() time.Time
}

// NewSignalementUseCase construye el caso de uso.
func NewSignalementUseCase(repo repository.SignalementRepository, calc *budget.Calculator) *SignalementUseCase {
	return &SignalementUseCase{repo: repo, calc: calc, nowFn: time.Now}
}

// Create da de alta un signalement. El titre vacío se rellena con el valor
// por defecto, el statut ausente arranca en "nouveau" y el budget ausente se
// auto-calcula a partir del niveau y la superficie.
func (uc *SignalementUseCase) Create(ctx context.Context, req dto.CreateSignalementRequest) (*dto.SignalementResponse, error) {
	now := uc.nowFn()

	s := &entity.Signalement{
		Titre:           strings.TrimSpace(req.Titre),
		Description:     req.Description,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		DateSignalement: now,
		Statut:          strings.TrimSpace(req.Statut),
		Entreprise:      req.Entreprise,
		Niveau:          entity.NiveauMin,
		UserID:          req.UserID,
	}
	if s.Titre == "" {
		s.Titre = "Signalement"
	}
	if s.Statut == "" {
		s.Statut = entity.StatutNouveau
	}
	if !entity.IsValidStatut(s.Statut) {
		return nil, fmt.Errorf("%w: statut desconocido %q", domain.ErrInvalidInput, s.Statut)
	}
	if req.Niveau != nil {
		s.Niveau = *req.Niveau
	}
	if s.Niveau < entity.NiveauMin || s.Niveau > entity.NiveauMax {
		return nil, fmt.Errorf("%w: niveau %d fuera de rango", domain.ErrInvalidInput, s.Niveau)
	}
	if req.SurfaceM2 != nil {
		s.SurfaceM2 = decimal.NewFromFloat(*req.SurfaceM2)
	}
	if req.Budget != nil {
		s.Budget = decimal.NewFromFloat(*req.Budget)
	} else {
		computed, err := uc.calc.Compute(s.Niveau, s.SurfaceM2)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		s.Budget = computed
	}

	uc.stampProgression(s, now)

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	resp := ToSignalementResponse(s)
	return &resp, nil
}

// GetByID recupera un signalement por su ID canónico.
func (uc *SignalementUseCase) GetByID(ctx context.Context, id int64) (*dto.SignalementResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToSignalementResponse(s)
	return &resp, nil
}

// List devuelve todos los signalements.
func (uc *SignalementUseCase) List(ctx context.Context) ([]dto.SignalementResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SignalementResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSignalementResponse(s))
	}
	return out, nil
}

// Update aplica una edición parcial: solo los campos presentes en la petición
// se escriben. Un cambio de niveau o superficie recalcula el budget salvo que
// el budget vigente sea un override manual o venga en la misma petición.
func (uc *SignalementUseCase) Update(ctx context.Context, id int64, req dto.UpdateSignalementRequest) (*dto.SignalementResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}

	wasOverride := uc.calc.IsOverride(s.Budget, s.Niveau, s.SurfaceM2)

	if req.Titre != nil {
		s.Titre = *req.Titre
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.Latitude != nil {
		s.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		s.Longitude = *req.Longitude
	}
	if req.Entreprise != nil {
		s.Entreprise = *req.Entreprise
	}
	if req.Niveau != nil {
		if *req.Niveau < entity.NiveauMin || *req.Niveau > entity.NiveauMax {
			return nil, fmt.Errorf("%w: niveau %d fuera de rango", domain.ErrInvalidInput, *req.Niveau)
		}
		s.Niveau = *req.Niveau
	}
	if req.SurfaceM2 != nil {
		s.SurfaceM2 = decimal.NewFromFloat(*req.SurfaceM2)
	}
	if req.Budget != nil {
		s.Budget = decimal.NewFromFloat(*req.Budget)
	} else if (req.Niveau != nil || req.SurfaceM2 != nil) && !wasOverride {
		computed, cerr := uc.calc.Compute(s.Niveau, s.SurfaceM2)
		if cerr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, cerr)
		}
		s.Budget = computed
	}
	if req.Statut != nil {
		if err := uc.applyStatut(s, *req.Statut); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := ToSignalementResponse(s)
	return &resp, nil
}

// UpdateStatus cambia solo el estado, estampando las fechas de progresión.
func (uc *SignalementUseCase) UpdateStatus(ctx context.Context, id int64, statut string) (*dto.SignalementResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.applyStatut(s, statut); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := ToSignalementResponse(s)
	return &resp, nil
}

// Delete elimina un signalement (las fotos caen en cascada).
func (uc *SignalementUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// applyStatut valida y fija el estado, estampando las fechas de etapa.
func (uc *SignalementUseCase) applyStatut(s *entity.Signalement, statut string) error {
	statut = strings.TrimSpace(statut)
	if !entity.IsValidStatut(statut) {
		return fmt.Errorf("%w: statut desconocido %q", domain.ErrInvalidInput, statut)
	}
	s.Statut = statut
	uc.stampProgression(s, uc.nowFn())
	return nil
}

// stampProgression completa las fechas de etapa según el estado actual. Un
// salto directo a "termine" rellena también las etapas intermedias, para que
// las estadísticas de tratamiento no queden con huecos.
func (uc *SignalementUseCase) stampProgression(s *entity.Signalement, now time.Time) {
	switch s.Statut {
	case entity.StatutTermine:
		if s.DateTermine == nil {
			s.DateTermine = &now
		}
		fallthrough
	case entity.StatutEnCours:
		if s.DateEnCours == nil {
			s.DateEnCours = &now
		}
		fallthrough
	case entity.StatutNouveau:
		if s.DateNouveau == nil {
			s.DateNouveau = &now
		}
	}
}

// ToSignalementResponse mapea la entidad al contrato JSON de los frontends.
func ToSignalementResponse(s *entity.Signalement) dto.SignalementResponse {
	surface, _ := s.SurfaceM2.Float64()
	bdg, _ := s.Budget.Float64()
	return dto.SignalementResponse{
		ID:              s.ID,
		Titre:           s.Titre,
		Description:     s.Description,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		DateSignalement: s.DateSignalement.UTC().Format(time.RFC3339),
		Statut:          s.Statut,
		SurfaceM2:       surface,
		Budget:          bdg,
		Entreprise:      s.Entreprise,
		Niveau:          s.Niveau,
		UserID:          s.UserID,
		DateNouveau:     formatTimePtr(s.DateNouveau),
		DateEnCours:     formatTimePtr(s.DateEnCours),
		DateTermine:     formatTimePtr(s.DateTermine),
		Avancement:      s.Avancement(),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}
