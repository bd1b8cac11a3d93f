package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// StatsUseCase agregados para el dashboard del manager.
type StatsUseCase struct {
	repo repository.SignalementRepository
}

// NewStatsUseCase construye el caso de uso de estadísticas.
func NewStatsUseCase(repo repository.SignalementRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// Global calcula los agregados globales: cantidad de puntos, superficie y
// budget totales, y porcentaje de signalements terminados.
func (uc *StatsUseCase) Global(ctx context.Context) (*dto.StatsResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	totalSurface := decimal.Zero
	totalBudget := decimal.Zero
	termines := 0
	for _, s := range list {
		totalSurface = totalSurface.Add(s.SurfaceM2)
		totalBudget = totalBudget.Add(s.Budget)
		if s.Statut == entity.StatutTermine {
			termines++
		}
	}

	resp := &dto.StatsResponse{NbPoints: len(list)}
	resp.TotalSurface, _ = totalSurface.Float64()
	resp.TotalBudget, _ = totalBudget.Float64()
	if len(list) > 0 {
		resp.Avancement = termines * 100 / len(list)
	}
	return resp, nil
}

// Traitement calcula los tiempos medios entre etapas de tratamiento. Solo
// cuentan los registros con ambas fechas de la transición presentes.
func (uc *StatsUseCase) Traitement(ctx context.Context) (*dto.TraitementStatsResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.TraitementStatsResponse{}
	var sumNE, sumET float64
	for _, s := range list {
		if s.DateNouveau != nil && s.DateEnCours != nil {
			sumNE += s.DateEnCours.Sub(*s.DateNouveau).Hours()
			resp.NouveauToEnCoursCount++
		}
		if s.DateEnCours != nil && s.DateTermine != nil {
			sumET += s.DateTermine.Sub(*s.DateEnCours).Hours()
			resp.EnCoursToTermineCount++
		}
	}
	if resp.NouveauToEnCoursCount > 0 {
		resp.AvgNouveauToEnCoursHours = sumNE / float64(resp.NouveauToEnCoursCount)
	}
	if resp.EnCoursToTermineCount > 0 {
		resp.AvgEnCoursToTermineHours = sumET / float64(resp.EnCoursToTermineCount)
	}
	return resp, nil
}
