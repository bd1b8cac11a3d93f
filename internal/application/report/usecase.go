package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

// Generator puerto de generación del PDF de reporte.
type Generator interface {
	Generate(data ReportData) ([]byte, error)
}

// ReportData datos ya agregados que consume el generador.
type ReportData struct {
	Signalements []*entity.Signalement
	TotalSurface float64
	TotalBudget  float64
	Termines     int
}

// UseCase arma el reporte PDF de signalements para el manager.
type UseCase struct {
	repo repository.SignalementRepository
	gen  Generator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repo repository.SignalementRepository, gen Generator) *UseCase {
	return &UseCase{repo: repo, gen: gen}
}

// BuildPDF genera el reporte con todos los signalements, ordenados por fecha
// de reporte descendente.
func (uc *UseCase) BuildPDF(ctx context.Context) ([]byte, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listando signalements para el reporte: %w", err)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].DateSignalement.After(list[j].DateSignalement)
	})

	data := ReportData{Signalements: list}
	for _, s := range list {
		surface, _ := s.SurfaceM2.Float64()
		bdg, _ := s.Budget.Float64()
		data.TotalSurface += surface
		data.TotalBudget += bdg
		if s.Statut == entity.StatutTermine {
			data.Termines++
		}
	}

	pdf, err := uc.gen.Generate(data)
	if err != nil {
		return nil, fmt.Errorf("generando PDF: %w", err)
	}
	return pdf, nil
}
