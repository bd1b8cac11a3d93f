package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un Signalement. El ciclo de vida previsto es
// nouveau → en cours → termine, aunque el origen del dato (manager o móvil)
// puede fijar cualquier estado; la monotonía no se garantiza.
const (
	StatutNouveau = "nouveau"
	StatutEnCours = "en cours"
	StatutTermine = "termine"
)

// NiveauMin y NiveauMax acotan el nivel de gravedad de una reparación.
const (
	NiveauMin = 1
	NiveauMax = 10
)

// Signalement representa un reporte de incidencia vial. El ID es el
// identificador canónico (relacional); el almacén de documentos guarda su
// propia copia referenciada por este ID vía el campo cruzado idSignalement.
type Signalement struct {
	ID              int64
	Titre           string
	Description     string
	Latitude        float64
	Longitude       float64
	DateSignalement time.Time
	Statut          string
	SurfaceM2       decimal.Decimal
	Budget          decimal.Decimal
	Entreprise      string
	Niveau          int     // 1..10, interviene en el cálculo del budget
	UserID          *string // usuario propietario; nil si el reporte es anónimo

	// Fechas de cada etapa de avance; nil mientras la etapa no se alcanza.
	DateNouveau *time.Time
	DateEnCours *time.Time
	DateTermine *time.Time
}

// Avancement devuelve el porcentaje de avance derivado del estado (0/50/100).
func (s *Signalement) Avancement() int {
	switch s.Statut {
	case StatutNouveau:
		return 0
	case StatutEnCours:
		return 50
	case StatutTermine:
		return 100
	default:
		return 0
	}
}

// HasPosition indica si el reporte trae coordenadas GPS. Los reportes móviles
// creados antes del primer fix GPS llegan sin posición; no es motivo de rechazo.
func (s *Signalement) HasPosition() bool {
	return s.Latitude != 0 || s.Longitude != 0
}

// IsValidStatut valida un estado contra el conjunto conocido.
func IsValidStatut(statut string) bool {
	switch statut {
	case StatutNouveau, StatutEnCours, StatutTermine:
		return true
	}
	return false
}
