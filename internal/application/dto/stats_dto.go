package dto

// StatsResponse agregados globales para el dashboard.
type StatsResponse struct {
	NbPoints     int     `json:"nbPoints"`
	TotalSurface float64 `json:"totalSurface"`
	TotalBudget  float64 `json:"totalBudget"`
	Avancement   int     `json:"avancement"` // % de signalements terminados
}

// TraitementStatsResponse tiempos medios de tratamiento entre etapas, en horas.
// Los promedios se calculan solo sobre los registros que tienen ambas fechas.
type TraitementStatsResponse struct {
	AvgNouveauToEnCoursHours float64 `json:"avgNouveauToEnCoursHours"`
	AvgEnCoursToTermineHours float64 `json:"avgEnCoursToTermineHours"`
	NouveauToEnCoursCount    int     `json:"nouveauToEnCoursCount"`
	EnCoursToTermineCount    int     `json:"enCoursToTermineCount"`
}
