package dto

// SyncError error por registro dentro de un barrido; el barrido continúa con
// los demás registros.
type SyncError struct {
	ID      string `json:"id,omitempty"` // ID canónico o ID de documento, según el sentido del barrido
	Message string `json:"message"`
}

// ExportResult resumen de un barrido de export (relacional → documentos).
type ExportResult struct {
	Success       bool        `json:"success"` // false si hubo al menos un error por registro
	ExportedCount int         `json:"exportedCount"`
	EligibleCount int         `json:"eligibleCount"`
	Errors        []SyncError `json:"errors"`
	Message       string      `json:"message"`
}

// ImportResult resumen de un barrido de import (documentos → relacional).
// TotalUnimported es el total detectado al inicio del barrido, de modo que el
// operador vea cuántos quedaron pendientes tras un fallo parcial.
type ImportResult struct {
	Success         bool        `json:"success"`
	ImportedCount   int         `json:"importedCount"`
	ErrorCount      int         `json:"errorCount"`
	TotalUnimported int         `json:"totalUnimported"`
	Errors          []SyncError `json:"errors"`
}

// DocumentSignalement forma normalizada de un signalement del almacén de
// documentos (contrato de lectura del cliente móvil y del pull-all).
type DocumentSignalement struct {
	ID              string   `json:"id"` // ID opaco del documento
	IDSignalement   *int64   `json:"idSignalement,omitempty"`
	Statut          string   `json:"statut"`
	Date            string   `json:"date"` // dateSignalement truncada a fecha (yyyy-MM-dd)
	DateSignalement string   `json:"dateSignalement"`
	SurfaceM2       float64  `json:"surfaceM2"`
	Budget          float64  `json:"budget"`
	Entreprise      string   `json:"entreprise"`
	Titre           string   `json:"titre"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Description     string   `json:"description"`
	UserID          *string  `json:"id_user"`
	Type            string   `json:"type"`
	Photos          []string `json:"photos"`
	Niveau          int      `json:"niveau"`
	DateNouveau     *string  `json:"dateNouveau"`
	DateEnCours     *string  `json:"dateEnCours"`
	DateTermine     *string  `json:"dateTermine"`
}
