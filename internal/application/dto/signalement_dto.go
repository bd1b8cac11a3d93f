package dto

// CreateSignalementRequest alta de un signalement desde la web (manager o
// usuario sincronizado). Surface/budget/niveau opcionales: el budget ausente
// se auto-calcula a partir del niveau y la superficie.
type CreateSignalementRequest struct {
	Titre       string   `json:"titre"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Statut      string   `json:"statut"`
	SurfaceM2   *float64 `json:"surfaceM2"`
	Budget      *float64 `json:"budget"`
	Entreprise  string   `json:"entreprise"`
	Niveau      *int     `json:"niveau"`
	UserID      *string  `json:"id_user"`
}

// UpdateSignalementRequest edición parcial: solo los campos presentes se
// aplican (merge), igual que el PUT del backend original.
type UpdateSignalementRequest struct {
	Titre       *string  `json:"titre"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Statut      *string  `json:"statut"`
	SurfaceM2   *float64 `json:"surfaceM2"`
	Budget      *float64 `json:"budget"`
	Entreprise  *string  `json:"entreprise"`
	Niveau      *int     `json:"niveau"`
}

// UpdateStatusRequest cambio de estado aislado (botones del manager).
// Acepta ambas variantes de nombre por compatibilidad con los dos clientes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Statut string `json:"statut"`
}

// Value devuelve el estado pedido, cualquiera sea la variante usada.
func (r UpdateStatusRequest) Value() string {
	if r.Statut != "" {
		return r.Statut
	}
	return r.Status
}

// SignalementResponse salida de un signalement (nombres de campo del contrato
// que consumen los dos frontends).
type SignalementResponse struct {
	ID              int64   `json:"idSignalement"`
	Titre           string  `json:"titre"`
	Description     string  `json:"description"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	DateSignalement string  `json:"dateSignalement"`
	Statut          string  `json:"statut"`
	SurfaceM2       float64 `json:"surfaceM2"`
	Budget          float64 `json:"budget"`
	Entreprise      string  `json:"entreprise"`
	Niveau          int     `json:"niveau"`
	UserID          *string `json:"id_user"`
	DateNouveau     *string `json:"dateNouveau"`
	DateEnCours     *string `json:"dateEnCours"`
	DateTermine     *string `json:"dateTermine"`
	Avancement      int     `json:"avancement"`
}

// PhotoResponse referencia de foto de un signalement.
type PhotoResponse struct {
	ID            int64  `json:"idPhoto"`
	SignalementID int64  `json:"idSignalement"`
	URL           string `json:"urlPhoto"`
	DateAjout     string `json:"dateAjout"`
}

// AddPhotoByURLRequest alta de foto por URL (el binario vive en el blob store externo).
type AddPhotoByURLRequest struct {
	URL string `json:"url"`
}

// PhotoCountResponse conteo de fotos de un signalement.
type PhotoCountResponse struct {
	Count int `json:"count"`
}
