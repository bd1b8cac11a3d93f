package entity

import "time"

// Photo referencia una foto adjunta a un signalement. El binario vive en un
// blob store externo; aquí solo se persiste la URL.
type Photo struct {
	ID            int64
	SignalementID int64
	URL           string
	DateAjout     time.Time
}
