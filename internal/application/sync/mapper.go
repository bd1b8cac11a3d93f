package sync

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
)

// Claves del esquema de documentos. El cliente móvil escribió históricamente
// variantes en inglés para algunos campos; ambas se aceptan en lectura y la
// escritura siempre usa la variante canónica (francesa).
const (
	keyCrossRef        = "idSignalement"
	keyTitre           = "titre"
	keyDescription     = "description"
	keyLatitude        = "latitude"
	keyLongitude       = "longitude"
	keyDateSignalement = "dateSignalement"
	keyStatut          = "statut"
	keyStatutAlt       = "status"
	keySurface         = "surfaceM2"
	keySurfaceAlt      = "surface"
	keyBudget          = "budget"
	keyEntreprise      = "entreprise"
	keyUserID          = "id_user"
	keyUserIDAlt       = "userId"
	keyType            = "type"
	keyPhotos          = "photos"
	keyNiveau          = "niveau"
	keyDateNouveau     = "dateNouveau"
	keyDateEnCours     = "dateEnCours"
	keyDateTermine     = "dateTermine"
)

// Valores por defecto del contrato de lectura.
const (
	defaultTitre = "Signalement"
	defaultType  = "non spécifié"
)

// Candidate es el resultado de normalizar un documento: la forma relacional
// candidata más los campos que solo existen del lado documento. Un fallo de
// coerción numérica no descarta el registro: se marca Incomplete y la
// validación queda en manos del escritor.
type Candidate struct {
	Signalement entity.Signalement
	DocID       string
	CrossRef    *int64 // nil = el documento nunca fue promovido (sin ID canónico)
	Type        string
	Photos      []string
	Incomplete  bool
	Problems    []string
}

// ToDocument traduce un registro relacional al esquema de documentos.
// Los campos autoritativos del manager van en Set (se propagan en cada
// export); photos y el statut inicial van en SetOnInsert para que un
// update-merge no pise lo que escribió el móvil después del hecho.
func ToDocument(s *entity.Signalement) DocumentUpdate {
	dateSignalement := s.DateSignalement
	if dateSignalement.IsZero() {
		dateSignalement = time.Now()
	}

	set := map[string]interface{}{
		keyCrossRef:        s.ID,
		keyTitre:           s.Titre,
		keyDescription:     s.Description,
		keyLatitude:        s.Latitude,
		keyLongitude:       s.Longitude,
		keyDateSignalement: dateSignalement.UTC().Format(time.RFC3339),
		keySurface:         s.SurfaceM2.InexactFloat64(),
		keyBudget:          s.Budget.InexactFloat64(),
		keyEntreprise:      s.Entreprise,
		keyNiveau:          s.Niveau,
		keyDateNouveau:     isoOrNil(s.DateNouveau),
		keyDateEnCours:     isoOrNil(s.DateEnCours),
		keyDateTermine:     isoOrNil(s.DateTermine),
	}
	// id_user solo cuando el registro tiene dueño: un registro sin dueño no
	// debe anular en el merge el userId que el móvil escribió por su cuenta.
	if s.UserID != nil {
		set[keyUserID] = *s.UserID
	}

	setOnInsert := map[string]interface{}{
		keyPhotos: []string{},
	}
	if s.Statut != "" {
		set[keyStatut] = s.Statut
	} else {
		// Creación fresca sin estado conocido: statut inicial "nouveau",
		// sin pisar el estado de un documento existente.
		setOnInsert[keyStatut] = entity.StatutNouveau
	}

	return DocumentUpdate{Set: set, SetOnInsert: setOnInsert}
}

// FromDocument normaliza un documento a su candidato relacional, aceptando
// las variantes de nombres de cada campo dual.
func FromDocument(doc Document) *Candidate {
	c := &Candidate{
		DocID:  doc.DocID,
		Type:   defaultType,
		Photos: []string{},
	}
	data := doc.Data

	c.CrossRef = parseCrossRef(data[keyCrossRef])

	c.Signalement.Titre = stringOr(data[keyTitre], defaultTitre)
	c.Signalement.Description = stringOr(data[keyDescription], "")
	c.Signalement.Entreprise = stringOr(data[keyEntreprise], "")

	if v, ok := firstPresent(data, keyStatut, keyStatutAlt); ok {
		c.Signalement.Statut = stringOr(v, entity.StatutNouveau)
	} else {
		c.Signalement.Statut = entity.StatutNouveau
	}

	// Posición: ausente o no numérica queda en 0 (un reporte móvil previo al
	// fix GPS no es motivo de rechazo).
	c.Signalement.Latitude, _ = asFloat(data[keyLatitude])
	c.Signalement.Longitude, _ = asFloat(data[keyLongitude])

	if v, ok := firstPresent(data, keySurface, keySurfaceAlt); ok {
		if f, numOK := asFloat(v); numOK {
			c.Signalement.SurfaceM2 = decimal.NewFromFloat(f)
		} else {
			c.flag(fmt.Sprintf("surfaceM2 no numérico: %v", v))
		}
	}
	if v, ok := data[keyBudget]; ok && v != nil {
		if f, numOK := asFloat(v); numOK {
			c.Signalement.Budget = decimal.NewFromFloat(f)
		} else {
			c.flag(fmt.Sprintf("budget no numérico: %v", v))
		}
	}

	c.Signalement.Niveau = entity.NiveauMin
	if v, ok := data[keyNiveau]; ok && v != nil {
		if n, numOK := asInt(v); numOK {
			c.Signalement.Niveau = n
		} else {
			c.flag(fmt.Sprintf("niveau no numérico: %v", v))
		}
	}

	if v, ok := firstPresent(data, keyUserID, keyUserIDAlt); ok {
		if s, strOK := asString(v); strOK && s != "" {
			c.Signalement.UserID = &s
		}
	}

	if v, ok := asString(data[keyType]); ok && v != "" {
		c.Type = v
	}
	c.Photos = asStringSlice(data[keyPhotos])

	// Fecha del reporte: se soportan los formatos ISO 8601 del móvil y el
	// formato SQL; si no se reconoce se usa la fecha actual.
	if s, ok := asString(data[keyDateSignalement]); ok && s != "" {
		if t, parsed := parseDate(s); parsed {
			c.Signalement.DateSignalement = t
		} else {
			c.Signalement.DateSignalement = time.Now()
			c.flag(fmt.Sprintf("formato de dateSignalement no reconocido: %s", s))
		}
	} else {
		c.Signalement.DateSignalement = time.Now()
	}

	c.Signalement.DateNouveau = parseDatePtr(data[keyDateNouveau])
	c.Signalement.DateEnCours = parseDatePtr(data[keyDateEnCours])
	c.Signalement.DateTermine = parseDatePtr(data[keyDateTermine])

	return c
}

// Normalize produce la forma de lectura del contrato (pull-all): nombres
// canónicos, photos siempre array, fecha truncada a yyyy-MM-dd.
func Normalize(doc Document) *dto.DocumentSignalement {
	c := FromDocument(doc)
	s := &c.Signalement

	out := &dto.DocumentSignalement{
		ID:              c.DocID,
		IDSignalement:   c.CrossRef,
		Statut:          s.Statut,
		DateSignalement: s.DateSignalement.UTC().Format(time.RFC3339),
		SurfaceM2:       s.SurfaceM2.InexactFloat64(),
		Budget:          s.Budget.InexactFloat64(),
		Entreprise:      s.Entreprise,
		Titre:           s.Titre,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		Description:     s.Description,
		UserID:          s.UserID,
		Type:            c.Type,
		Photos:          c.Photos,
		Niveau:          s.Niveau,
		DateNouveau:     isoPtr(s.DateNouveau),
		DateEnCours:     isoPtr(s.DateEnCours),
		DateTermine:     isoPtr(s.DateTermine),
	}
	out.Date = dateOnly(out.DateSignalement)
	return out
}

func (c *Candidate) flag(problem string) {
	c.Incomplete = true
	c.Problems = append(c.Problems, problem)
}

// ── coerciones ────────────────────────────────────────────────────────────────

func firstPresent(data map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func asString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	}
	return "", false
}

func stringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asStringSlice(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		if list == nil {
			return []string{}
		}
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// parseCrossRef acepta string o número (contrato: string | number).
// Vacío o no numérico equivale a ausente: el documento no está promovido.
func parseCrossRef(v interface{}) *int64 {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		id := int64(n)
		return &id
	case int:
		id := int64(n)
		return &id
	case int32:
		id := int64(n)
		return &id
	case int64:
		return &n
	case string:
		if n == "" {
			return nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil
		}
		return &id
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDatePtr(v interface{}) *time.Time {
	s, ok := asString(v)
	if !ok || s == "" {
		return nil
	}
	t, parsed := parseDate(s)
	if !parsed {
		return nil
	}
	return &t
}

func isoOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func isoPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// dateOnly trunca un timestamp ISO 8601 (o SQL) a yyyy-MM-dd.
func dateOnly(s string) string {
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}
