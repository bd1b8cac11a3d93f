// Seed de datos de demostración: una cuenta manager, una cuenta user y un
// lote de signalements alrededor de Antananarivo.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahiry-dev/lalana-api/internal/domain/budget"
	"github.com/tahiry-dev/lalana-api/internal/domain/entity"
	"github.com/tahiry-dev/lalana-api/internal/infrastructure/postgres"
	"github.com/tahiry-dev/lalana-api/pkg/config"
	"github.com/tahiry-dev/lalana-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	sigRepo := postgres.NewSignalementRepository(pool)

	// Cuentas de demostración
	seedUser := func(email, password, role string) {
		if existing, err := userRepo.GetByEmail(ctx, email); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("verificando cuenta")
		} else if existing != nil {
			log.Info().Str("email", email).Msg("cuenta ya existe, se omite")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		now := time.Now()
		u := &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			SyncStatus:   entity.SyncStatusNotSynced,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("creando cuenta")
		}
		log.Info().Str("email", email).Str("role", role).Msg("cuenta creada")
	}
	seedUser("manager@lalana.mg", "manager123", entity.RoleManager)
	seedUser("rakoto@lalana.mg", "rakoto123", entity.RoleUser)

	// Signalements alrededor de Antananarivo
	calc := budget.NewCalculator(cfg.Sync.PricePerM2)
	type point struct {
		titre, desc, statut string
		lat, lng, surface   float64
		niveau              int
	}
	points := []point{
		{"Nid de poule Analakely", "Chaussée dégradée devant le marché", entity.StatutNouveau, -18.9101, 47.5256, 12.5, 3},
		{"Affaissement Route Digue", "Affaissement sur la voie rapide", entity.StatutEnCours, -18.8792, 47.5079, 45.0, 6},
		{"Fissures Ivandry", "Fissures longitudinales après les pluies", entity.StatutNouveau, -18.8703, 47.5321, 8.0, 2},
		{"Chaussée effondrée Ankorondrano", "Effondrement partiel côté canal", entity.StatutEnCours, -18.8833, 47.5210, 60.0, 8},
		{"Réparation terminée Ambohijatovo", "Resurfaçage complet livré", entity.StatutTermine, -18.9149, 47.5269, 30.0, 4},
	}
	now := time.Now()
	for i, p := range points {
		surface := decimal.NewFromFloat(p.surface)
		bdg, err := calc.Compute(p.niveau, surface)
		if err != nil {
			log.Fatal().Err(err).Msg("cálculo de budget")
		}
		reported := now.AddDate(0, 0, -(len(points) - i))
		s := &entity.Signalement{
			Titre:           p.titre,
			Description:     p.desc,
			Latitude:        p.lat,
			Longitude:       p.lng,
			DateSignalement: reported,
			Statut:          p.statut,
			SurfaceM2:       surface,
			Budget:          bdg,
			Niveau:          p.niveau,
			DateNouveau:     &reported,
		}
		if p.statut == entity.StatutEnCours || p.statut == entity.StatutTermine {
			t := reported.Add(24 * time.Hour)
			s.DateEnCours = &t
		}
		if p.statut == entity.StatutTermine {
			t := reported.Add(72 * time.Hour)
			s.DateTermine = &t
			s.Entreprise = "Colas Madagascar"
		}
		if err := sigRepo.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("titre", p.titre).Msg("creando signalement")
		}
		log.Info().Int64("id", s.ID).Str("titre", p.titre).Msg("signalement creado")
	}

	log.Info().Msg("seed completado")
}
