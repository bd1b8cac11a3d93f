package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/auth"
	"github.com/tahiry-dev/lalana-api/internal/application/report"
	appsync "github.com/tahiry-dev/lalana-api/internal/application/sync"
	"github.com/tahiry-dev/lalana-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	SignalementUC *usecase.SignalementUseCase
	PhotoUC       *usecase.PhotoUseCase
	UserUC        *usecase.UserUseCase
	StatsUC       *usecase.StatsUseCase
	SyncUC        *appsync.UseCase
	ReportUC      *report.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/check-manager", authHandler.CheckManager)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Signalements (protegido)
	signalementHandler := NewSignalementHandler(deps.SignalementUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	// La lectura queda abierta a cualquier cuenta autenticada; toda mutación
	// y el reporte son del manager.
	sigs := protected.Group("/signalements")
	sigs.Post("/", RequireManager(), signalementHandler.Create)
	sigs.Get("/", signalementHandler.List)
	// El sufijo fijo va antes que el parámetro :id para que Fiber no lo capture.
	sigs.Get("/report/pdf", RequireManager(), reportHandler.PDF)
	sigs.Get("/:id", signalementHandler.GetByID)
	sigs.Put("/:id", RequireManager(), signalementHandler.Update)
	sigs.Put("/:id/status", RequireManager(), signalementHandler.UpdateStatus)
	sigs.Delete("/:id", RequireManager(), signalementHandler.Delete)

	// Fotos (protegido)
	photoHandler := NewPhotoHandler(deps.PhotoUC)
	sigs.Post("/:id/photos/url", photoHandler.Add)
	sigs.Get("/:id/photos", photoHandler.List)
	sigs.Get("/:id/photos/count", photoHandler.Count)
	sigs.Delete("/:id/photos/:photoId", photoHandler.Delete)

	// Sincronización con el almacén de documentos (protegido, solo manager)
	syncHandler := NewSyncHandler(deps.SyncUC)
	firebase := protected.Group("/firebase", RequireManager())
	firebase.Post("/signalements/sync", syncHandler.Export)
	firebase.Post("/signalements/import", syncHandler.Import)
	firebase.Get("/signalements", syncHandler.PullAll)

	// Usuarios (protegido, solo manager)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireManager())
	users.Get("/", userHandler.List)
	users.Post("/sync", userHandler.Sync)

	// Administración de cuentas (protegido, solo manager)
	admin := protected.Group("/admin", RequireManager())
	admin.Put("/users/:id/lock", userHandler.Lock)
	admin.Put("/users/:id/unlock", userHandler.Unlock)

	// Estadísticas (protegido, solo manager)
	statsHandler := NewStatsHandler(deps.StatsUC)
	stats := protected.Group("/stats", RequireManager())
	stats.Get("/", statsHandler.Global)
	stats.Get("/traitement", statsHandler.Traitement)
}
