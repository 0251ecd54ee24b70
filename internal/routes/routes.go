package routes

import (
	"github.com/d-rovere/TherapyDeskBack/internal/config"
	"github.com/d-rovere/TherapyDeskBack/internal/handlers"
	"github.com/d-rovere/TherapyDeskBack/internal/repository"
	"github.com/d-rovere/TherapyDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	therapistRepo := repository.NewTherapistRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	schedulingService := services.NewSchedulingService(sessionRepo, therapistRepo, patientRepo)
	devMode := cfg.AppEnv == "development"
	sessionHandler := handlers.NewSessionHandler(schedulingService, devMode)
	directoryHandler := handlers.NewDirectoryHandler(schedulingService, devMode)

	api := app.Group("/api")

	sessions := api.Group("/sessions")
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Patch("/:id", sessionHandler.UpdateStatus)

	api.Get("/therapists", directoryHandler.ListTherapists)
	api.Get("/patients", directoryHandler.ListPatients)

	registerDocsRoutes(api, cfg)
}
