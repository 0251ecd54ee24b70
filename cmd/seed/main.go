package main

import (
	"context"
	"log"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/config"
	"github.com/d-rovere/TherapyDeskBack/internal/database"
	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/d-rovere/TherapyDeskBack/internal/repository"
)

// Therapists and patients have no API create path; this binary is the
// administrative insert described by the data model.

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	ctx := context.Background()
	therapistRepo := repository.NewTherapistRepository(database.DB)
	patientRepo := repository.NewPatientRepository(database.DB)

	therapists := []models.Therapist{
		{Name: "Dr. Amara Osei", Specialty: strPtr("CBT")},
		{Name: "Dr. Elena Petrova", Specialty: strPtr("Family Therapy")},
		{Name: "Dr. Mateo Rivera", Specialty: nil},
	}
	for i := range therapists {
		if err := therapistRepo.Create(ctx, &therapists[i]); err != nil {
			log.Fatalf("Failed to seed therapist %q: %v", therapists[i].Name, err)
		}
		log.Printf("Seeded therapist %d: %s", therapists[i].ID, therapists[i].Name)
	}

	patients := []models.Patient{
		{Name: "Jonas Berg", DateOfBirth: datePtr(1988, time.April, 12)},
		{Name: "Priya Nair", DateOfBirth: datePtr(1995, time.September, 3)},
		{Name: "Sam Whitfield", DateOfBirth: nil},
	}
	for i := range patients {
		if err := patientRepo.Create(ctx, &patients[i]); err != nil {
			log.Fatalf("Failed to seed patient %q: %v", patients[i].Name, err)
		}
		log.Printf("Seeded patient %d: %s", patients[i].ID, patients[i].Name)
	}

	log.Println("Seed complete")
}
