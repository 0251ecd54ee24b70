package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/gofiber/fiber/v2"
)

func TestListTherapistsReturnsArray(t *testing.T) {
	specialty := "CBT"
	service := &stubSchedulingService{
		therapists: []models.Therapist{
			{ID: 1, Name: "Dr. Amara Osei", Specialty: &specialty},
			{ID: 2, Name: "Dr. Elena Petrova"},
		},
	}
	handler := &DirectoryHandler{service: service}

	app := fiber.New()
	app.Get("/api/therapists", handler.ListTherapists)

	req := httptest.NewRequest(http.MethodGet, "/api/therapists", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cache-Control"); !strings.Contains(got, "max-age=30") {
		t.Fatalf("expected cache header, got %q", got)
	}

	var body []models.Therapist
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body) != 2 || body[0].Name != "Dr. Amara Osei" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestListPatientsReturnsArray(t *testing.T) {
	service := &stubSchedulingService{
		patients: []models.Patient{
			{ID: 1, Name: "Jonas Berg"},
		},
	}
	handler := &DirectoryHandler{service: service}

	app := fiber.New()
	app.Get("/api/patients", handler.ListPatients)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body []models.Patient
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body) != 1 || body[0].Name != "Jonas Berg" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
