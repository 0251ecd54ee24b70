package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/d-rovere/TherapyDeskBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubSessionStore struct {
	session      *models.Session
	getErr       error
	created      *models.Session
	createErr    error
	createCalls  int
	updated      *models.Session
	updateErr    error
	updateCalls  int
	detail       *models.SessionWithDetails
	list         []models.SessionWithDetails
	lastStatus   string
	lastCreated  repository.CreateSessionInput
}

func (s *stubSessionStore) Create(_ context.Context, input repository.CreateSessionInput) (*models.Session, error) {
	s.createCalls++
	s.lastCreated = input
	return s.created, s.createErr
}

func (s *stubSessionStore) GetByID(_ context.Context, _ int64) (*models.Session, error) {
	return s.session, s.getErr
}

func (s *stubSessionStore) GetWithDetails(_ context.Context, _ int64) (*models.SessionWithDetails, error) {
	return s.detail, nil
}

func (s *stubSessionStore) ListWithDetails(_ context.Context) ([]models.SessionWithDetails, error) {
	return s.list, nil
}

func (s *stubSessionStore) UpdateStatus(_ context.Context, _ int64, status string) (*models.Session, error) {
	s.updateCalls++
	s.lastStatus = status
	return s.updated, s.updateErr
}

type stubDirectoryStore struct {
	exists    bool
	existsErr error
}

func (s *stubDirectoryStore) List(_ context.Context) ([]models.Therapist, error) { return nil, nil }

func (s *stubDirectoryStore) Exists(_ context.Context, _ int64) (bool, error) {
	return s.exists, s.existsErr
}

type stubPatientStore struct {
	exists    bool
	existsErr error
}

func (s *stubPatientStore) List(_ context.Context) ([]models.Patient, error) { return nil, nil }

func (s *stubPatientStore) Exists(_ context.Context, _ int64) (bool, error) {
	return s.exists, s.existsErr
}

func TestUpdateStatusIsIdempotentWhenUnchanged(t *testing.T) {
	sessionStore := &stubSessionStore{
		session: &models.Session{ID: 7, Status: models.StatusCompleted},
	}
	service := &SchedulingService{sessionRepo: sessionStore}

	for i := 0; i < 2; i++ {
		session, changed, err := service.UpdateStatus(context.Background(), 7, models.StatusCompleted)
		if err != nil {
			t.Fatalf("UpdateStatus call %d: %v", i+1, err)
		}
		if changed {
			t.Fatalf("expected no-op on call %d", i+1)
		}
		if session.Status != models.StatusCompleted {
			t.Fatalf("unexpected status %q", session.Status)
		}
	}

	if sessionStore.updateCalls != 0 {
		t.Fatalf("expected storage untouched on no-op, got %d writes", sessionStore.updateCalls)
	}
}

func TestUpdateStatusPersistsChange(t *testing.T) {
	sessionStore := &stubSessionStore{
		session: &models.Session{ID: 7, Status: models.StatusScheduled},
		updated: &models.Session{ID: 7, Status: models.StatusCompleted},
	}
	service := &SchedulingService{sessionRepo: sessionStore}

	session, changed, err := service.UpdateStatus(context.Background(), 7, models.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !changed {
		t.Fatal("expected a real change")
	}
	if session.Status != models.StatusCompleted {
		t.Fatalf("unexpected status %q", session.Status)
	}
	if sessionStore.lastStatus != models.StatusCompleted {
		t.Fatalf("unexpected persisted status %q", sessionStore.lastStatus)
	}
}

func TestUpdateStatusMapsMissingRow(t *testing.T) {
	sessionStore := &stubSessionStore{getErr: pgx.ErrNoRows}
	service := &SchedulingService{sessionRepo: sessionStore}

	_, _, err := service.UpdateStatus(context.Background(), 999999, models.StatusCompleted)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	sessionStore := &stubSessionStore{}
	service := &SchedulingService{sessionRepo: sessionStore}

	_, _, err := service.UpdateStatus(context.Background(), 7, "Cancelled")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if sessionStore.updateCalls != 0 {
		t.Fatal("expected no storage access for an invalid status")
	}
}

func TestCreateSessionRejectsUnknownTherapist(t *testing.T) {
	sessionStore := &stubSessionStore{}
	service := &SchedulingService{
		sessionRepo:   sessionStore,
		therapistRepo: &stubDirectoryStore{exists: false},
		patientRepo:   &stubPatientStore{exists: true},
	}

	_, err := service.CreateSession(context.Background(), CreateSessionInput{
		TherapistID: 42,
		PatientID:   1,
		Date:        time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrTherapistNotFound) {
		t.Fatalf("expected ErrTherapistNotFound, got %v", err)
	}
	if sessionStore.createCalls != 0 {
		t.Fatal("expected no insert for unknown therapist")
	}
}

func TestCreateSessionRejectsUnknownPatient(t *testing.T) {
	sessionStore := &stubSessionStore{}
	service := &SchedulingService{
		sessionRepo:   sessionStore,
		therapistRepo: &stubDirectoryStore{exists: true},
		patientRepo:   &stubPatientStore{exists: false},
	}

	_, err := service.CreateSession(context.Background(), CreateSessionInput{
		TherapistID: 1,
		PatientID:   42,
		Date:        time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if sessionStore.createCalls != 0 {
		t.Fatal("expected no insert for unknown patient")
	}
}

func TestCreateSessionReturnsJoinedDetail(t *testing.T) {
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	sessionStore := &stubSessionStore{
		created: &models.Session{ID: 14, TherapistID: 1, PatientID: 1, Status: models.StatusScheduled},
		detail: &models.SessionWithDetails{
			Session:       models.Session{ID: 14, Status: models.StatusScheduled},
			TherapistName: "Dr. Amara Osei",
			PatientName:   "Jonas Berg",
		},
	}
	service := &SchedulingService{
		sessionRepo:   sessionStore,
		therapistRepo: &stubDirectoryStore{exists: true},
		patientRepo:   &stubPatientStore{exists: true},
	}

	detail, err := service.CreateSession(context.Background(), CreateSessionInput{
		TherapistID: 1,
		PatientID:   1,
		Date:        date,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if detail.TherapistName != "Dr. Amara Osei" || detail.PatientName != "Jonas Berg" {
		t.Fatalf("expected joined names, got %+v", detail)
	}
	if loc := sessionStore.lastCreated.Date.Location(); loc != time.UTC {
		t.Fatalf("expected UTC-normalized date, got %v", loc)
	}
}
