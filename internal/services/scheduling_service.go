package services

import (
	"context"
	"errors"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/d-rovere/TherapyDeskBack/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTherapistNotFound = errors.New("therapist not found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidStatus     = errors.New("invalid status")
)

type sessionStore interface {
	Create(ctx context.Context, input repository.CreateSessionInput) (*models.Session, error)
	GetByID(ctx context.Context, sessionID int64) (*models.Session, error)
	GetWithDetails(ctx context.Context, sessionID int64) (*models.SessionWithDetails, error)
	ListWithDetails(ctx context.Context) ([]models.SessionWithDetails, error)
	UpdateStatus(ctx context.Context, sessionID int64, status string) (*models.Session, error)
}

type therapistStore interface {
	List(ctx context.Context) ([]models.Therapist, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type patientStore interface {
	List(ctx context.Context) ([]models.Patient, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type SchedulingService struct {
	sessionRepo   sessionStore
	therapistRepo therapistStore
	patientRepo   patientStore
}

func NewSchedulingService(
	sessionRepo *repository.SessionRepository,
	therapistRepo *repository.TherapistRepository,
	patientRepo *repository.PatientRepository,
) *SchedulingService {
	return &SchedulingService{
		sessionRepo:   sessionRepo,
		therapistRepo: therapistRepo,
		patientRepo:   patientRepo,
	}
}

type CreateSessionInput struct {
	TherapistID int64
	PatientID   int64
	Date        time.Time
}

// CreateSession verifies both foreign ids before inserting. The schema also
// carries FK constraints, so a reference that disappears between the check
// and the insert still surfaces as a not-found error rather than a 500.
func (s *SchedulingService) CreateSession(
	ctx context.Context,
	input CreateSessionInput,
) (*models.SessionWithDetails, error) {
	exists, err := s.therapistRepo.Exists(ctx, input.TherapistID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTherapistNotFound
	}

	exists, err = s.patientRepo.Exists(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	session, err := s.sessionRepo.Create(ctx, repository.CreateSessionInput{
		TherapistID: input.TherapistID,
		PatientID:   input.PatientID,
		Date:        input.Date.UTC(),
	})
	if err != nil {
		if constraint := foreignKeyConstraint(err); constraint != "" {
			if constraint == "sessions_patient_id_fkey" {
				return nil, ErrPatientNotFound
			}
			return nil, ErrTherapistNotFound
		}
		return nil, err
	}

	return s.sessionRepo.GetWithDetails(ctx, session.ID)
}

// UpdateStatus transitions a session to the requested status. If the session
// already has that status the call is an idempotent no-op: the unchanged row
// is returned with changed=false and storage is not touched.
func (s *SchedulingService) UpdateStatus(
	ctx context.Context,
	sessionID int64,
	status string,
) (*models.Session, bool, error) {
	if _, ok := models.AllowedStatuses[status]; !ok {
		return nil, false, ErrInvalidStatus
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrSessionNotFound
		}
		return nil, false, err
	}

	if session.Status == status {
		return session, false, nil
	}

	updated, err := s.sessionRepo.UpdateStatus(ctx, sessionID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrSessionNotFound
		}
		return nil, false, err
	}
	return updated, true, nil
}

func (s *SchedulingService) ListSessions(ctx context.Context) ([]models.SessionWithDetails, error) {
	return s.sessionRepo.ListWithDetails(ctx)
}

func (s *SchedulingService) ListTherapists(ctx context.Context) ([]models.Therapist, error) {
	return s.therapistRepo.List(ctx)
}

func (s *SchedulingService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return s.patientRepo.List(ctx)
}

func foreignKeyConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgErr.ConstraintName
	}
	return ""
}
