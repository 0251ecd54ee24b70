package repository

import (
	"context"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
)

type CreateSessionInput struct {
	TherapistID int64
	PatientID   int64
	Date        time.Time
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session. The status is always 'Scheduled' at the SQL
// level; client input never reaches the column.
func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := `
		INSERT INTO sessions (therapist_id, patient_id, date, status)
		VALUES ($1, $2, $3, 'Scheduled')
		RETURNING id, therapist_id, patient_id, date, status
	`

	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.TherapistID,
		input.PatientID,
		input.Date,
	).Scan(
		&session.ID,
		&session.TherapistID,
		&session.PatientID,
		&session.Date,
		&session.Status,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `
		SELECT id, therapist_id, patient_id, date, status
		FROM sessions
		WHERE id = $1
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.TherapistID,
		&session.PatientID,
		&session.Date,
		&session.Status,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetWithDetails returns a single session joined with therapist and patient
// names, used for the create response.
func (r *SessionRepository) GetWithDetails(
	ctx context.Context,
	sessionID int64,
) (*models.SessionWithDetails, error) {
	query := `
		SELECT s.id, s.therapist_id, s.patient_id, s.date, s.status,
		       COALESCE(t.name, ''), COALESCE(p.name, '')
		FROM sessions s
		LEFT JOIN therapists t ON t.id = s.therapist_id
		LEFT JOIN patients p ON p.id = s.patient_id
		WHERE s.id = $1
	`
	var detail models.SessionWithDetails
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&detail.ID,
		&detail.TherapistID,
		&detail.PatientID,
		&detail.Date,
		&detail.Status,
		&detail.TherapistName,
		&detail.PatientName,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListWithDetails left-joins sessions to both directory tables. A dangling
// reference produces an empty name, never a dropped row.
func (r *SessionRepository) ListWithDetails(
	ctx context.Context,
) ([]models.SessionWithDetails, error) {
	query := `
		SELECT s.id, s.therapist_id, s.patient_id, s.date, s.status,
		       COALESCE(t.name, ''), COALESCE(p.name, '')
		FROM sessions s
		LEFT JOIN therapists t ON t.id = s.therapist_id
		LEFT JOIN patients p ON p.id = s.patient_id
		ORDER BY s.date ASC, s.id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.SessionWithDetails, 0)
	for rows.Next() {
		var detail models.SessionWithDetails
		if err := rows.Scan(
			&detail.ID,
			&detail.TherapistID,
			&detail.PatientID,
			&detail.Date,
			&detail.Status,
			&detail.TherapistName,
			&detail.PatientName,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *SessionRepository) UpdateStatus(
	ctx context.Context,
	sessionID int64,
	status string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $2
		WHERE id = $1
		RETURNING id, therapist_id, patient_id, date, status
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, status).Scan(
		&session.ID,
		&session.TherapistID,
		&session.PatientID,
		&session.Date,
		&session.Status,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
