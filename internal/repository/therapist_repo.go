package repository

import (
	"context"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type TherapistRepository struct {
	db DBTX
}

func NewTherapistRepository(db DBTX) *TherapistRepository {
	return &TherapistRepository{db: db}
}

func (r *TherapistRepository) Create(ctx context.Context, therapist *models.Therapist) error {
	query := `
		INSERT INTO therapists (name, specialty)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, therapist.Name, therapist.Specialty).
		Scan(&therapist.ID)
}

func (r *TherapistRepository) List(ctx context.Context) ([]models.Therapist, error) {
	query := `
		SELECT id, name, specialty
		FROM therapists
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	therapists := make([]models.Therapist, 0)
	for rows.Next() {
		var therapist models.Therapist
		if err := rows.Scan(&therapist.ID, &therapist.Name, &therapist.Specialty); err != nil {
			return nil, err
		}
		therapists = append(therapists, therapist)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return therapists, nil
}

func (r *TherapistRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM therapists WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
