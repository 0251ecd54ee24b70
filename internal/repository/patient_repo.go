package repository

import (
	"context"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
)

type PatientRepository struct {
	db DBTX
}

func NewPatientRepository(db DBTX) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (name, dob)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, patient.Name, patient.DateOfBirth).
		Scan(&patient.ID)
}

func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	query := `
		SELECT id, name, dob
		FROM patients
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		var patient models.Patient
		if err := rows.Scan(&patient.ID, &patient.Name, &patient.DateOfBirth); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}

func (r *PatientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
