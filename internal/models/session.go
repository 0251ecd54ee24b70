package models

import "time"

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
)

// AllowedStatuses is the closed set of session statuses. Comparison is
// case-sensitive everywhere.
var AllowedStatuses = map[string]struct{}{
	StatusScheduled: {},
	StatusCompleted: {},
}

type Session struct {
	ID          int64     `json:"id"`
	TherapistID int64     `json:"therapist_id"`
	PatientID   int64     `json:"patient_id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

// SessionWithDetails is a read-only projection of Session joined with the
// referenced therapist and patient names. Missing references yield empty
// names, not omitted rows.
type SessionWithDetails struct {
	Session
	TherapistName string `json:"therapist_name"`
	PatientName   string `json:"patient_name"`
}
