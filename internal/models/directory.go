package models

import "time"

// Therapists and patients are created by the seed binary only; the API
// exposes no update or delete path for either table.

type Therapist struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Specialty *string `json:"specialty"`
}

type Patient struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DateOfBirth *time.Time `json:"dob"`
}

// FieldError is one entry of a validation failure, addressed to a single
// request field so the client can render feedback next to it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
