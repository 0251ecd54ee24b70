package handlers

import (
	"reflect"
	"strings"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type createSessionRequest struct {
	TherapistID int64  `json:"therapist_id" validate:"required,gt=0"`
	PatientID   int64  `json:"patient_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required"`
}

type updateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Scheduled Completed"`
}

// validateCreateSessionRequest collects one detail entry per failing field,
// not just the first. The parsed timestamp is only meaningful when the
// returned slice is empty.
func validateCreateSessionRequest(req createSessionRequest) (time.Time, []models.FieldError) {
	details := collectFieldErrors(validate.Struct(req))

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			details = append(details, models.FieldError{
				Field:   "date",
				Message: "date must be a valid RFC3339 timestamp",
			})
		} else {
			date = parsed
		}
	}

	return date, details
}

func validateUpdateSessionStatusRequest(req updateSessionStatusRequest) []models.FieldError {
	return collectFieldErrors(validate.Struct(req))
}

func collectFieldErrors(err error) []models.FieldError {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldError{{Field: "", Message: "invalid request"}}
	}

	details := make([]models.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		details = append(details, models.FieldError{
			Field:   fieldError.Field(),
			Message: fieldErrorMessage(fieldError),
		})
	}
	return details
}

func fieldErrorMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fieldError.Field() + " is required"
	case "gt":
		return fieldError.Field() + " must be a positive integer"
	case "oneof":
		return fieldError.Field() + " must be one of: Scheduled, Completed"
	default:
		return fieldError.Field() + " is invalid"
	}
}
