package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
	"github.com/d-rovere/TherapyDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Reads carry a short freshness window because successful writes do not push
// invalidation to caches.
const listCacheControl = "private, max-age=30"

type SessionHandler struct {
	service schedulingService
	devMode bool
}

type schedulingService interface {
	CreateSession(ctx context.Context, input services.CreateSessionInput) (*models.SessionWithDetails, error)
	UpdateStatus(ctx context.Context, sessionID int64, status string) (*models.Session, bool, error)
	ListSessions(ctx context.Context) ([]models.SessionWithDetails, error)
	ListTherapists(ctx context.Context) ([]models.Therapist, error)
	ListPatients(ctx context.Context) ([]models.Patient, error)
}

func NewSessionHandler(service *services.SchedulingService, devMode bool) *SessionHandler {
	return &SessionHandler{service: service, devMode: devMode}
}

type updateSessionStatusResponse struct {
	models.Session
	Message string `json:"message,omitempty"`
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context())
	if err != nil {
		return h.mapSchedulingError(c, err)
	}

	c.Set(fiber.HeaderCacheControl, listCacheControl)
	return c.JSON(sessions)
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	date, details := validateCreateSessionRequest(req)
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": details,
		})
	}

	detail, err := h.service.CreateSession(c.Context(), services.CreateSessionInput{
		TherapistID: req.TherapistID,
		PatientID:   req.PatientID,
		Date:        date,
	})
	if err != nil {
		return h.mapSchedulingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var req updateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if details := validateUpdateSessionStatusRequest(req); len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": details,
		})
	}

	session, changed, err := h.service.UpdateStatus(c.Context(), sessionID, req.Status)
	if err != nil {
		return h.mapSchedulingError(c, err)
	}

	resp := updateSessionStatusResponse{Session: *session}
	if !changed {
		resp.Message = "Session already has the requested status; no change was needed"
	}
	return c.JSON(resp)
}

func (h *SessionHandler) mapSchedulingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTherapistNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "therapist_id does not reference an existing therapist",
		})
	case errors.Is(err, services.ErrPatientNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "patient_id does not reference an existing patient",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be one of: Scheduled, Completed",
		})
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	default:
		body := fiber.Map{"error": "Failed to process scheduling request"}
		if h.devMode {
			body["detail"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
