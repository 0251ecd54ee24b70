package handlers

import (
	"github.com/d-rovere/TherapyDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler serves the read-only therapist and patient lists that
// back the create-session form dropdowns.
type DirectoryHandler struct {
	service schedulingService
	devMode bool
}

func NewDirectoryHandler(service *services.SchedulingService, devMode bool) *DirectoryHandler {
	return &DirectoryHandler{service: service, devMode: devMode}
}

func (h *DirectoryHandler) ListTherapists(c *fiber.Ctx) error {
	therapists, err := h.service.ListTherapists(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	c.Set(fiber.HeaderCacheControl, listCacheControl)
	return c.JSON(therapists)
}

func (h *DirectoryHandler) ListPatients(c *fiber.Ctx) error {
	patients, err := h.service.ListPatients(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	c.Set(fiber.HeaderCacheControl, listCacheControl)
	return c.JSON(patients)
}

func (h *DirectoryHandler) internalError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": "Failed to load directory data"}
	if h.devMode {
		body["detail"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
