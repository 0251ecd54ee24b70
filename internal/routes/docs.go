package routes

import (
	"github.com/d-rovere/TherapyDeskBack/internal/config"
	"github.com/gofiber/fiber/v2"
)

const docsOpenAPIYAML = `openapi: "3.0.3"
info:
  title: TherapyDeskBack API
  version: "1.0"
paths:
  /api/sessions:
    get:
      summary: List sessions joined with therapist and patient names
      responses:
        "200":
          description: Sessions ordered by date ascending
    post:
      summary: Create a session (status is always Scheduled)
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [therapist_id, patient_id, date]
              properties:
                therapist_id: { type: integer, minimum: 1 }
                patient_id: { type: integer, minimum: 1 }
                date: { type: string, format: date-time }
      responses:
        "201": { description: Created session with joined names }
        "400": { description: Validation failure or unknown foreign id }
  /api/sessions/{id}:
    patch:
      summary: Update a session status (idempotent when unchanged)
      parameters:
        - name: id
          in: path
          required: true
          schema: { type: integer, minimum: 1 }
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [status]
              properties:
                status: { type: string, enum: [Scheduled, Completed] }
      responses:
        "200": { description: Updated session, or unchanged session with a message }
        "400": { description: Invalid id or status }
        "404": { description: Session not found }
  /api/therapists:
    get:
      summary: List therapists ordered by name
      responses:
        "200": { description: Therapist array }
  /api/patients:
    get:
      summary: List patients ordered by name
      responses:
        "200": { description: Patient array }
`

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>TherapyDeskBack API Docs</title>
</head>
<body>
  <h1>TherapyDeskBack API</h1>
  <p>Development-only API reference. The machine-readable spec is at
  <a href="/api/docs/openapi.yaml">openapi.yaml</a>.</p>
</body>
</html>
`

// registerDocsRoutes exposes the API reference only when docs are enabled
// and the server runs in development.
func registerDocsRoutes(app fiber.Router, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		applyDocsHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).SendString(docsIndexHTML)
	})
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsHeaders(c, "application/yaml; charset=utf-8")
		return c.Status(fiber.StatusOK).SendString(docsOpenAPIYAML)
	})
}

func applyDocsHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
