package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
)

// ErrorKind is the closed set of failure categories the dashboard handles.
// Every non-success server response and every transport failure is folded
// into one of these immediately after parsing; nothing downstream sees raw
// HTTP status codes or untyped JSON.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindNotFound     ErrorKind = "not_found"
	KindUnavailable  ErrorKind = "unavailable"
	KindNetwork      ErrorKind = "network"
)

type APIError struct {
	Kind    ErrorKind
	Message string
	Details []models.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

type CreateSessionInput struct {
	TherapistID int64
	PatientID   int64
	Date        time.Time
}

// UpdateStatusResult carries the server's view of the row after a PATCH.
// NoChange is set when the server reports an idempotent no-op; the caller
// treats both outcomes as success.
type UpdateStatusResult struct {
	Session  models.Session
	NoChange bool
}

type Client interface {
	FetchSessions(ctx context.Context) ([]models.SessionWithDetails, error)
	FetchTherapists(ctx context.Context) ([]models.Therapist, error)
	FetchPatients(ctx context.Context) ([]models.Patient, error)
	CreateSession(ctx context.Context, input CreateSessionInput) (*models.SessionWithDetails, error)
	UpdateSessionStatus(ctx context.Context, sessionID int64, status string) (*UpdateStatusResult, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (c *HTTPClient) FetchSessions(ctx context.Context) ([]models.SessionWithDetails, error) {
	var sessions []models.SessionWithDetails
	if err := c.get(ctx, "/api/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) FetchTherapists(ctx context.Context) ([]models.Therapist, error) {
	var therapists []models.Therapist
	if err := c.get(ctx, "/api/therapists", &therapists); err != nil {
		return nil, err
	}
	return therapists, nil
}

func (c *HTTPClient) FetchPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := c.get(ctx, "/api/patients", &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *HTTPClient) CreateSession(
	ctx context.Context,
	input CreateSessionInput,
) (*models.SessionWithDetails, error) {
	payload := map[string]any{
		"therapist_id": input.TherapistID,
		"patient_id":   input.PatientID,
		"date":         input.Date.UTC().Format(time.RFC3339),
	}

	var created models.SessionWithDetails
	if err := c.send(ctx, http.MethodPost, "/api/sessions", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateSessionStatus(
	ctx context.Context,
	sessionID int64,
	status string,
) (*UpdateStatusResult, error) {
	path := "/api/sessions/" + strconv.FormatInt(sessionID, 10)
	payload := map[string]any{"status": status}

	var body struct {
		models.Session
		Message string `json:"message"`
	}
	if err := c.send(ctx, http.MethodPatch, path, payload, &body); err != nil {
		return nil, err
	}
	return &UpdateStatusResult{
		Session:  body.Session,
		NoChange: body.Message != "",
	}, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("build request: %v", err)}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("%s %s: %v", method, path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func decodeErrorResponse(resp *http.Response) *APIError {
	kind := KindUnavailable
	switch resp.StatusCode {
	case http.StatusBadRequest:
		kind = KindInvalidInput
	case http.StatusNotFound:
		kind = KindNotFound
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error   string              `json:"error"`
		Details []models.FieldError `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return &APIError{
			Kind:    kind,
			Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
	}

	return &APIError{Kind: kind, Message: body.Error, Details: body.Details}
}
