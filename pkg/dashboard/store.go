package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
)

// MinLeadTime is the client-side booking policy: an appointment must start
// at least this far in the future. The server does not re-check it.
const MinLeadTime = time.Hour

var (
	// ErrUpdatePending is returned when a status change is re-invoked for a
	// row whose previous change has not settled; the row's action control is
	// disabled for exactly this window.
	ErrUpdatePending  = errors.New("a status update for this session is already pending")
	ErrUnknownSession = errors.New("session is not in the local list")
)

// Store holds the dashboard's transient copy of the session list and
// reconciles it with the server. Status changes are applied optimistically
// and reverted if the authoritative write fails; creates are never applied
// optimistically, the list is refetched instead.
//
// The lock is never held across a network call. Pending bookkeeping is
// per-row, so updates to different rows proceed independently.
type Store struct {
	client Client
	now    func() time.Time

	mu      sync.Mutex
	state   ViewState
	pending map[int64]bool
	banner  string
}

func NewStore(client Client) *Store {
	return &Store{
		client:  client,
		now:     time.Now,
		pending: make(map[int64]bool),
	}
}

// Refresh replaces the session snapshot with the server's authoritative
// list. On failure the previous snapshot is kept so the caller can offer a
// retry control over stale data.
func (s *Store) Refresh(ctx context.Context) error {
	sessions, err := s.client.FetchSessions(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.Sessions = sessions
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the view state; the sessions slice is cloned
// so callers cannot alias the store's internal list.
func (s *Store) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Sessions = append([]models.SessionWithDetails(nil), s.state.Sessions...)
	return snapshot
}

func (s *Store) Visible() []models.SessionWithDetails {
	return s.Snapshot().Visible()
}

func (s *Store) IsPending(sessionID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[sessionID]
}

// Banner returns the transient error banner and clears it, matching an
// auto-dismissing notification.
func (s *Store) Banner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	banner := s.banner
	s.banner = ""
	return banner
}

func (s *Store) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.StatusFilter = status
	s.state.Page = 1
}

func (s *Store) SetSort(field SortField, asc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = field
	s.state.SortAsc = asc
}

func (s *Store) SetPage(page, pageSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = page
	s.state.PageSize = pageSize
}

// statusCommand is the two-phase optimistic mutation: begin applies the
// local change and records what to restore; confirm and revert settle it.
type statusCommand struct {
	sessionID      int64
	originalStatus string
}

// MarkCompleted optimistically flips the row to Completed, issues the
// authoritative PATCH, and either confirms (any success, including a
// server-reported no-op) or reverts the row to its original status. Failure
// handling never touches any other row's state.
func (s *Store) MarkCompleted(ctx context.Context, sessionID int64) error {
	cmd, err := s.begin(sessionID, models.StatusCompleted)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateSessionStatus(ctx, sessionID, models.StatusCompleted)
	if err != nil {
		s.revert(cmd, err)
		return err
	}

	s.confirm(cmd)
	return nil
}

func (s *Store) begin(sessionID int64, nextStatus string) (statusCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[sessionID] {
		return statusCommand{}, ErrUpdatePending
	}

	idx := s.indexOf(sessionID)
	if idx < 0 {
		return statusCommand{}, ErrUnknownSession
	}

	cmd := statusCommand{
		sessionID:      sessionID,
		originalStatus: s.state.Sessions[idx].Status,
	}
	s.state.Sessions[idx].Status = nextStatus
	s.pending[sessionID] = true
	return cmd, nil
}

func (s *Store) confirm(cmd statusCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, cmd.sessionID)
}

func (s *Store) revert(cmd statusCommand, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(cmd.sessionID); idx >= 0 {
		s.state.Sessions[idx].Status = cmd.originalStatus
	}
	delete(s.pending, cmd.sessionID)
	s.banner = fmt.Sprintf("Failed to update session: %v", cause)
}

// indexOf requires s.mu to be held.
func (s *Store) indexOf(sessionID int64) int {
	for i := range s.state.Sessions {
		if s.state.Sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

// CreateSession validates the form input against the client-side policy,
// submits it, and refetches the authoritative list on success rather than
// guessing the server-assigned id and joined names. On failure the input is
// untouched so the form keeps the user's values.
func (s *Store) CreateSession(ctx context.Context, input CreateSessionInput) error {
	if details := s.validateCreateInput(input); len(details) > 0 {
		return &APIError{
			Kind:    KindInvalidInput,
			Message: "Validation failed",
			Details: details,
		}
	}

	if _, err := s.client.CreateSession(ctx, input); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

func (s *Store) validateCreateInput(input CreateSessionInput) []models.FieldError {
	var details []models.FieldError
	if input.TherapistID <= 0 {
		details = append(details, models.FieldError{
			Field:   "therapist_id",
			Message: "therapist_id must be a positive integer",
		})
	}
	if input.PatientID <= 0 {
		details = append(details, models.FieldError{
			Field:   "patient_id",
			Message: "patient_id must be a positive integer",
		})
	}
	if input.Date.IsZero() {
		details = append(details, models.FieldError{
			Field:   "date",
			Message: "date is required",
		})
	} else if !input.Date.After(s.now().Add(MinLeadTime)) {
		details = append(details, models.FieldError{
			Field:   "date",
			Message: "date must be at least 1 hour in the future",
		})
	}
	return details
}
