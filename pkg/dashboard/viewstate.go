package dashboard

import (
	"sort"
	"strings"

	"github.com/d-rovere/TherapyDeskBack/internal/models"
)

type SortField string

const (
	SortByDate      SortField = "date"
	SortByTherapist SortField = "therapist"
	SortByPatient   SortField = "patient"
	SortByStatus    SortField = "status"
)

// ViewState is the full serializable rendering state of the session list:
// the server snapshot plus filter, sort and pagination settings. Visible()
// is the single pure pipeline that produces what the table shows, so the
// reconciliation logic can be tested without a rendering environment.
type ViewState struct {
	Sessions     []models.SessionWithDetails `json:"sessions"`
	StatusFilter string                      `json:"status_filter"`
	SortBy       SortField                   `json:"sort_by"`
	SortAsc      bool                        `json:"sort_asc"`
	Page         int                         `json:"page"`
	PageSize     int                         `json:"page_size"`
}

// Visible applies filter, then sort, then pagination. The receiver is never
// mutated; the returned slice is a fresh copy.
func (v ViewState) Visible() []models.SessionWithDetails {
	filtered := v.filter()
	v.sortInPlace(filtered)
	return v.paginate(filtered)
}

// TotalPages reports the page count after filtering. Zero when pagination
// is disabled.
func (v ViewState) TotalPages() int {
	if v.PageSize <= 0 {
		return 0
	}
	total := len(v.filter())
	if total == 0 {
		return 0
	}
	return (total + v.PageSize - 1) / v.PageSize
}

func (v ViewState) filter() []models.SessionWithDetails {
	out := make([]models.SessionWithDetails, 0, len(v.Sessions))
	for _, session := range v.Sessions {
		if v.StatusFilter != "" && session.Status != v.StatusFilter {
			continue
		}
		out = append(out, session)
	}
	return out
}

func (v ViewState) sortInPlace(sessions []models.SessionWithDetails) {
	field := v.SortBy
	if field == "" {
		field = SortByDate
	}
	asc := v.SortAsc
	if field == SortByDate && v.SortBy == "" {
		asc = true
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		var less, equal bool
		switch field {
		case SortByTherapist:
			cmp := strings.Compare(a.TherapistName, b.TherapistName)
			less, equal = cmp < 0, cmp == 0
		case SortByPatient:
			cmp := strings.Compare(a.PatientName, b.PatientName)
			less, equal = cmp < 0, cmp == 0
		case SortByStatus:
			cmp := strings.Compare(a.Status, b.Status)
			less, equal = cmp < 0, cmp == 0
		default:
			less = a.Date.Before(b.Date)
			equal = a.Date.Equal(b.Date)
		}
		if equal {
			// stable tie-break so pagination boundaries never shift
			return a.ID < b.ID
		}
		if asc {
			return less
		}
		return !less
	})
}

func (v ViewState) paginate(sessions []models.SessionWithDetails) []models.SessionWithDetails {
	if v.PageSize <= 0 {
		return sessions
	}

	page := v.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * v.PageSize
	if start >= len(sessions) {
		return []models.SessionWithDetails{}
	}
	end := start + v.PageSize
	if end > len(sessions) {
		end = len(sessions)
	}
	return sessions[start:end]
}
