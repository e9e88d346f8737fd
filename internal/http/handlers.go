package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ritmo/internal/core"
	applog "ritmo/internal/log"
	"ritmo/internal/services"
)

// Tracker is the slice of the tracker service the handlers need.
type Tracker interface {
	Snapshot(ctx context.Context, r core.Range) services.Snapshot
	CreateActivity(ctx context.Context, a core.Activity) (core.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
	SearchActivities(r core.Range, category, query string) []core.Activity
	Goals() []core.Goal
	Categories() []string
}

// activityView is the wire shape of an activity.
type activityView struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	EntryTime string  `json:"entryTime,omitempty"`
	Category  string  `json:"category"`
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	Score     *int    `json:"score,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type goalView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Target    float64 `json:"target"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toActivityView(a core.Activity) activityView {
	return activityView{
		ID:        a.ID,
		Date:      a.DateKey(),
		EntryTime: a.EntryTime,
		Category:  a.Category,
		Name:      a.Name,
		Duration:  a.Duration,
		Score:     a.Score,
		Notes:     a.Notes,
	}
}

func toGoalView(g core.Goal) goalView {
	return goalView{
		ID:        g.ID,
		Name:      g.Name,
		Target:    g.Target,
		Unit:      g.Unit,
		Category:  g.Category,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}

// parseRangeParam reads the range query parameter, falling back to the
// configured default when it is absent or malformed.
func (s *Server) parseRangeParam(r *http.Request) core.Range {
	raw := r.URL.Query().Get("range")
	if raw == "" {
		return s.defaultRange
	}
	rng, err := core.ParseRange(raw)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Invalid range parameter",
			applog.FieldRange, raw, applog.FieldError, err)
		return s.defaultRange
	}
	return rng
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	snap := s.tracker.Snapshot(r.Context(), s.parseRangeParam(r))
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet:
		s.listActivities(w, r)
	case r.Method == http.MethodDelete,
		r.Method == http.MethodPost && r.URL.Query().Get("id") != "":
		s.deleteActivity(w, r)
	case r.Method == http.MethodPost:
		s.createActivity(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	rng := s.parseRangeParam(r)
	category := sanitizeInput(r.URL.Query().Get("category"))
	query := sanitizeInput(r.URL.Query().Get("q"))

	list := s.tracker.SearchActivities(rng, category, query)
	views := make([]activityView, 0, len(list))
	for _, a := range list {
		views = append(views, toActivityView(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activities": views,
		"count":      len(views),
	})
}

func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	a, err := parseActivityRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.tracker.CreateActivity(r.Context(), a)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Activity create error", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save activity")
		return
	}
	writeJSON(w, http.StatusCreated, toActivityView(saved))
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.tracker.DeleteActivity(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Activity delete error",
			applog.FieldActivityID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not delete activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet:
		goals := s.tracker.Goals()
		views := make([]goalView, 0, len(goals))
		for _, g := range goals {
			views = append(views, toGoalView(g))
		}
		writeJSON(w, http.StatusOK, map[string]any{"goals": views, "count": len(views)})
	case r.Method == http.MethodDelete,
		r.Method == http.MethodPost && r.URL.Query().Get("id") != "":
		s.deleteGoal(w, r)
	case r.Method == http.MethodPost:
		s.createGoal(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	g, err := parseGoalRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.tracker.CreateGoal(r.Context(), g)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Goal create error", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save goal")
		return
	}
	writeJSON(w, http.StatusCreated, toGoalView(saved))
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.tracker.DeleteGoal(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Goal delete error",
			applog.FieldGoalID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.tracker.Categories()})
}
