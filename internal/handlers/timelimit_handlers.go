package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"
)

// StartTimelimitRequest represents a request to start or replace the session
// user's timing record. StartTime defaults to now when omitted.
type StartTimelimitRequest struct {
	StartTime   *time.Time `json:"startTime,omitempty"`
	ElapsedTime int64      `json:"elapsedTime"`
}

// HandleGetTimelimit returns the session user's active timing record.
func (s *Server) HandleGetTimelimit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		timelimit, err := s.Timelimits.GetTimelimit(r.Context(), actor.Username)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, api.NewTimelimitResponse(timelimit, actor.Username))
	}
}

// HandleStartTimelimit starts or replaces the session user's timing record.
func (s *Server) HandleStartTimelimit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req StartTimelimitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if req.ElapsedTime < 0 {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "elapsedTime must not be negative", nil))
			return
		}

		startTime := time.Now()
		if req.StartTime != nil {
			startTime = *req.StartTime
		}

		timelimit, err := s.Timelimits.StartTimelimit(r.Context(), actor.Username, startTime, req.ElapsedTime)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message":   "Your timelimit was started successfully.",
			"timelimit": api.NewTimelimitResponse(timelimit, actor.Username),
		})
	}
}

// HandleDeleteTimelimit removes the session user's timing record.
func (s *Server) HandleDeleteTimelimit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		deleted, err := s.Timelimits.DeleteTimelimit(r.Context(), actor.Username)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if !deleted {
			s.respondError(w, utils.NewAppError(utils.ErrTimelimitNotFound, "Timelimit not found for user: "+actor.Username, nil))
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "Your timelimit was deleted successfully.",
		})
	}
}
