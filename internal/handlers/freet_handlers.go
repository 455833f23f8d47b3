package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"
)

// CreateFreetRequest represents a request to create a new freet
type CreateFreetRequest struct {
	Content string `json:"content"`
}

// EditFreetRequest represents a request to edit an existing freet
type EditFreetRequest struct {
	Content string `json:"content"`
}

// HandleListFreets returns all freets, or the freets of one author when the
// author query parameter names a user.
func (s *Server) HandleListFreets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			freets []*models.Freet
			err    error
		)

		if author := r.URL.Query().Get("author"); author != "" {
			freets, err = s.Freets.FreetsByUsername(r.Context(), author)
		} else {
			freets, err = s.Freets.AllFreets(r.Context())
		}
		if err != nil {
			s.respondError(w, err)
			return
		}

		response := make([]api.FreetResponse, 0, len(freets))
		for _, freet := range freets {
			username, err := s.username(r.Context(), freet.AuthorID)
			if err != nil {
				s.respondError(w, err)
				return
			}
			response = append(response, api.NewFreetResponse(freet, username))
		}

		s.respondJSON(w, http.StatusOK, response)
	}
}

// HandleCreateFreet creates a freet authored by the session user.
func (s *Server) HandleCreateFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req CreateFreetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if appErr := validateContent(req.Content); appErr != nil {
			s.respondError(w, appErr)
			return
		}

		freet, err := s.Freets.CreateFreet(r.Context(), actor.ID, req.Content)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your freet was created successfully.",
			"freet":   api.NewFreetResponse(freet, actor.Username),
		})
	}
}

// HandleUpdateFreet replaces the content of the freet loaded by FreetCtx.
func (s *Server) HandleUpdateFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		freet := freetFromContext(r.Context())

		var req EditFreetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if appErr := validateContent(req.Content); appErr != nil {
			s.respondError(w, appErr)
			return
		}

		updated, err := s.Freets.UpdateFreet(r.Context(), freet.ID, req.Content)
		if err != nil {
			s.respondError(w, err)
			return
		}

		username, err := s.username(r.Context(), updated.AuthorID)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Your freet was updated successfully.",
			"freet":   api.NewFreetResponse(updated, username),
		})
	}
}

// HandleDeleteFreet removes the freet loaded by FreetCtx. Comments and
// reactions referencing it stay behind.
func (s *Server) HandleDeleteFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		freet := freetFromContext(r.Context())

		deleted, err := s.Freets.DeleteFreet(r.Context(), freet.ID)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if !deleted {
			s.respondError(w, utils.NewFreetNotFoundError(freet.ID.Hex()))
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "Your freet was deleted successfully.",
		})
	}
}
