package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateFavoriteRequest represents a request to bookmark a URL
type CreateFavoriteRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HandleListFavorites returns the favorites of the author named by the
// author query parameter.
func (s *Server) HandleListFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author := r.URL.Query().Get("author")
		if author == "" {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "author query parameter is required", nil))
			return
		}

		favorites, err := s.Favorites.FavoritesByUsername(r.Context(), author)
		if err != nil {
			s.respondError(w, err)
			return
		}

		response := make([]api.FavoriteResponse, 0, len(favorites))
		for _, favorite := range favorites {
			response = append(response, api.NewFavoriteResponse(favorite, author))
		}

		s.respondJSON(w, http.StatusOK, response)
	}
}

// HandleCreateFavorite bookmarks a URL for the session user.
func (s *Server) HandleCreateFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req CreateFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.URL) == "" {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Favorite name and url are required", nil))
			return
		}

		favorite, err := s.Favorites.AddFavorite(r.Context(), actor.ID, req.Name, req.URL)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message":  "Your favorite was created successfully.",
			"favorite": api.NewFavoriteResponse(favorite, actor.Username),
		})
	}
}

// HandleDeleteFavorite removes a favorite owned by the session user.
func (s *Server) HandleDeleteFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "favoriteId"))
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrFavoriteNotFound, "Favorite not found: "+chi.URLParam(r, "favoriteId"), nil))
			return
		}

		favorite, err := s.Favorites.GetFavorite(r.Context(), id)
		if err != nil {
			s.respondError(w, err)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || favorite.AuthorID != userID {
			s.respondError(w, utils.NewForbiddenError("you are not the author of this favorite"))
			return
		}

		deleted, err := s.Favorites.DeleteFavorite(r.Context(), id)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if !deleted {
			s.respondError(w, utils.NewAppError(utils.ErrFavoriteNotFound, "Favorite not found: "+id.Hex(), nil))
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "Your favorite was deleted successfully.",
		})
	}
}
