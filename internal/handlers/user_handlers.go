package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUserRequest represents a request to create a new account
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest represents a request to change username and/or password
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// LoginRequest represents a request to open a session
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token for a successful login
type LoginResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    api.UserResponse `json:"user"`
}

// HandleUserRegistration creates a new account.
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if err := validateCredentials(req.Username, req.Password); err != nil {
			s.respondError(w, err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.respondError(w, err)
			return
		}

		user, err := s.Users.CreateUser(r.Context(), req.Username, string(hashed))
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your account was created successfully.",
			"user":    api.NewUserResponse(user),
		})
	}
}

// HandleUserLogin opens a session and returns a bearer token.
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		user, err := s.Users.GetUserByUsername(r.Context(), req.Username)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrUserNotFound) {
				s.respondError(w, utils.NewAppError(utils.ErrInvalidCredentials, "Invalid username or password", nil))
				return
			}
			s.respondError(w, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidCredentials, "Invalid username or password", nil))
			return
		}

		token, err := s.Sessions.GenerateToken(user.ID)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, LoginResponse{
			Message: "You have logged in successfully.",
			Token:   token,
			User:    api.NewUserResponse(user),
		})
	}
}

// HandleUserLogout ends the session. Tokens are stateless, so the client
// discards the token; the endpoint exists for the frontend's contract.
func (s *Server) HandleUserLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "You have been logged out successfully.",
		})
	}
}

// HandleUserUpdate changes the caller's username and/or password.
func (s *Server) HandleUserUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		hashed := ""
		if req.Password != "" {
			h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				s.respondError(w, err)
				return
			}
			hashed = string(h)
		}

		user, err := s.Users.UpdateUser(r.Context(), actor.ID, req.Username, hashed)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Your profile was updated successfully.",
			"user":    api.NewUserResponse(user),
		})
	}
}

// HandleUserDeletion deletes the caller's account and bulk-removes their
// authored records. The cleanup is best-effort, not transactional: a failure
// partway leaves earlier deletions in place.
func (s *Server) HandleUserDeletion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		ctx := r.Context()
		if err := s.Freets.DeleteFreetsByAuthor(ctx, actor.ID); err != nil {
			s.respondError(w, err)
			return
		}
		if err := s.Comments.DeleteCommentsByAuthor(ctx, actor.ID); err != nil {
			s.respondError(w, err)
			return
		}
		for _, polarity := range []models.Polarity{models.Like, models.Dislike} {
			if err := s.Reactions.DeleteReactionsByAuthor(ctx, actor.ID, polarity); err != nil {
				s.respondError(w, err)
				return
			}
		}
		if err := s.Favorites.DeleteFavoritesByAuthor(ctx, actor.ID); err != nil {
			s.respondError(w, err)
			return
		}
		if err := s.Timelimits.DeleteTimelimitsByAuthor(ctx, actor.ID); err != nil {
			s.respondError(w, err)
			return
		}

		if _, err := s.Users.DeleteUser(ctx, actor.ID); err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "Your account was deleted successfully.",
		})
	}
}

func validateCredentials(username, password string) *utils.AppError {
	if strings.TrimSpace(username) == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Username must be at least one character long", nil)
	}
	if password == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Password must not be empty", nil)
	}
	return nil
}
