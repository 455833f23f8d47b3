package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateCommentRequest represents a request to create a new comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// EditCommentRequest represents a request to edit an existing comment
type EditCommentRequest struct {
	Content string `json:"content"`
}

// HandleListComments returns comments filtered by the authorId/freetId query
// matrix: both, either one, or neither (all comments, most recent first).
func (s *Server) HandleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorParam := r.URL.Query().Get("authorId")
		freetParam := r.URL.Query().Get("freetId")

		var (
			comments []*models.Comment
			err      error
		)

		switch {
		case authorParam != "" && freetParam != "":
			var authorID, freetID primitive.ObjectID
			if authorID, err = primitive.ObjectIDFromHex(authorParam); err == nil {
				if freetID, err = primitive.ObjectIDFromHex(freetParam); err == nil {
					comments, err = s.Comments.CommentByAuthorAndFreet(r.Context(), authorID, freetID)
				}
			}
		case authorParam != "":
			var authorID primitive.ObjectID
			if authorID, err = primitive.ObjectIDFromHex(authorParam); err == nil {
				comments, err = s.Comments.CommentsByAuthor(r.Context(), authorID)
			}
		case freetParam != "":
			var freetID primitive.ObjectID
			if freetID, err = primitive.ObjectIDFromHex(freetParam); err == nil {
				comments, err = s.Comments.CommentsByFreet(r.Context(), freetID)
			}
		default:
			comments, err = s.Comments.AllComments(r.Context())
		}

		if err != nil {
			if _, ok := err.(*utils.AppError); !ok {
				err = utils.NewAppError(utils.ErrInvalidInput, "Invalid id filter", err)
			}
			s.respondError(w, err)
			return
		}

		response := make([]api.CommentResponse, 0, len(comments))
		for _, comment := range comments {
			username, err := s.username(r.Context(), comment.AuthorID)
			if err != nil {
				s.respondError(w, err)
				return
			}
			response = append(response, api.NewCommentResponse(comment, username))
		}

		s.respondJSON(w, http.StatusOK, response)
	}
}

// HandleCreateComment creates a comment on the freet loaded by FreetCtx,
// authored by the session user.
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		freet := freetFromContext(r.Context())

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if appErr := validateContent(req.Content); appErr != nil {
			s.respondError(w, appErr)
			return
		}

		comment, err := s.Comments.AddComment(r.Context(), actor.ID, freet.ID, req.Content)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your comment was created successfully.",
			"comment": api.NewCommentResponse(comment, actor.Username),
		})
	}
}

// HandleUpdateComment replaces the content of the comment loaded by
// CommentCtx.
func (s *Server) HandleUpdateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment := commentFromContext(r.Context())

		var req EditCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
			return
		}

		if appErr := validateContent(req.Content); appErr != nil {
			s.respondError(w, appErr)
			return
		}

		updated, err := s.Comments.UpdateComment(r.Context(), comment.ID, req.Content)
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
			"message": "Your comment was updated successfully.",
			"comment": api.NewCommentResponse(updated, username),
		})
	}
}

// HandleDeleteComment removes the comment loaded by CommentCtx.
func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment := commentFromContext(r.Context())

		deleted, err := s.Comments.DeleteComment(r.Context(), comment.ID)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if !deleted {
			s.respondError(w, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found: "+comment.ID.Hex(), nil))
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "Your comment was deleted successfully.",
		})
	}
}
