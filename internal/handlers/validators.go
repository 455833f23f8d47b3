package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxContentLength is the character limit for freet and comment content.
const maxContentLength = 140

type ctxKey string

const (
	freetCtxKey   ctxKey = "freet"
	commentCtxKey ctxKey = "comment"
)

// validateContent enforces the non-empty and length rules shared by freets
// and comments.
func validateContent(content string) *utils.AppError {
	if strings.TrimSpace(content) == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Content must be at least one character long", nil)
	}
	if len([]rune(content)) > maxContentLength {
		return utils.NewAppError(utils.ErrContentTooLong, "Content must be no more than 140 characters", nil)
	}
	return nil
}

// FreetCtx loads the freet named by the freetId route param and stores it in
// the request context. Missing or malformed ids resolve to not-found.
func (s *Server) FreetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "freetId"))
		if err != nil {
			s.respondError(w, utils.NewFreetNotFoundError(chi.URLParam(r, "freetId")))
			return
		}

		freet, err := s.Freets.GetFreet(r.Context(), id)
		if err != nil {
			s.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), freetCtxKey, freet)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CommentCtx loads the comment named by the commentId route param and stores
// it in the request context.
func (s *Server) CommentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentId"))
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found: "+chi.URLParam(r, "commentId"), nil))
			return
		}

		comment, err := s.Comments.GetComment(r.Context(), id)
		if err != nil {
			s.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), commentCtxKey, comment)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireFreetAuthor rejects callers who are not the author of the freet
// loaded by FreetCtx.
func (s *Server) RequireFreetAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		freet := freetFromContext(r.Context())
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || freet == nil || freet.AuthorID != userID {
			s.respondError(w, utils.NewForbiddenError("you are not the author of this freet"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCommentAuthor rejects callers who are not the author of the comment
// loaded by CommentCtx.
func (s *Server) RequireCommentAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		comment := commentFromContext(r.Context())
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || comment == nil || comment.AuthorID != userID {
			s.respondError(w, utils.NewForbiddenError("you are not the author of this comment"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func freetFromContext(ctx context.Context) *models.Freet {
	freet, _ := ctx.Value(freetCtxKey).(*models.Freet)
	return freet
}

func commentFromContext(ctx context.Context) *models.Comment {
	comment, _ := ctx.Value(commentCtxKey).(*models.Comment)
	return comment
}
