package handlers

import (
	"net/http"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/api"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleListReactions returns one polarity partition, filtered by the
// authorId or freetId query parameter when present. A record created with
// the other polarity can never appear here.
func (s *Server) HandleListReactions(polarity models.Polarity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorParam := r.URL.Query().Get("authorId")
		freetParam := r.URL.Query().Get("freetId")

		var (
			reactions []*models.Reaction
			err       error
		)

		switch {
		case authorParam != "":
			var authorID primitive.ObjectID
			if authorID, err = primitive.ObjectIDFromHex(authorParam); err == nil {
				reactions, err = s.Reactions.ReactionsByAuthor(r.Context(), authorID, polarity)
			}
		case freetParam != "":
			var freetID primitive.ObjectID
			if freetID, err = primitive.ObjectIDFromHex(freetParam); err == nil {
				reactions, err = s.Reactions.ReactionsByFreet(r.Context(), freetID, polarity)
			}
		default:
			reactions, err = s.Reactions.AllReactions(r.Context(), polarity)
		}

		if err != nil {
			if _, ok := err.(*utils.AppError); !ok {
				err = utils.NewAppError(utils.ErrInvalidInput, "Invalid id filter", err)
			}
			s.respondError(w, err)
			return
		}

		response := make([]api.ReactionResponse, 0, len(reactions))
		for _, reaction := range reactions {
			username, err := s.username(r.Context(), reaction.AuthorID)
			if err != nil {
				s.respondError(w, err)
				return
			}
			response = append(response, api.NewReactionResponse(reaction, username))
		}

		s.respondJSON(w, http.StatusOK, response)
	}
}

// HandleCreateReaction records a reaction with a fixed polarity on the freet
// loaded by FreetCtx. Nothing stops the same author from reacting twice.
func (s *Server) HandleCreateReaction(polarity models.Polarity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.sessionUser(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		freet := freetFromContext(r.Context())

		reaction, err := s.Reactions.AddReaction(r.Context(), actor.ID, freet.ID, polarity)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your " + string(polarity) + " was created successfully.",
			string(polarity): api.NewReactionResponse(reaction, actor.Username),
		})
	}
}

// HandleDeleteReaction removes a reaction from one polarity partition. Only
// the reaction's author may delete it.
func (s *Server) HandleDeleteReaction(polarity models.Polarity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "likeId"))
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrReactionNotFound, "Reaction not found: "+chi.URLParam(r, "likeId"), nil))
			return
		}

		reaction, err := s.Reactions.GetReaction(r.Context(), id, polarity)
		if err != nil {
			s.respondError(w, err)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || reaction.AuthorID != userID {
			s.respondError(w, utils.NewForbiddenError("you are not the author of this "+string(polarity)))
			return
		}

		deleted, err := s.Reactions.DeleteReaction(r.Context(), id, polarity)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if !deleted {
			s.respondError(w, utils.NewAppError(utils.ErrReactionNotFound, "Reaction not found: "+id.Hex(), nil))
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"message": "Your " + string(polarity) + " was deleted successfully.",
		})
	}
}
