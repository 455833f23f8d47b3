package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/database"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the user directory: author resolution and account lifecycle.
type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, username, hashedPassword string) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type FreetStore interface {
	CreateFreet(ctx context.Context, authorID primitive.ObjectID, content string) (*models.Freet, error)
	GetFreet(ctx context.Context, id primitive.ObjectID) (*models.Freet, error)
	AllFreets(ctx context.Context) ([]*models.Freet, error)
	FreetsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Freet, error)
	FreetsByUsername(ctx context.Context, username string) ([]*models.Freet, error)
	UpdateFreet(ctx context.Context, id primitive.ObjectID, content string) (*models.Freet, error)
	DeleteFreet(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteFreetsByAuthor(ctx context.Context, authorID primitive.ObjectID) error
}

type CommentStore interface {
	AddComment(ctx context.Context, authorID, freetID primitive.ObjectID, content string) (*models.Comment, error)
	GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	AllComments(ctx context.Context) ([]*models.Comment, error)
	CommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Comment, error)
	CommentsByUsername(ctx context.Context, username string) ([]*models.Comment, error)
	CommentsByFreet(ctx context.Context, freetID primitive.ObjectID) ([]*models.Comment, error)
	CommentByAuthorAndFreet(ctx context.Context, authorID, freetID primitive.ObjectID) ([]*models.Comment, error)
	UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteCommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) error
	CountCommentsOnFreet(ctx context.Context, freetID primitive.ObjectID) (int, error)
}

type ReactionStore interface {
	AddReaction(ctx context.Context, authorID, freetID primitive.ObjectID, polarity models.Polarity) (*models.Reaction, error)
	GetReaction(ctx context.Context, id primitive.ObjectID, polarity models.Polarity) (*models.Reaction, error)
	AllReactions(ctx context.Context, polarity models.Polarity) ([]*models.Reaction, error)
	ReactionsByAuthor(ctx context.Context, authorID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error)
	ReactionsByUsername(ctx context.Context, username string, polarity models.Polarity) ([]*models.Reaction, error)
	ReactionsByFreet(ctx context.Context, freetID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error)
	ReactionByAuthorAndFreet(ctx context.Context, authorID, freetID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error)
	DeleteReaction(ctx context.Context, id primitive.ObjectID, polarity models.Polarity) (bool, error)
	DeleteReactionsByAuthor(ctx context.Context, authorID primitive.ObjectID, polarity models.Polarity) error
	CountReactionsOnFreet(ctx context.Context, freetID primitive.ObjectID, polarity models.Polarity) (int, error)
}

type FavoriteStore interface {
	AddFavorite(ctx context.Context, authorID primitive.ObjectID, name, url string) (*models.Favorite, error)
	GetFavorite(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error)
	FavoritesByUsername(ctx context.Context, username string) ([]*models.Favorite, error)
	DeleteFavorite(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteFavoritesByAuthor(ctx context.Context, authorID primitive.ObjectID) error
}

type TimelimitStore interface {
	StartTimelimit(ctx context.Context, username string, startTime time.Time, elapsedTime int64) (*models.Timelimit, error)
	GetTimelimit(ctx context.Context, username string) (*models.Timelimit, error)
	DeleteTimelimit(ctx context.Context, username string) (bool, error)
	DeleteTimelimitsByAuthor(ctx context.Context, authorID primitive.ObjectID) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds all server dependencies. Handlers call stores directly; the
// only suspend points are the database round trips.
type Server struct {
	Users      UserStore
	Freets     FreetStore
	Comments   CommentStore
	Reactions  ReactionStore
	Favorites  FavoriteStore
	Timelimits TimelimitStore

	Sessions *middleware.SessionManager
	Metrics  *utils.MetricsCollector
	Logger   *slog.Logger
	DB       Pinger

	RequestTimeout time.Duration
}

// NewServer creates a new Server instance backed by MongoDB
func NewServer(db *database.MongoDB, sessions *middleware.SessionManager, metrics *utils.MetricsCollector, logger *slog.Logger) *Server {
	return &Server{
		Users:          db,
		Freets:         db,
		Comments:       db,
		Reactions:      db,
		Favorites:      db,
		Timelimits:     db,
		Sessions:       sessions,
		Metrics:        metrics,
		Logger:         logger,
		DB:             db,
		RequestTimeout: 5 * time.Second,
	}
}

// errorResponse is the standard error body for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.Logger.Error("failed to encode response", slog.String("error", err.Error()))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		s.respondJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), errorResponse{Error: appErr.Message})
		return
	}
	s.Logger.Error("request failed", slog.String("error", err.Error()))
	s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

// sessionUser loads the authenticated caller. RequireSession guarantees the
// id is in the context on protected routes.
func (s *Server) sessionUser(r *http.Request) (*models.User, error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, utils.NewUnauthorizedError("no session")
	}
	return s.Users.GetUserByID(r.Context(), userID)
}

// username resolves an author id for response population.
func (s *Server) username(ctx context.Context, authorID primitive.ObjectID) (string, error) {
	user, err := s.Users.GetUserByID(ctx, authorID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// HandleHealth reports store reachability and request counters.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.RequestTimeout)
		defer cancel()

		status := "ok"
		if s.DB != nil {
			if err := s.DB.Ping(ctx); err != nil {
				s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
				return
			}
		}

		requests, errors, uptime := s.Metrics.Snapshot()
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":   status,
			"requests": requests,
			"errors":   errors,
			"uptime":   uptime.String(),
		})
	}
}
