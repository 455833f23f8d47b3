package handlers

import (
	"net/http"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"

	"github.com/go-chi/chi/v5"
)

// Routes builds the full HTTP surface. Reads are public; everything that
// creates, mutates, or deletes runs behind the session middleware, and
// resource routes load and authorize their target before the handler runs.
func (s *Server) Routes(corsConfig *middleware.CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(s.Logger, s.Metrics))
	r.Use(middleware.CORSMiddleware(corsConfig))

	r.Get("/health", s.HandleHealth())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.HandleUserRegistration())
		r.Post("/users/session", s.HandleUserLogin())

		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireSession)
			r.Delete("/users/session", s.HandleUserLogout())
			r.Put("/users", s.HandleUserUpdate())
			r.Delete("/users", s.HandleUserDeletion())
		})

		r.Get("/freets", s.HandleListFreets())
		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireSession)
			r.Post("/freets", s.HandleCreateFreet())

			r.Route("/freets/{freetId}", func(r chi.Router) {
				r.Use(s.FreetCtx)
				r.With(s.RequireFreetAuthor).Put("/", s.HandleUpdateFreet())
				r.With(s.RequireFreetAuthor).Delete("/", s.HandleDeleteFreet())
				r.Post("/comments", s.HandleCreateComment())
				r.Post("/likes", s.HandleCreateReaction(models.Like))
				r.Post("/dislikes", s.HandleCreateReaction(models.Dislike))
			})
		})

		r.Get("/comments", s.HandleListComments())
		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireSession)
			r.Route("/comments/{commentId}", func(r chi.Router) {
				r.Use(s.CommentCtx)
				r.With(s.RequireCommentAuthor).Put("/", s.HandleUpdateComment())
				r.With(s.RequireCommentAuthor).Delete("/", s.HandleDeleteComment())
			})
		})

		r.Get("/likes", s.HandleListReactions(models.Like))
		r.Get("/dislikes", s.HandleListReactions(models.Dislike))
		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireSession)
			r.Delete("/likes/{likeId}", s.HandleDeleteReaction(models.Like))
			r.Delete("/dislikes/{likeId}", s.HandleDeleteReaction(models.Dislike))
		})

		r.Get("/favorites", s.HandleListFavorites())
		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireSession)
			r.Post("/favorites", s.HandleCreateFavorite())
			r.Delete("/favorites/{favoriteId}", s.HandleDeleteFavorite())
		})

		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireSession)
			r.Get("/timelimit", s.HandleGetTimelimit())
			r.Post("/timelimit", s.HandleStartTimelimit())
			r.Delete("/timelimit", s.HandleDeleteTimelimit())
		})
	})

	return r
}
