package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, resultHandler *ResultHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/voting", func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		r.Route("/polls", func(r chi.Router) {
			r.With(AdminOnly).Post("/", pollHandler.CreatePoll)
			r.Get("/", pollHandler.ListPolls)
			r.Get("/active", pollHandler.ListActivePolls)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Get("/{id}/results", resultHandler.GetResults)
			r.Get("/{id}/my-vote", voteHandler.MyVote)
		})

		r.Post("/vote", voteHandler.CastVote)
	})

	return r
}
