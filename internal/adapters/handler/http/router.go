package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(voteHandler *VoteHandler, ipHandler *IPHandler, resultsHandler *ResultsHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	// Recoverer guarantees a 500 response instead of a crashed handler
	// for anything that slips past the pipeline's own error handling.
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/votes", voteHandler.SubmitVote)
		r.Get("/get-ip", ipHandler.GetIP)

		r.Route("/results", func(r chi.Router) {
			r.Get("/", resultsHandler.GetResults)
			r.Get("/live", resultsHandler.LiveResults)
		})
	})

	return r
}
