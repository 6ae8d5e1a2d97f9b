package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (app *Application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.AllowAll().Handler)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/questions", app.handlers.ListQuestionsHandler)
		r.Get("/results", app.handlers.ResultsHandler)

		r.Route("/squares", func(r chi.Router) {
			r.Get("/public", app.handlers.PublicBoardHandler)
			r.Get("/revealed", app.handlers.RevealedBoardHandler)
		})

		r.Post("/submissions", app.handlers.SubmitEntryHandler)
		r.Post("/view-guesses", app.handlers.LookupHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", app.handlers.AdminLoginHandler)
			r.Get("/state", app.handlers.RequireAdmin(app.handlers.AdminStateHandler))
			r.Post("/correct-answers", app.handlers.RequireAdmin(app.handlers.SetCorrectAnswersHandler))
			r.Post("/squares-scores", app.handlers.RequireAdmin(app.handlers.SetQuarterScoresHandler))
		})
	})

	return mux
}
