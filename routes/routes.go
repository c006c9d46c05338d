package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmaren/surveygrid/app"
	"github.com/jmaren/surveygrid/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(middlewares.CORS)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// CRUD survey
	api.Post("/surveys", CreateSurvey(app))
	api.Get("/surveys", ListSurveys(app))
	api.Get("/surveys/{id}", GetSurveyById(app))
	api.Put("/surveys/{id}", UpdateSurvey(app))
	api.Delete("/surveys/{id}", DeleteSurvey(app))

	// templates
	api.Get("/templates", ListTemplates(app))
	api.Post("/init-templates", InitTemplates(app))
	api.Post("/templates/{id}/create-survey", CreateSurveyFromTemplate(app))

	// responses
	api.Post("/responses", SubmitResponse(app))
	api.Get("/surveys/{id}/responses", GetSurveyResponses(app))
	api.Get("/surveys/{id}/responses/stats", GetResponseStats(app))

	return api
}
