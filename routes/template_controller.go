package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/jmaren/surveygrid/app"
	"github.com/jmaren/surveygrid/httpx"
	"github.com/jmaren/surveygrid/ids"
	"github.com/jmaren/surveygrid/log"
	"github.com/jmaren/surveygrid/model"
)

func ListTemplates(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listSurveys(app, w, r, true)
	}
}

func InitTemplates(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var count int
		err := app.QueryRowContext(r.Context(), `
			SELECT count(*) FROM survey WHERE is_template = 1`).
			Scan(&count)
		if err != nil {
			httpx.LogInternalError(w, "db.count_templates", err)
			return
		}
		if count > 0 {
			render.JSON(w, r, map[string]any{
				"message": "Templates already initialized",
			})
			return
		}

		for _, tpl := range stockTemplates(app.IDs) {
			err = insertSurvey(r.Context(), app, tpl)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_template", err)
				return
			}
		}

		render.JSON(w, r, map[string]any{
			"message": "Templates initialized successfully",
		})
	}
}

func CreateSurveyFromTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateId := chi.URLParam(r, "id")
		title := r.URL.Query().Get("title")
		if title == "" {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.title")
			return
		}

		template, err := getSurveyByID(r.Context(), app, templateId)
		if err != nil || !template.IsTemplate {
			if err == nil || err == sql.ErrNoRows {
				httpx.LogNotFound(w, "get_template", templateId)
			} else {
				httpx.LogInternalError(w, "db.get_template", err)
			}
			return
		}

		now := time.Now().UTC()
		survey := model.Survey{
			ID:          app.IDs.NewID(),
			Title:       title,
			Description: template.Description,
			Questions:   template.Questions,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err = insertSurvey(r.Context(), app, survey)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, survey)
	}
}

// stockTemplates builds the three surveys seeded by init-templates.
func stockTemplates(gen ids.Generator) []model.Survey {
	now := time.Now().UTC()

	template := func(title, description, category string, questions ...model.Question) model.Survey {
		return model.Survey{
			ID:               gen.NewID(),
			Title:            title,
			Description:      description,
			Questions:        questions,
			IsTemplate:       true,
			TemplateCategory: category,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}
	question := func(t model.QuestionType, title, description string, required bool) model.Question {
		q := model.NewQuestion(gen, t)
		q.Title = title
		q.Description = description
		q.Required = required
		return q
	}
	options := func(q model.Question, pairs ...string) model.Question {
		q.Options = nil
		for i := 0; i+1 < len(pairs); i += 2 {
			q.Options = append(q.Options, model.Option{
				ID:    gen.NewID(),
				Text:  pairs[i],
				Value: pairs[i+1],
			})
		}
		return q
	}

	customerFeedback := template(
		"Customer Feedback Survey",
		"Collect valuable feedback from your customers",
		"Customer Service",
		question(model.TypeRating, "How would you rate our service?", "Rate from 1 to 5", true),
		options(
			question(model.TypeMultipleChoice, "How did you hear about us?", "", true),
			"Social Media", "social_media",
			"Search Engine", "search_engine",
			"Word of Mouth", "word_of_mouth",
			"Advertisement", "advertisement",
			"Other", "other",
		),
		question(model.TypeText, "What can we improve?", "Please share your suggestions", false),
		question(model.TypeEmail, "Email (optional)", "We may contact you for follow-up", false),
	)

	employeeSatisfaction := template(
		"Employee Satisfaction Survey",
		"Measure employee satisfaction and engagement",
		"HR",
		question(model.TypeRating, "How satisfied are you with your current role?", "", true),
		options(
			question(model.TypeMultipleChoice, "What motivates you most at work?", "", true),
			"Career Growth", "career_growth",
			"Compensation", "compensation",
			"Work-Life Balance", "work_life_balance",
			"Team Environment", "team_environment",
			"Recognition", "recognition",
		),
		options(
			question(model.TypeCheckbox, "What benefits are most important to you?", "", false),
			"Health Insurance", "health_insurance",
			"Remote Work", "remote_work",
			"Professional Development", "professional_development",
			"Flexible Hours", "flexible_hours",
			"Retirement Plans", "retirement_plans",
		),
		question(model.TypeText, "Additional comments or suggestions", "", false),
	)

	eventFeedback := template(
		"Event Feedback Survey",
		"Gather feedback about your event",
		"Events",
		question(model.TypeRating, "How would you rate the overall event?", "", true),
		options(
			question(model.TypeMultipleChoice, "Which session did you find most valuable?", "", true),
			"Opening Keynote", "opening_keynote",
			"Panel Discussion", "panel_discussion",
			"Workshop", "workshop",
			"Networking Session", "networking",
			"Closing Remarks", "closing_remarks",
		),
		question(model.TypeText, "What topics would you like to see in future events?", "", false),
		options(
			question(model.TypeMultipleChoice, "Would you recommend this event to others?", "", true),
			"Definitely", "definitely",
			"Probably", "probably",
			"Maybe", "maybe",
			"Probably Not", "probably_not",
			"Definitely Not", "definitely_not",
		),
	)

	return []model.Survey{customerFeedback, employeeSatisfaction, eventFeedback}
}
