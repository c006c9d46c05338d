package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/jmaren/surveygrid/app"
	"github.com/jmaren/surveygrid/httpx"
	"github.com/jmaren/surveygrid/log"
	"github.com/jmaren/surveygrid/model"
)

const surveyCols = "id, title, description, is_template, template_category, questions, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (s model.Survey, err error) {
	var questions string
	err = row.Scan(
		&s.ID, &s.Title, &s.Description,
		&s.IsTemplate, &s.TemplateCategory,
		&questions,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return
	}
	err = json.Unmarshal([]byte(questions), &s.Questions)
	return
}

func insertSurvey(ctx context.Context, app app.App, s model.Survey) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return err
	}
	_, err = app.ExecContext(ctx, `
		INSERT INTO survey (`+surveyCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Title, s.Description,
		s.IsTemplate, s.TemplateCategory,
		string(questions),
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := model.SurveyDraft{}
		err := render.DecodeJSON(r.Body, &draft)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		now := time.Now().UTC()
		survey := model.Survey{
			ID:               app.IDs.NewID(),
			Title:            draft.Title,
			Description:      draft.Description,
			Questions:        draft.Questions,
			IsTemplate:       draft.IsTemplate,
			TemplateCategory: draft.TemplateCategory,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if survey.Questions == nil {
			survey.Questions = []model.Question{}
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

func listSurveys(app app.App, w http.ResponseWriter, r *http.Request, isTemplate bool) {
	rows, err := app.QueryContext(r.Context(), `
		SELECT `+surveyCols+`
		FROM survey
		WHERE is_template = ?
		ORDER BY created_at`,
		isTemplate,
	)
	if err != nil {
		httpx.LogInternalError(w, "db.get_surveys", err)
		return
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys.scan", err)
			return
		}
		surveys = append(surveys, s)
	}

	render.JSON(w, r, surveys)
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listSurveys(app, w, r, false)
	}
}

func getSurveyByID(ctx context.Context, app app.App, id string) (model.Survey, error) {
	row := app.QueryRowContext(ctx, `
		SELECT `+surveyCols+`
		FROM survey
		WHERE id = ?`,
		id,
	)
	return scanSurvey(row)
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := getSurveyByID(r.Context(), app, surveyId)
		if err != nil {
			if err == sql.ErrNoRows {
				httpx.LogNotFound(w, "get_survey", surveyId)
			} else {
				httpx.LogInternalError(w, "db.get_survey", err)
			}
			return
		}

		render.JSON(w, r, survey)
	}
}

func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		draft := model.SurveyDraft{}
		err := render.DecodeJSON(r.Body, &draft)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		questions, err := json.Marshal(draft.Questions)
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.questions", err)
			return
		}

		// full overwrite, no partial patch
		res, err := app.ExecContext(r.Context(), `
			UPDATE survey
			SET
				title = ?,
				description = ?,
				questions = ?,
				is_template = ?,
				template_category = ?,
				updated_at = ?
			WHERE id = ?`,
			draft.Title,
			draft.Description,
			string(questions),
			draft.IsTemplate,
			draft.TemplateCategory,
			time.Now().UTC(),
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "update_survey", surveyId)
			return
		}

		survey, err := getSurveyByID(r.Context(), app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.reload", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM survey WHERE id = ?`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_survey", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_survey.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_survey", surveyId)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Survey deleted successfully",
		})
	}
}
