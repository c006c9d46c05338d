package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/jmaren/surveygrid/app"
	"github.com/jmaren/surveygrid/httpx"
	"github.com/jmaren/surveygrid/log"
	"github.com/jmaren/surveygrid/model"
)

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := model.ResponseDraft{}
		err := render.DecodeJSON(r.Body, &draft)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		var exists bool
		err = app.QueryRowContext(r.Context(), `
			SELECT 1 FROM survey WHERE id = ?`,
			draft.SurveyID,
		).Scan(&exists)
		if err != nil {
			if err == sql.ErrNoRows {
				httpx.LogNotFound(w, "get_survey", draft.SurveyID)
			} else {
				httpx.LogInternalError(w, "db.get_survey", err)
			}
			return
		}

		response := model.Response{
			ID:          app.IDs.NewID(),
			SurveyID:    draft.SurveyID,
			SubmittedAt: time.Now().UTC(),
			Answers:     draft.Answers,
		}
		if response.Answers == nil {
			response.Answers = map[string]model.Answer{}
		}

		answers, err := json.Marshal(response.Answers)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.answers", err)
			return
		}

		_, err = app.ExecContext(r.Context(), `
			INSERT INTO response (id, survey_id, submitted_at, answers)
			VALUES (?, ?, ?, ?)`,
			response.ID, response.SurveyID, response.SubmittedAt, string(answers),
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, response)
	}
}

func queryResponses(app app.App, r *http.Request, surveyId, orderBy string, limit, offset int) ([]model.Response, error) {
	rows, err := app.QueryContext(r.Context(), `
		SELECT id, survey_id, submitted_at, answers
		FROM response
		WHERE survey_id = ?
		ORDER BY `+orderBy+`
		LIMIT ? OFFSET ?`,
		surveyId, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		resp := model.Response{}
		var answers string
		err = rows.Scan(&resp.ID, &resp.SurveyID, &resp.SubmittedAt, &answers)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal([]byte(answers), &resp.Answers)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")
		query := r.URL.Query()

		page, err := strconv.Atoi(query.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(query.Get("limit"))
		if err != nil || limit < 1 {
			limit = 100
		}

		// sort column is whitelisted, everything else falls back to the default
		orderBy := "submitted_at"
		if query.Get("sort_by") == "id" {
			orderBy = "id"
		}
		if query.Get("sort_order") != "asc" {
			orderBy += " DESC"
		}

		responses, err := queryResponses(app, r, surveyId, orderBy, limit, (page-1)*limit)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, responses)
	}
}

func GetResponseStats(app app.App) http.HandlerFunc {
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

		var total int
		err = app.QueryRowContext(r.Context(), `
			SELECT count(*) FROM response WHERE survey_id = ?`,
			surveyId,
		).Scan(&total)
		if err != nil {
			httpx.LogInternalError(w, "db.count_responses", err)
			return
		}

		// per-question aggregation works on a sample of the newest 1000
		responses, err := queryResponses(app, r, surveyId, "submitted_at DESC", 1000, 0)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, buildStats(survey, total, responses))
	}
}

func buildStats(survey model.Survey, total int, responses []model.Response) model.ResponseStats {
	stats := model.ResponseStats{
		TotalResponses: total,
		SurveyTitle:    survey.Title,
		QuestionStats:  map[string]model.QuestionStats{},
	}

	for _, q := range survey.Questions {
		answered := 0
		var values []model.Answer
		for _, resp := range responses {
			if v, ok := resp.Answers[q.ID]; ok {
				answered++
				values = append(values, v)
			}
		}

		qs := model.QuestionStats{
			QuestionTitle:      q.Title,
			QuestionType:       q.Type,
			AnsweredCount:      answered,
			OptionDistribution: map[string]int{},
		}
		if len(responses) > 0 {
			qs.CompletionRate = float64(answered) / float64(len(responses)) * 100
		}

		if q.Type == model.TypeMultipleChoice {
			for _, v := range values {
				if value := model.AnswerText(v, " "); value != "" {
					qs.OptionDistribution[value]++
				}
			}
		}
		if q.Type == model.TypeRating {
			sum, n := 0.0, 0
			for _, v := range values {
				if f, ok := model.AnswerNumber(v); ok {
					sum += f
					n++
				}
			}
			if n > 0 {
				avg := sum / float64(n)
				qs.AverageRating = &avg
			}
		}

		stats.QuestionStats[q.ID] = qs
	}

	return stats
}
