package model

import (
	"time"

	"github.com/jmaren/surveygrid/ids"
)

type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeEmail          QuestionType = "email"
	TypePhone          QuestionType = "phone"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeCheckbox       QuestionType = "checkbox"
	TypeRating         QuestionType = "rating"
)

func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeEmail, TypePhone, TypeMultipleChoice, TypeCheckbox, TypeRating:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeCheckbox
}

type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required"`
	Options     []Option     `json:"options,omitempty"`
	MinRating   int          `json:"min_rating,omitempty"`
	MaxRating   int          `json:"max_rating,omitempty"`
}

// NewQuestion builds a question of the given type with only the fields valid
// for that type populated. Choice questions start with a single default
// option, rating questions with a 1..5 scale.
func NewQuestion(gen ids.Generator, t QuestionType) Question {
	q := Question{ID: gen.NewID(), Type: t}
	switch t {
	case TypeMultipleChoice, TypeCheckbox:
		q.Options = []Option{{ID: gen.NewID(), Text: "Option 1", Value: "option1"}}
	case TypeRating:
		q.MinRating = 1
		q.MaxRating = 5
	}
	return q
}

type Survey struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Questions        []Question `json:"questions"`
	IsTemplate       bool       `json:"is_template"`
	TemplateCategory string     `json:"template_category,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// SurveyDraft is the create/update payload: everything the server does not
// assign itself.
type SurveyDraft struct {
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Questions        []Question `json:"questions"`
	IsTemplate       bool       `json:"is_template"`
	TemplateCategory string     `json:"template_category,omitempty"`
}

// Answer is one respondent's value for a single question: a string for
// text-like questions, a single option value for multiple choice, a list of
// option values for checkboxes, a number for ratings. Values decoded from
// JSON arrive as string, []any or float64.
type Answer = any

type Response struct {
	ID          string            `json:"id"`
	SurveyID    string            `json:"survey_id"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Answers     map[string]Answer `json:"responses"`
}

type ResponseDraft struct {
	SurveyID string            `json:"survey_id"`
	Answers  map[string]Answer `json:"responses"`
}
