// Package editor holds the in-memory state of the survey builder. All
// operations are pure state transitions; persistence is the caller's job.
package editor

import (
	"errors"
	"fmt"

	"github.com/jmaren/surveygrid/ids"
	"github.com/jmaren/surveygrid/model"
)

// ErrNotSavable is returned by Draft while the title is empty or the survey
// has no questions. The UI disables saving in that state.
var ErrNotSavable = errors.New("survey needs a title and at least one question")

type Editor struct {
	title       string
	description string
	questions   []model.Question

	ids     ids.Generator
	editing string // id of the survey being edited, empty for a new one
}

func New(gen ids.Generator) *Editor {
	return &Editor{ids: gen}
}

// Load enters edit mode for an existing survey. Saving the resulting draft
// is a full overwrite of that survey.
func (e *Editor) Load(s model.Survey) {
	e.editing = s.ID
	e.title = s.Title
	e.description = s.Description
	e.questions = copyQuestions(s.Questions)
}

// Editing reports the id of the survey being edited, if any.
func (e *Editor) Editing() (string, bool) {
	return e.editing, e.editing != ""
}

func (e *Editor) SetTitle(title string)             { e.title = title }
func (e *Editor) SetDescription(description string) { e.description = description }
func (e *Editor) Title() string                     { return e.title }
func (e *Editor) Description() string               { return e.description }

func (e *Editor) Questions() []model.Question {
	return copyQuestions(e.questions)
}

// copyQuestions detaches the questions and their option slices, so editor
// state never shares backing arrays with the caller's survey.
func copyQuestions(questions []model.Question) []model.Question {
	out := append([]model.Question(nil), questions...)
	for i, q := range out {
		out[i].Options = append([]model.Option(nil), q.Options...)
	}
	return out
}

// AddQuestion appends a new question of the given type and returns it.
func (e *Editor) AddQuestion(t model.QuestionType) model.Question {
	q := model.NewQuestion(e.ids, t)
	e.questions = append(e.questions, q)
	return q
}

// UpdateQuestion replaces one field on the matching question. Unknown ids
// and unknown fields are no-ops. Rating bounds are clamped the way the form
// inputs constrain them: min >= 1, max in [1, 10].
func (e *Editor) UpdateQuestion(id, field string, value any) {
	for i, q := range e.questions {
		if q.ID != id {
			continue
		}
		switch field {
		case "title":
			if v, ok := value.(string); ok {
				q.Title = v
			}
		case "description":
			if v, ok := value.(string); ok {
				q.Description = v
			}
		case "required":
			if v, ok := value.(bool); ok {
				q.Required = v
			}
		case "min_rating":
			if v, ok := toInt(value); ok {
				if v < 1 {
					v = 1
				}
				q.MinRating = v
			}
		case "max_rating":
			if v, ok := toInt(value); ok {
				if v < 1 {
					v = 1
				}
				if v > 10 {
					v = 10
				}
				q.MaxRating = v
			}
		}
		e.questions[i] = q
		return
	}
}

func (e *Editor) RemoveQuestion(id string) {
	kept := e.questions[:0]
	for _, q := range e.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	e.questions = kept
}

// AddOption appends a default option to the matching question. The default
// text/value derive from the current option count, so they are not unique
// if earlier options were renamed; that matches the original behavior.
func (e *Editor) AddOption(questionID string) {
	for i, q := range e.questions {
		if q.ID != questionID {
			continue
		}
		n := len(q.Options) + 1
		q.Options = append(q.Options, model.Option{
			ID:    e.ids.NewID(),
			Text:  fmt.Sprintf("Option %d", n),
			Value: fmt.Sprintf("option%d", n),
		})
		e.questions[i] = q
		return
	}
}

func (e *Editor) UpdateOption(questionID, optionID, field, value string) {
	for i, q := range e.questions {
		if q.ID != questionID {
			continue
		}
		for j, o := range q.Options {
			if o.ID != optionID {
				continue
			}
			switch field {
			case "text":
				o.Text = value
			case "value":
				o.Value = value
			}
			q.Options[j] = o
		}
		e.questions[i] = q
		return
	}
}

func (e *Editor) RemoveOption(questionID, optionID string) {
	for i, q := range e.questions {
		if q.ID != questionID {
			continue
		}
		kept := q.Options[:0]
		for _, o := range q.Options {
			if o.ID != optionID {
				kept = append(kept, o)
			}
		}
		q.Options = kept
		e.questions[i] = q
		return
	}
}

func (e *Editor) CanSave() bool {
	return e.title != "" && len(e.questions) > 0
}

// Draft emits the create/update payload. The caller decides create vs.
// update based on Editing.
func (e *Editor) Draft() (model.SurveyDraft, error) {
	if !e.CanSave() {
		return model.SurveyDraft{}, ErrNotSavable
	}
	return model.SurveyDraft{
		Title:       e.title,
		Description: e.description,
		Questions:   e.Questions(),
	}, nil
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}
