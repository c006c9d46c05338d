// Package form drives the respondent-facing side of a survey: mapping
// question types to widgets and accumulating answers until submission.
package form

import (
	"context"
	"fmt"

	"github.com/jmaren/surveygrid/log"
	"github.com/jmaren/surveygrid/model"
)

// WidgetKind is the rendering strategy for a question.
type WidgetKind int

const (
	WidgetTextInput WidgetKind = iota
	WidgetSingleSelect
	WidgetMultiSelect
	WidgetNumericScale
)

// WidgetFor maps a question type to its widget. The switch is exhaustive
// over the question-type enum; a new type must be handled here.
func WidgetFor(t model.QuestionType) WidgetKind {
	switch t {
	case model.TypeText, model.TypeEmail, model.TypePhone:
		return WidgetTextInput
	case model.TypeMultipleChoice:
		return WidgetSingleSelect
	case model.TypeCheckbox:
		return WidgetMultiSelect
	case model.TypeRating:
		return WidgetNumericScale
	default:
		panic(fmt.Sprintf("form: unknown question type %q", t))
	}
}

type State int

const (
	Editing State = iota
	Submitting
	Submitted
)

// Submitter is the backend operation a session needs.
type Submitter interface {
	SubmitResponse(ctx context.Context, draft model.ResponseDraft) (model.Response, error)
}

// Session is a one-shot state machine: editing -> submitting -> submitted,
// falling back to editing when submission fails so the respondent can retry.
type Session struct {
	survey  model.Survey
	backend Submitter

	answers map[string]model.Answer
	state   State
}

func NewSession(survey model.Survey, backend Submitter) *Session {
	return &Session{
		survey:  survey,
		backend: backend,
		answers: map[string]model.Answer{},
	}
}

func (s *Session) Survey() model.Survey { return s.survey }
func (s *Session) State() State         { return s.state }

// Set records the answer for a question. Last write wins. Ignored once the
// session has left the editing state.
func (s *Session) Set(questionID string, value model.Answer) {
	if s.state != Editing {
		return
	}
	s.answers[questionID] = value
}

// Answer reads the current answer for a question; ok is false when the
// respondent has not answered it.
func (s *Session) Answer(questionID string) (value model.Answer, ok bool) {
	value, ok = s.answers[questionID]
	return
}

// Submit freezes the accumulated answers and sends them. On failure the
// error is logged and the session returns to editing for a retry; a second
// call after success is a no-op.
func (s *Session) Submit(ctx context.Context) error {
	if s.state == Submitted {
		return nil
	}

	s.state = Submitting
	frozen := make(map[string]model.Answer, len(s.answers))
	for k, v := range s.answers {
		frozen[k] = v
	}

	_, err := s.backend.SubmitResponse(ctx, model.ResponseDraft{
		SurveyID: s.survey.ID,
		Answers:  frozen,
	})
	if err != nil {
		log.Error("form.submit:", err)
		s.state = Editing
		return err
	}

	s.state = Submitted
	return nil
}
