package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmaren/surveygrid/ids"
	"github.com/jmaren/surveygrid/model"
)

func newEditor() *Editor {
	return New(ids.Sequence("id"))
}

func TestAddQuestionAssignsFreshIds(t *testing.T) {
	e := newEditor()
	q1 := e.AddQuestion(model.TypeText)
	q2 := e.AddQuestion(model.TypeText)

	assert.NotEqual(t, q1.ID, q2.ID)
	assert.Len(t, e.Questions(), 2)
}

func TestCheckboxQuestionStartsWithOneDefaultOption(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeCheckbox)

	require.Len(t, q.Options, 1)
	assert.Equal(t, "Option 1", q.Options[0].Text)
	assert.Equal(t, "option1", q.Options[0].Value)
}

func TestRatingQuestionDefaults(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeRating)

	assert.Equal(t, 1, q.MinRating)
	assert.Equal(t, 5, q.MaxRating)
	assert.Empty(t, q.Options)
}

func TestTextQuestionHasNoTypeSpecificFields(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeText)

	assert.Empty(t, q.Options)
	assert.Zero(t, q.MinRating)
	assert.Zero(t, q.MaxRating)
}

func TestUpdateQuestion(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeText)

	e.UpdateQuestion(q.ID, "title", "Favorite color")
	e.UpdateQuestion(q.ID, "description", "Pick one")
	e.UpdateQuestion(q.ID, "required", true)

	got := e.Questions()[0]
	assert.Equal(t, "Favorite color", got.Title)
	assert.Equal(t, "Pick one", got.Description)
	assert.True(t, got.Required)
}

func TestUpdateQuestionUnknownIdIsNoOp(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeText)

	e.UpdateQuestion("missing", "title", "ignored")
	assert.Empty(t, e.Questions()[0].Title)
	assert.Equal(t, q.ID, e.Questions()[0].ID)
}

func TestUpdateQuestionClampsRatingBounds(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeRating)

	e.UpdateQuestion(q.ID, "min_rating", 0)
	e.UpdateQuestion(q.ID, "max_rating", 42)

	got := e.Questions()[0]
	assert.Equal(t, 1, got.MinRating)
	assert.Equal(t, 10, got.MaxRating)
}

func TestRemoveQuestionTakesItsOptionsAlong(t *testing.T) {
	e := newEditor()
	q1 := e.AddQuestion(model.TypeMultipleChoice)
	q2 := e.AddQuestion(model.TypeText)

	e.RemoveQuestion(q1.ID)

	questions := e.Questions()
	require.Len(t, questions, 1)
	assert.Equal(t, q2.ID, questions[0].ID)
}

func TestAddOptionDerivesDefaultsFromCount(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeMultipleChoice)

	e.AddOption(q.ID)
	options := e.Questions()[0].Options
	require.Len(t, options, 2)
	assert.Equal(t, "Option 2", options[1].Text)
	assert.Equal(t, "option2", options[1].Value)
}

func TestAddOptionAfterRemovalMayDuplicateDefaults(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeMultipleChoice)
	e.AddOption(q.ID)
	e.RemoveOption(q.ID, e.Questions()[0].Options[0].ID)

	// one option left ("Option 2"), so the next default is "Option 2" again
	e.AddOption(q.ID)
	options := e.Questions()[0].Options
	require.Len(t, options, 2)
	assert.Equal(t, options[0].Text, options[1].Text)
}

func TestUpdateOption(t *testing.T) {
	e := newEditor()
	q := e.AddQuestion(model.TypeCheckbox)
	optionID := q.Options[0].ID

	e.UpdateOption(q.ID, optionID, "text", "Red")
	e.UpdateOption(q.ID, optionID, "value", "red")

	got := e.Questions()[0].Options[0]
	assert.Equal(t, "Red", got.Text)
	assert.Equal(t, "red", got.Value)
}

func TestDraftRequiresTitleAndQuestions(t *testing.T) {
	e := newEditor()

	_, err := e.Draft()
	assert.ErrorIs(t, err, ErrNotSavable)
	assert.False(t, e.CanSave())

	e.SetTitle("My Survey")
	_, err = e.Draft()
	assert.ErrorIs(t, err, ErrNotSavable)

	e.AddQuestion(model.TypeText)
	require.True(t, e.CanSave())

	draft, err := e.Draft()
	require.NoError(t, err)
	assert.Equal(t, "My Survey", draft.Title)
	assert.Len(t, draft.Questions, 1)
}

func TestLoadDetachesFromTheSourceSurvey(t *testing.T) {
	survey := model.Survey{
		ID:    "s1",
		Title: "Existing",
		Questions: []model.Question{{
			ID:   "q1",
			Type: model.TypeMultipleChoice,
			Options: []model.Option{
				{ID: "o1", Text: "Red", Value: "red"},
				{ID: "o2", Text: "Blue", Value: "blue"},
			},
		}},
	}

	e := newEditor()
	e.Load(survey)

	e.UpdateQuestion("q1", "title", "Changed")
	e.UpdateOption("q1", "o1", "text", "Green")
	e.RemoveOption("q1", "o2")
	e.AddOption("q1")

	// abandoning the edit leaves the loaded survey exactly as it was
	assert.Empty(t, survey.Questions[0].Title)
	require.Len(t, survey.Questions[0].Options, 2)
	assert.Equal(t, "Red", survey.Questions[0].Options[0].Text)
	assert.Equal(t, "Blue", survey.Questions[0].Options[1].Text)
}

func TestLoadEntersEditMode(t *testing.T) {
	e := newEditor()
	_, editing := e.Editing()
	assert.False(t, editing)

	e.Load(model.Survey{
		ID:          "s1",
		Title:       "Existing",
		Description: "desc",
		Questions:   []model.Question{{ID: "q1", Type: model.TypeText, Title: "Q"}},
	})

	id, editing := e.Editing()
	assert.True(t, editing)
	assert.Equal(t, "s1", id)

	draft, err := e.Draft()
	require.NoError(t, err)
	assert.Equal(t, "Existing", draft.Title)
	assert.Equal(t, "desc", draft.Description)
	require.Len(t, draft.Questions, 1)
}
