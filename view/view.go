// Package view is the top-level state machine of the client: it selects the
// current screen and orchestrates backend calls for the other components.
package view

import (
	"context"

	"github.com/jmaren/surveygrid/editor"
	"github.com/jmaren/surveygrid/form"
	"github.com/jmaren/surveygrid/grid"
	"github.com/jmaren/surveygrid/ids"
	"github.com/jmaren/surveygrid/log"
	"github.com/jmaren/surveygrid/model"
)

type View string

const (
	Dashboard View = "dashboard"
	Create    View = "create"
	Templates View = "templates"
	Respond   View = "respond"
	Responses View = "responses"
)

type ResponseViewMode string

const (
	GridMode ResponseViewMode = "grid"
	ListMode ResponseViewMode = "list"
)

// Backend is the REST collaborator; *client.Client satisfies it.
type Backend interface {
	ListSurveys(ctx context.Context) ([]model.Survey, error)
	CreateSurvey(ctx context.Context, draft model.SurveyDraft) (model.Survey, error)
	UpdateSurvey(ctx context.Context, id string, draft model.SurveyDraft) (model.Survey, error)
	DeleteSurvey(ctx context.Context, id string) error
	ListTemplates(ctx context.Context) ([]model.Survey, error)
	InitTemplates(ctx context.Context) error
	CreateFromTemplate(ctx context.Context, templateID, title string) (model.Survey, error)
	ListResponses(ctx context.Context, surveyID string) ([]model.Response, error)
	ResponseStats(ctx context.Context, surveyID string) (model.ResponseStats, error)
	SubmitResponse(ctx context.Context, draft model.ResponseDraft) (model.Response, error)
}

type Controller struct {
	backend Backend
	ids     ids.Generator
	confirm func(prompt string) bool

	view      View
	surveys   []model.Survey
	templates []model.Survey
	selected  *model.Survey
	editor    *editor.Editor
	session   *form.Session
	grid      *grid.Grid
	stats     model.ResponseStats
	mode      ResponseViewMode
}

// New builds a controller showing the dashboard. confirm guards destructive
// actions; a nil confirm denies them all.
func New(backend Backend, gen ids.Generator, confirm func(prompt string) bool) *Controller {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Controller{
		backend: backend,
		ids:     gen,
		confirm: confirm,
		view:    Dashboard,
		mode:    GridMode,
	}
}

func (c *Controller) View() View                 { return c.view }
func (c *Controller) Surveys() []model.Survey    { return c.surveys }
func (c *Controller) Templates() []model.Survey  { return c.templates }
func (c *Controller) Selected() *model.Survey    { return c.selected }
func (c *Controller) Editor() *editor.Editor     { return c.editor }
func (c *Controller) Session() *form.Session     { return c.session }
func (c *Controller) Grid() *grid.Grid           { return c.grid }
func (c *Controller) Stats() model.ResponseStats { return c.stats }

func (c *Controller) Mode() ResponseViewMode        { return c.mode }
func (c *Controller) SetMode(mode ResponseViewMode) { c.mode = mode }

// Init seeds the stock templates and loads surveys and templates. Any
// failure aborts the remaining steps and leaves already loaded state intact.
func (c *Controller) Init(ctx context.Context) error {
	err := c.backend.InitTemplates(ctx)
	if err != nil {
		log.Error("view.init_templates:", err)
		return err
	}
	err = c.loadSurveys(ctx)
	if err != nil {
		return err
	}

	templates, err := c.backend.ListTemplates(ctx)
	if err != nil {
		log.Error("view.load_templates:", err)
		return err
	}
	c.templates = templates
	return nil
}

func (c *Controller) loadSurveys(ctx context.Context) error {
	surveys, err := c.backend.ListSurveys(ctx)
	if err != nil {
		log.Error("view.load_surveys:", err)
		return err
	}
	c.surveys = surveys
	return nil
}

// Back returns to the dashboard, dropping any editing sub-mode.
func (c *Controller) Back() {
	c.view = Dashboard
	c.editor = nil
	c.session = nil
	c.grid = nil
	c.selected = nil
}

// StartCreate opens the builder on a blank survey.
func (c *Controller) StartCreate() {
	c.editor = editor.New(c.ids)
	c.view = Create
}

// EditSurvey opens the builder preloaded with an existing survey.
func (c *Controller) EditSurvey(s model.Survey) {
	c.editor = editor.New(c.ids)
	c.editor.Load(s)
	c.view = Create
}

// SaveSurvey persists the builder's draft, creating or updating depending on
// the editing sub-mode, then returns to the dashboard with a fresh survey
// list. On failure the builder keeps its state for another attempt.
func (c *Controller) SaveSurvey(ctx context.Context) error {
	if c.editor == nil {
		return editor.ErrNotSavable
	}
	draft, err := c.editor.Draft()
	if err != nil {
		return err
	}

	if id, editing := c.editor.Editing(); editing {
		_, err = c.backend.UpdateSurvey(ctx, id, draft)
	} else {
		_, err = c.backend.CreateSurvey(ctx, draft)
	}
	if err != nil {
		log.Error("view.save_survey:", err)
		return err
	}

	c.view = Dashboard
	c.editor = nil
	return c.loadSurveys(ctx)
}

// DeleteSurvey asks for confirmation before issuing the delete. Declining is
// not an error.
func (c *Controller) DeleteSurvey(ctx context.Context, id string) error {
	if !c.confirm("Are you sure you want to delete this survey?") {
		return nil
	}

	err := c.backend.DeleteSurvey(ctx, id)
	if err != nil {
		log.Error("view.delete_survey:", err)
		return err
	}
	return c.loadSurveys(ctx)
}

func (c *Controller) BrowseTemplates() {
	c.view = Templates
}

// CreateFromTemplate instantiates a template under the given title. An empty
// title (a cancelled prompt) is a no-op.
func (c *Controller) CreateFromTemplate(ctx context.Context, templateID, title string) error {
	if title == "" {
		return nil
	}

	_, err := c.backend.CreateFromTemplate(ctx, templateID, title)
	if err != nil {
		log.Error("view.create_from_template:", err)
		return err
	}
	return c.loadSurveys(ctx)
}

// OpenRespond starts a respondent session for the survey.
func (c *Controller) OpenRespond(s model.Survey) {
	c.selected = &s
	c.session = form.NewSession(s, c.backend)
	c.view = Respond
}

// OpenResponses loads the survey's responses and shows the analytics view.
// A stats failure is logged but does not block the grid; a response-load
// failure aborts and keeps the current view.
func (c *Controller) OpenResponses(ctx context.Context, s model.Survey) error {
	responses, err := c.backend.ListResponses(ctx, s.ID)
	if err != nil {
		log.Error("view.load_responses:", err)
		return err
	}

	stats, err := c.backend.ResponseStats(ctx, s.ID)
	if err != nil {
		log.Error("view.load_stats:", err)
		stats = model.ResponseStats{}
	}

	c.selected = &s
	c.grid = grid.New(s, responses)
	c.stats = stats
	c.view = Responses
	return nil
}

// Refresh reloads the responses currently shown in the grid, keeping all
// transient grid parameters.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.grid == nil || c.selected == nil {
		return nil
	}

	responses, err := c.backend.ListResponses(ctx, c.selected.ID)
	if err != nil {
		log.Error("view.refresh_responses:", err)
		return err
	}
	c.grid.SetResponses(responses)
	return nil
}
