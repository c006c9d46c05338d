// Package client is the HTTP counterpart of the routes package: one method
// per API endpoint, used by the view controller and the respondent form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/jmaren/surveygrid/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API served at baseURL (e.g.
// "http://localhost:8080"). The "/api" prefix is appended here.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api",
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "%s %s: encode body", method, path)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return errors.Wrapf(err, "%s %s: decode body", method, path)
		}
	}
	return nil
}

func (c *Client) ListSurveys(ctx context.Context) (surveys []model.Survey, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys", nil, &surveys)
	return
}

func (c *Client) CreateSurvey(ctx context.Context, draft model.SurveyDraft) (survey model.Survey, err error) {
	err = c.do(ctx, http.MethodPost, "/surveys", draft, &survey)
	return
}

func (c *Client) GetSurvey(ctx context.Context, id string) (survey model.Survey, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(id), nil, &survey)
	return
}

func (c *Client) UpdateSurvey(ctx context.Context, id string, draft model.SurveyDraft) (survey model.Survey, err error) {
	err = c.do(ctx, http.MethodPut, "/surveys/"+url.PathEscape(id), draft, &survey)
	return
}

func (c *Client) DeleteSurvey(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/surveys/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListTemplates(ctx context.Context) (templates []model.Survey, err error) {
	err = c.do(ctx, http.MethodGet, "/templates", nil, &templates)
	return
}

func (c *Client) InitTemplates(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/init-templates", nil, nil)
}

func (c *Client) CreateFromTemplate(ctx context.Context, templateID, title string) (survey model.Survey, err error) {
	path := "/templates/" + url.PathEscape(templateID) + "/create-survey?title=" + url.QueryEscape(title)
	err = c.do(ctx, http.MethodPost, path, nil, &survey)
	return
}

func (c *Client) ListResponses(ctx context.Context, surveyID string) (responses []model.Response, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(surveyID)+"/responses", nil, &responses)
	return
}

func (c *Client) ResponseStats(ctx context.Context, surveyID string) (stats model.ResponseStats, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(surveyID)+"/responses/stats", nil, &stats)
	return
}

func (c *Client) SubmitResponse(ctx context.Context, draft model.ResponseDraft) (response model.Response, err error) {
	err = c.do(ctx, http.MethodPost, "/responses", draft, &response)
	return
}
