// Package grid is the response table pipeline: it derives the visible
// subset of a survey's responses by filtering, sorting and paginating, and
// exports the filtered set as CSV. Every derivation recomputes from the full
// collection, so the output only depends on the current parameters.
package grid

import (
	"sort"
	"strings"
	"time"

	"github.com/jmaren/surveygrid/model"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

const DefaultPageSize = 10

type Grid struct {
	survey    model.Survey
	responses []model.Response

	SortBy     string
	Order      SortOrder
	FilterText string
	Page       int // 1-based
	PageSize   int

	// Selection is keyed by response id and deliberately independent of
	// filtering: a selected response stays selected while hidden.
	selected map[string]bool
}

func New(survey model.Survey, responses []model.Response) *Grid {
	return &Grid{
		survey:    survey,
		responses: responses,
		SortBy:    "submitted_at",
		Order:     Descending,
		Page:      1,
		PageSize:  DefaultPageSize,
		selected:  map[string]bool{},
	}
}

func (g *Grid) Survey() model.Survey { return g.survey }

// SetResponses swaps in a freshly loaded collection, e.g. after a refresh.
// All transient parameters, selection included, are kept.
func (g *Grid) SetResponses(responses []model.Response) {
	g.responses = responses
}

// ToggleSort sorts by the given column, flipping direction when the column
// is already the sort key.
func (g *Grid) ToggleSort(column string) {
	if g.SortBy == column {
		if g.Order == Ascending {
			g.Order = Descending
		} else {
			g.Order = Ascending
		}
	} else {
		g.SortBy = column
		g.Order = Ascending
	}
}

// Filtered retains the responses where some question's answer contains the
// filter text, case-insensitively. Multi-valued answers match against their
// values joined by a space; absent answers never match a non-empty filter.
func (g *Grid) Filtered() []model.Response {
	if g.FilterText == "" {
		return append([]model.Response(nil), g.responses...)
	}

	needle := strings.ToLower(g.FilterText)
	matched := []model.Response{}
	for _, resp := range g.responses {
		for _, q := range g.survey.Questions {
			text := model.AnswerText(resp.Answers[q.ID], " ")
			if strings.Contains(strings.ToLower(text), needle) {
				matched = append(matched, resp)
				break
			}
		}
	}
	return matched
}

// Sorted applies the sort stage to the filtered set. The sort is stable, so
// rows with equal keys keep their original relative order; descending is the
// negated ascending comparator, not a separate one.
func (g *Grid) Sorted() []model.Response {
	rows := g.Filtered()

	compare := g.comparator()
	if g.Order == Descending {
		asc := compare
		compare = func(a, b model.Response) int { return -asc(a, b) }
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compare(rows[i], rows[j]) < 0
	})
	return rows
}

func (g *Grid) comparator() func(a, b model.Response) int {
	switch g.SortBy {
	case "", "submitted_at":
		return func(a, b model.Response) int {
			return compareTimes(a.SubmittedAt, b.SubmittedAt)
		}
	case "id":
		return func(a, b model.Response) int {
			return strings.Compare(a.ID, b.ID)
		}
	case "survey_id":
		return func(a, b model.Response) int {
			return strings.Compare(a.SurveyID, b.SurveyID)
		}
	default:
		// any other key is a question id: compare that question's answers,
		// numerically when both sides are numbers, as text otherwise
		questionID := g.SortBy
		return func(a, b model.Response) int {
			return compareAnswers(a.Answers[questionID], b.Answers[questionID])
		}
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareAnswers(a, b model.Answer) int {
	fa, aNum := model.AnswerNumber(a)
	fb, bNum := model.AnswerNumber(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(model.AnswerText(a, " "), model.AnswerText(b, " "))
}

// Window is the pagination stage: the current page of the sorted, filtered
// sequence. An out-of-range page yields an empty window; the page number is
// never clamped on the caller's behalf.
func (g *Grid) Window() []model.Response {
	rows := g.Sorted()
	if g.Page < 1 || g.PageSize < 1 {
		return nil
	}

	start := (g.Page - 1) * g.PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + g.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// TotalPages is ceil(filtered count / page size), with a minimum of one page
// even for an empty collection.
func (g *Grid) TotalPages() int {
	count := len(g.Filtered())
	if count == 0 || g.PageSize < 1 {
		return 1
	}
	return (count + g.PageSize - 1) / g.PageSize
}

func (g *Grid) IsSelected(id string) bool {
	return g.selected[id]
}

func (g *Grid) ToggleSelect(id string) {
	if g.selected[id] {
		delete(g.selected, id)
	} else {
		g.selected[id] = true
	}
}

// ToggleSelectAll clears the selection when it already covers the filtered
// set, and otherwise selects every filtered (not just paginated) response.
func (g *Grid) ToggleSelectAll() {
	filtered := g.Filtered()
	if len(g.selected) == len(filtered) {
		g.selected = map[string]bool{}
		return
	}
	g.selected = make(map[string]bool, len(filtered))
	for _, resp := range filtered {
		g.selected[resp.ID] = true
	}
}

func (g *Grid) ClearSelection() {
	g.selected = map[string]bool{}
}

func (g *Grid) SelectedCount() int {
	return len(g.selected)
}

// Selected returns the selected subset of the full collection, in original
// order. Selected ids hidden by the current filter are still included.
func (g *Grid) Selected() []model.Response {
	var out []model.Response
	for _, resp := range g.responses {
		if g.selected[resp.ID] {
			out = append(out, resp)
		}
	}
	return out
}

// ExportCSV encodes the filtered (not paginated) set: a header row, then one
// row per response with the response id, submission time and one column per
// survey question. Data cells are double-quote-wrapped with inner quotes
// doubled; absent answers export as the literal "No response".
func (g *Grid) ExportCSV() string {
	header := []string{"Response ID", "Submitted At"}
	for _, q := range g.survey.Questions {
		header = append(header, q.Title)
	}

	lines := []string{strings.Join(header, ",")}
	for _, resp := range g.Filtered() {
		row := []string{
			quote(resp.ID),
			quote(resp.SubmittedAt.Local().Format("2006-01-02 15:04:05")),
		}
		for _, q := range g.survey.Questions {
			answer, ok := resp.Answers[q.ID]
			text := model.AnswerText(answer, ", ")
			if !ok || text == "" {
				text = "No response"
			}
			row = append(row, quote(text))
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// Filename names the exported file after the survey.
func (g *Grid) Filename() string {
	return g.survey.Title + "_responses.csv"
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
