package grid

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmaren/surveygrid/model"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testSurvey() model.Survey {
	return model.Survey{
		ID:    "s1",
		Title: "Color Survey",
		Questions: []model.Question{
			{ID: "q1", Type: model.TypeText, Title: "Favorite color"},
			{ID: "q2", Type: model.TypeCheckbox, Title: "Liked colors"},
			{ID: "q3", Type: model.TypeRating, Title: "Rating", MinRating: 1, MaxRating: 5},
		},
	}
}

func response(id string, minute int, answers map[string]model.Answer) model.Response {
	return model.Response{
		ID:          id,
		SurveyID:    "s1",
		SubmittedAt: baseTime.Add(time.Duration(minute) * time.Minute),
		Answers:     answers,
	}
}

func TestFilterRetainsSubstringMatches(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": "I like blue"}),
		response("r2", 1, map[string]model.Answer{"q1": "red"}),
	})
	g.FilterText = "blue"

	filtered := g.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "r1", filtered[0].ID)
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": "Dark BLUE"}),
	})
	g.FilterText = "blue"

	assert.Len(t, g.Filtered(), 1)
}

func TestFilterEmptyTextKeepsEverything(t *testing.T) {
	responses := []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": "blue"}),
		response("r2", 1, nil),
	}
	g := New(testSurvey(), responses)

	assert.Len(t, g.Filtered(), len(responses))
}

func TestFilterJoinsMultiValuedAnswersWithSpace(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q2": []string{"red", "blue"}}),
	})

	// the needle spans the joined values
	g.FilterText = "red blue"
	assert.Len(t, g.Filtered(), 1)

	g.FilterText = "red, blue"
	assert.Empty(t, g.Filtered())
}

func TestFilterAbsentAnswersNeverMatch(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, nil),
		response("r2", 1, map[string]model.Answer{"q1": ""}),
	})
	g.FilterText = "anything"

	assert.Empty(t, g.Filtered())
}

func TestFilteredIsSubsetOfInput(t *testing.T) {
	responses := []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": "blue sky"}),
		response("r2", 1, map[string]model.Answer{"q1": "red"}),
		response("r3", 2, map[string]model.Answer{"q2": []string{"blue", "green"}}),
	}
	g := New(testSurvey(), responses)
	g.FilterText = "blue"

	byID := map[string]bool{}
	for _, r := range responses {
		byID[r.ID] = true
	}
	for _, r := range g.Filtered() {
		assert.True(t, byID[r.ID])
	}
}

func TestSortIsAPermutation(t *testing.T) {
	responses := []model.Response{
		response("r1", 2, map[string]model.Answer{"q3": 4}),
		response("r2", 0, map[string]model.Answer{"q3": 1}),
		response("r3", 1, map[string]model.Answer{"q3": 5}),
	}
	g := New(testSurvey(), responses)
	g.SortBy, g.Order = "q3", Ascending

	sorted := g.Sorted()
	require.Len(t, sorted, len(responses))

	seen := map[string]int{}
	for _, r := range sorted {
		seen[r.ID]++
	}
	for _, r := range responses {
		assert.Equal(t, 1, seen[r.ID])
	}
}

func TestSortIsIdempotent(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 2, map[string]model.Answer{"q3": 3}),
		response("r2", 0, map[string]model.Answer{"q3": 3}),
		response("r3", 1, map[string]model.Answer{"q3": 5}),
	})
	g.SortBy, g.Order = "q3", Descending

	first := g.Sorted()
	g.SetResponses(first)
	second := g.Sorted()
	assert.Equal(t, first, second)
}

func TestSortDescendingKeepsTiesInOriginalOrder(t *testing.T) {
	// ratings 5, 3, 3 submitted at T1 < T2 < T3
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q3": 5}),
		response("r2", 1, map[string]model.Answer{"q3": 3}),
		response("r3", 2, map[string]model.Answer{"q3": 3}),
	})
	g.SortBy, g.Order = "q3", Descending

	sorted := g.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, "r1", sorted[0].ID)
	assert.Equal(t, "r2", sorted[1].ID)
	assert.Equal(t, "r3", sorted[2].ID)
}

func TestSortBySubmittedAt(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 5, nil),
		response("r2", 1, nil),
		response("r3", 3, nil),
	})
	g.SortBy, g.Order = "submitted_at", Ascending

	sorted := g.Sorted()
	assert.Equal(t, []string{"r2", "r3", "r1"}, responseIDs(sorted))

	g.Order = Descending
	sorted = g.Sorted()
	assert.Equal(t, []string{"r1", "r3", "r2"}, responseIDs(sorted))
}

func TestSortNumericAnswersCompareNumerically(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q3": 10}),
		response("r2", 1, map[string]model.Answer{"q3": 5}),
	})
	g.SortBy, g.Order = "q3", Ascending

	// "10" < "5" as text; 5 < 10 as numbers
	assert.Equal(t, []string{"r2", "r1"}, responseIDs(g.Sorted()))
}

func TestToggleSort(t *testing.T) {
	g := New(testSurvey(), nil)
	require.Equal(t, "submitted_at", g.SortBy)
	require.Equal(t, Descending, g.Order)

	g.ToggleSort("q1")
	assert.Equal(t, "q1", g.SortBy)
	assert.Equal(t, Ascending, g.Order)

	g.ToggleSort("q1")
	assert.Equal(t, Descending, g.Order)
}

func manyResponses(n int) []model.Response {
	out := make([]model.Response, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, response(fmt.Sprintf("r%02d", i), i, map[string]model.Answer{"q3": i % 5}))
	}
	return out
}

func TestPaginationWindow(t *testing.T) {
	g := New(testSurvey(), manyResponses(25))
	g.SortBy, g.Order = "submitted_at", Ascending
	g.PageSize = 10
	g.Page = 3

	window := g.Window()
	require.Len(t, window, 5)
	assert.Equal(t, "r21", window[0].ID)
	assert.Equal(t, "r25", window[4].ID)
	assert.Equal(t, 3, g.TotalPages())
}

func TestPaginationCoversAllRowsExactlyOnce(t *testing.T) {
	g := New(testSurvey(), manyResponses(23))
	g.PageSize = 7

	seen := map[string]int{}
	total := 0
	for page := 1; page <= g.TotalPages(); page++ {
		g.Page = page
		for _, r := range g.Window() {
			seen[r.ID]++
			total++
		}
	}
	assert.Equal(t, 23, total)
	for id, count := range seen {
		assert.Equal(t, 1, count, "response %s", id)
	}
}

func TestTotalPagesOfEmptyCollectionIsOne(t *testing.T) {
	g := New(testSurvey(), nil)
	assert.Equal(t, 1, g.TotalPages())
	assert.Empty(t, g.Window())
}

func TestOutOfRangePageYieldsEmptyWindow(t *testing.T) {
	g := New(testSurvey(), manyResponses(5))
	g.PageSize = 10
	g.Page = 2

	// the page is not clamped back into range
	assert.Empty(t, g.Window())
	assert.Equal(t, 2, g.Page)
	assert.Equal(t, 1, g.TotalPages())
}

func TestSelectionSurvivesFilterChanges(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": "blue"}),
		response("r2", 1, map[string]model.Answer{"q1": "red"}),
	})

	g.ToggleSelect("r2")
	g.FilterText = "blue" // hides r2

	assert.True(t, g.IsSelected("r2"))
	selected := g.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "r2", selected[0].ID)
}

func TestToggleSelectAllTargetsFilteredSet(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": "blue"}),
		response("r2", 1, map[string]model.Answer{"q1": "light blue"}),
		response("r3", 2, map[string]model.Answer{"q1": "red"}),
	})
	g.FilterText = "blue"

	g.ToggleSelectAll()
	assert.Equal(t, 2, g.SelectedCount())
	assert.True(t, g.IsSelected("r1"))
	assert.True(t, g.IsSelected("r2"))
	assert.False(t, g.IsSelected("r3"))

	g.ToggleSelectAll()
	assert.Zero(t, g.SelectedCount())
}

func TestExportCSVRoundTrip(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{
			"q1": "blue",
			"q2": []string{"red", "green"},
			"q3": 4,
		}),
		response("r2", 1, map[string]model.Answer{"q1": "red"}),
	})

	out := g.ExportCSV()
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	// header + one row per filtered response
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Response ID", "Submitted At", "Favorite color", "Liked colors", "Rating"}, records[0])

	assert.Equal(t, "r1", records[1][0])
	assert.Equal(t, "blue", records[1][2])
	assert.Equal(t, "red, green", records[1][3])
	assert.Equal(t, "4", records[1][4])

	// absent answers export as the literal
	assert.Equal(t, "No response", records[2][3])
	assert.Equal(t, "No response", records[2][4])
}

func TestExportCSVUsesFilteredNotPaginatedSet(t *testing.T) {
	g := New(testSurvey(), manyResponses(25))
	g.PageSize = 10
	g.Page = 1

	records, err := csv.NewReader(strings.NewReader(g.ExportCSV())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 26)
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	g := New(testSurvey(), []model.Response{
		response("r1", 0, map[string]model.Answer{"q1": `the "best" color`}),
	})

	records, err := csv.NewReader(strings.NewReader(g.ExportCSV())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `the "best" color`, records[1][2])
}

func TestFilename(t *testing.T) {
	g := New(testSurvey(), nil)
	assert.Equal(t, "Color Survey_responses.csv", g.Filename())
}

func responseIDs(responses []model.Response) []string {
	ids := make([]string, len(responses))
	for i, r := range responses {
		ids[i] = r.ID
	}
	return ids
}
