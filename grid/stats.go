package grid

import (
	"math"

	"github.com/jmaren/surveygrid/model"
)

// Summary condenses the stats endpoint's payload into the four headline
// numbers shown above the grid.
type Summary struct {
	TotalResponses int
	// AvgCompletionRate is the rounded mean of the per-question completion
	// rates, as a percentage. Zero when there are no questions or no
	// responses.
	AvgCompletionRate int
	QuestionCount     int
	// AvgPerWeek divides the total by a flat 7, not by elapsed calendar
	// weeks. Known simplification, kept as-is.
	AvgPerWeek int
}

func Summarize(survey model.Survey, stats model.ResponseStats) Summary {
	summary := Summary{
		TotalResponses: stats.TotalResponses,
		QuestionCount:  len(survey.Questions),
	}

	if stats.TotalResponses > 0 && len(stats.QuestionStats) > 0 {
		sum := 0.0
		for _, qs := range stats.QuestionStats {
			sum += qs.CompletionRate
		}
		summary.AvgCompletionRate = int(math.Round(sum / float64(len(stats.QuestionStats))))
	}

	if stats.TotalResponses > 0 {
		summary.AvgPerWeek = stats.TotalResponses / 7
	}

	return summary
}
