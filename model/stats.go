package model

// QuestionStats aggregates the answers one question received.
type QuestionStats struct {
	QuestionTitle      string         `json:"question_title"`
	QuestionType       QuestionType   `json:"question_type"`
	AnsweredCount      int            `json:"answered_count"`
	CompletionRate     float64        `json:"completion_rate"`
	OptionDistribution map[string]int `json:"option_distribution"`
	AverageRating      *float64       `json:"average_rating"`
}

type ResponseStats struct {
	TotalResponses int                      `json:"total_responses"`
	SurveyTitle    string                   `json:"survey_title"`
	QuestionStats  map[string]QuestionStats `json:"question_stats"`
}
