package domain

import (
	"time"
)

// QuestionResponse is one answer inside a response set.
type QuestionResponse struct {
	QuestionID int64     `json:"questionId"`
	Answer     Answer    `json:"answer"`
	AnsweredAt time.Time `json:"answeredAt"`
	TimeSpent  *float64  `json:"timeSpent,omitempty"`
}

// ResponseSubmission is what a respondent sends for one survey.
type ResponseSubmission struct {
	Responses   []QuestionResponse `json:"responses"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	TimeSpent   *float64           `json:"timeSpent,omitempty"`
}

// SurveyResponse is a stored response set.
type SurveyResponse struct {
	ID          string             `json:"id"`
	SurveyID    string             `json:"surveyId"`
	Responses   []QuestionResponse `json:"responses"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	TimeSpent   *float64           `json:"timeSpent,omitempty"`
	SubmittedAt time.Time          `json:"submittedAt"`
	IPAddress   string             `json:"-"`
}
