package domain

import (
	"time"
)

type SurveySettings struct {
	AllowBack    bool `json:"allowBack" yaml:"allowBack"`
	ShowProgress bool `json:"showProgress" yaml:"showProgress"`
	AutoSave     bool `json:"autoSave" yaml:"autoSave"`
}

// DefaultSettings are applied when a create request carries no settings.
func DefaultSettings() SurveySettings {
	return SurveySettings{AllowBack: true, ShowProgress: true, AutoSave: false}
}

// SurveyStats are server-maintained counters. AverageTime is in seconds and
// CompletionRate is a percentage of responses that reported a completion time.
type SurveyStats struct {
	TotalResponses int64   `json:"totalResponses"`
	CompletionRate float64 `json:"completionRate"`
	AverageTime    float64 `json:"averageTime"`
}

// Survey is the server-owned, published copy of a draft.
type Survey struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Questions     []Question     `json:"questions"`
	QuestionCount int            `json:"questionCount"`
	EstimatedTime string         `json:"estimatedTime,omitempty"`
	Settings      SurveySettings `json:"settings"`
	IsPublished   bool           `json:"isPublished"`
	ShareURL      string         `json:"shareUrl"`
	Stats         SurveyStats    `json:"stats"`
	CreatedBy     string         `json:"createdBy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Public strips creator information and counters for unauthenticated readers.
func (s *Survey) Public() *PublicSurvey {
	return &PublicSurvey{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Questions:     CloneQuestions(s.Questions),
		QuestionCount: len(s.Questions),
		EstimatedTime: s.EstimatedTime,
		Settings:      s.Settings,
	}
}

// PublicSurvey is what respondents receive.
type PublicSurvey struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Questions     []Question     `json:"questions"`
	QuestionCount int            `json:"questionCount"`
	EstimatedTime string         `json:"estimatedTime,omitempty"`
	Settings      SurveySettings `json:"settings"`
}

// SurveyCreateRequest is the persistence-ready payload produced by a draft.
type SurveyCreateRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Questions     []Question      `json:"questions"`
	EstimatedTime string          `json:"estimatedTime,omitempty"`
	Settings      *SurveySettings `json:"settings,omitempty"`
}

type SurveyCreated struct {
	SurveyID  string `json:"surveyId"`
	ShareURL  string `json:"shareUrl"`
	QRCodeURL string `json:"qrCodeUrl"`
}

// SurveySummary is the creator's dashboard view of one survey.
type SurveySummary struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	QuestionCount int         `json:"questionCount"`
	EstimatedTime string      `json:"estimatedTime,omitempty"`
	IsPublished   bool        `json:"isPublished"`
	ShareURL      string      `json:"shareUrl"`
	Stats         SurveyStats `json:"stats"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (s *Survey) Summary() SurveySummary {
	return SurveySummary{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		QuestionCount: s.QuestionCount,
		EstimatedTime: s.EstimatedTime,
		IsPublished:   s.IsPublished,
		ShareURL:      s.ShareURL,
		Stats:         s.Stats,
		CreatedAt:     s.CreatedAt,
	}
}
