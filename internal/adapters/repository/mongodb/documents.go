package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	GoogleID           string             `bson:"googleId"`
	Email              string             `bson:"email"`
	Name               string             `bson:"name"`
	Picture            string             `bson:"picture,omitempty"`
	SocialHandle       string             `bson:"socialHandle,omitempty"`
	Gender             string             `bson:"gender,omitempty"`
	Age                *int               `bson:"age,omitempty"`
	Location           string             `bson:"location,omitempty"`
	Interests          []string           `bson:"interests,omitempty"`
	OnboardingComplete bool               `bson:"onboardingComplete"`
	ProfileCreated     bool               `bson:"profileCreated"`
	LastLogin          *time.Time         `bson:"lastLogin,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:                 d.ID.Hex(),
		GoogleID:           d.GoogleID,
		Email:              d.Email,
		Name:               d.Name,
		Picture:            d.Picture,
		SocialHandle:       d.SocialHandle,
		Gender:             d.Gender,
		Age:                d.Age,
		Location:           d.Location,
		Interests:          d.Interests,
		OnboardingComplete: d.OnboardingComplete,
		ProfileCreated:     d.ProfileCreated,
		LastLogin:          d.LastLogin,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type questionDocument struct {
	ID          int64    `bson:"id"`
	Type        string   `bson:"type"`
	Subtype     string   `bson:"subtype,omitempty"`
	Title       string   `bson:"title"`
	Description string   `bson:"description,omitempty"`
	Options     []string `bson:"options,omitempty"`
	Required    bool     `bson:"required"`
	Placeholder string   `bson:"placeholder,omitempty"`
	MinValue    *float64 `bson:"minValue,omitempty"`
	MaxValue    *float64 `bson:"maxValue,omitempty"`
	Step        *float64 `bson:"step,omitempty"`
	HelpText    string   `bson:"helpText,omitempty"`
}

func newQuestionDocuments(qs []domain.Question) []questionDocument {
	out := make([]questionDocument, len(qs))
	for i, q := range qs {
		q = q.Clone()
		out[i] = questionDocument{
			ID:          q.ID,
			Type:        string(q.Type),
			Subtype:     string(q.Subtype),
			Title:       q.Title,
			Description: q.Description,
			Options:     q.Options,
			Required:    q.Required,
			Placeholder: q.Placeholder,
			MinValue:    q.MinValue,
			MaxValue:    q.MaxValue,
			Step:        q.Step,
			HelpText:    q.HelpText,
		}
	}
	return out
}

func (d questionDocument) toDomain() domain.Question {
	return domain.Question{
		ID:          d.ID,
		Type:        domain.QuestionType(d.Type),
		Subtype:     domain.Subtype(d.Subtype),
		Title:       d.Title,
		Description: d.Description,
		Options:     d.Options,
		Required:    d.Required,
		Placeholder: d.Placeholder,
		MinValue:    d.MinValue,
		MaxValue:    d.MaxValue,
		Step:        d.Step,
		HelpText:    d.HelpText,
	}
}

type settingsDocument struct {
	AllowBack    bool `bson:"allowBack"`
	ShowProgress bool `bson:"showProgress"`
	AutoSave     bool `bson:"autoSave"`
}

type statsDocument struct {
	TotalResponses int64   `bson:"totalResponses"`
	CompletionRate float64 `bson:"completionRate"`
	AverageTime    float64 `bson:"averageTime"`
}

type surveyDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	Questions     []questionDocument `bson:"questions"`
	QuestionCount int                `bson:"questionCount"`
	EstimatedTime string             `bson:"estimatedTime,omitempty"`
	Settings      settingsDocument   `bson:"settings"`
	IsPublished   bool               `bson:"isPublished"`
	ShareURL      string             `bson:"shareUrl,omitempty"`
	Stats         statsDocument      `bson:"stats"`
	CreatedBy     primitive.ObjectID `bson:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d *surveyDocument) toDomain() *domain.Survey {
	questions := make([]domain.Question, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = q.toDomain()
	}
	return &domain.Survey{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Questions:     questions,
		QuestionCount: d.QuestionCount,
		EstimatedTime: d.EstimatedTime,
		Settings:      domain.SurveySettings(d.Settings),
		IsPublished:   d.IsPublished,
		ShareURL:      d.ShareURL,
		Stats:         domain.SurveyStats(d.Stats),
		CreatedBy:     d.CreatedBy.Hex(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type answerDocument struct {
	QuestionID int64     `bson:"questionId"`
	Answer     any       `bson:"answer"`
	AnsweredAt time.Time `bson:"answeredAt"`
	TimeSpent  *float64  `bson:"timeSpent,omitempty"`
}

type responseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SurveyID    primitive.ObjectID `bson:"surveyId"`
	Responses   []answerDocument   `bson:"responses"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty"`
	TimeSpent   *float64           `bson:"timeSpent,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt"`
	IPAddress   string             `bson:"ipAddress,omitempty"`
}

func newAnswerDocuments(rs []domain.QuestionResponse) []answerDocument {
	out := make([]answerDocument, len(rs))
	for i, r := range rs {
		out[i] = answerDocument{
			QuestionID: r.QuestionID,
			Answer:     r.Answer.Raw(),
			AnsweredAt: r.AnsweredAt,
			TimeSpent:  r.TimeSpent,
		}
	}
	return out
}

func (d *responseDocument) toDomain() (*domain.SurveyResponse, error) {
	resp := &domain.SurveyResponse{
		ID:          d.ID.Hex(),
		SurveyID:    d.SurveyID.Hex(),
		Responses:   make([]domain.QuestionResponse, len(d.Responses)),
		CompletedAt: d.CompletedAt,
		TimeSpent:   d.TimeSpent,
		SubmittedAt: d.SubmittedAt,
		IPAddress:   d.IPAddress,
	}
	for i, a := range d.Responses {
		raw := a.Answer
		if arr, ok := raw.(primitive.A); ok {
			raw = []any(arr)
		}
		answer, err := domain.AnswerFromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("response %s question %d: %w", resp.ID, a.QuestionID, err)
		}
		resp.Responses[i] = domain.QuestionResponse{
			QuestionID: a.QuestionID,
			Answer:     answer,
			AnsweredAt: a.AnsweredAt,
			TimeSpent:  a.TimeSpent,
		}
	}
	return resp, nil
}
