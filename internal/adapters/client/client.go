// Package client is a typed HTTP client of the gateway API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

// APIError is a non-2xx gateway response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code back onto the domain sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return domain.ErrInternal
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient replaces the underlying client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Templates(ctx context.Context) ([]templates.Template, error) {
	var out struct {
		Templates []templates.Template `json:"templates"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/templates", nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateSurvey(ctx context.Context, req domain.SurveyCreateRequest) (*domain.SurveyCreated, error) {
	var created domain.SurveyCreated
	if err := c.do(ctx, http.MethodPost, "/api/surveys", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListSurveys(ctx context.Context) ([]domain.SurveySummary, error) {
	var out struct {
		Surveys []domain.SurveySummary `json:"surveys"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/surveys", nil, &out); err != nil {
		return nil, err
	}
	return out.Surveys, nil
}

func (c *Client) GetPublicSurvey(ctx context.Context, id string) (*domain.PublicSurvey, error) {
	var survey domain.PublicSurvey
	if err := c.do(ctx, http.MethodGet, "/api/surveys/"+url.PathEscape(id)+"/public", nil, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

// SubmitResponse posts a finished response set and returns its id.
func (c *Client) SubmitResponse(ctx context.Context, surveyID string, sub domain.ResponseSubmission) (string, error) {
	var out struct {
		ResponseID string `json:"responseId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/surveys/"+url.PathEscape(surveyID)+"/responses", sub, &out); err != nil {
		return "", err
	}
	return out.ResponseID, nil
}

func (c *Client) ListResponses(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	var out struct {
		Responses []*domain.SurveyResponse `json:"responses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/surveys/"+url.PathEscape(surveyID)+"/responses", nil, &out); err != nil {
		return nil, err
	}
	return out.Responses, nil
}
