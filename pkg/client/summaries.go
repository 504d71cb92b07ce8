package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"newsbrief/internal/models"
	"newsbrief/pkg/llm"
)

// Client is a typed wrapper over the summary REST API, used by frontends and
// tooling instead of hand-building requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Pagination describes the page of results a list call returned.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type listEnvelope struct {
	Success    bool                  `json:"success"`
	Data       []models.SavedSummary `json:"data"`
	Pagination Pagination            `json:"pagination"`
	Error      string                `json:"error"`
}

type itemEnvelope struct {
	Success bool                 `json:"success"`
	Data    *models.SavedSummary `json:"data"`
	Message string               `json:"message"`
	Error   string               `json:"error"`
}

// SaveSummary persists a generated topic summary. An empty title gets the
// derived default before the request is sent, matching what the UI does.
func (c *Client) SaveSummary(ctx context.Context, summary *llm.TopicSummary, title string, tags []string) (*models.SavedSummary, error) {
	if title == "" {
		title = models.DefaultTitle(summary.Topic)
	}
	if tags == nil {
		tags = []string{}
	}

	total := summary.TotalArticles
	body := models.CreateSummaryRequest{
		Topic:         summary.Topic,
		Summary:       summary.Summary,
		KeyPoints:     summary.KeyPoints,
		TotalArticles: &total,
		GeneratedAt:   summary.GeneratedAt.Format(time.RFC3339),
		Title:         title,
		Tags:          tags,
	}

	var env itemEnvelope
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/summaries", body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, envelopeError(env.Error, "failed to save summary")
	}
	return env.Data, nil
}

// SavedSummaries fetches one page of saved summaries. topic may be empty or
// "all" to skip the topic filter.
func (c *Client) SavedSummaries(ctx context.Context, topic string, page, limit int, favorite bool) ([]models.SavedSummary, *Pagination, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/summaries", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("summaries request: %w", err)
	}

	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("favorite", strconv.FormatBool(favorite))
	if topic != "" && topic != "all" {
		q.Set("topic", topic)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("summaries fetch: %w", err)
	}
	defer resp.Body.Close()

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("summaries decode: %w", err)
	}
	if !env.Success {
		return nil, nil, envelopeError(env.Error, "failed to fetch summaries")
	}
	return env.Data, &env.Pagination, nil
}

// SummaryByID fetches one saved summary.
func (c *Client) SummaryByID(ctx context.Context, id string) (*models.SavedSummary, error) {
	var env itemEnvelope
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/summaries/"+id, nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, envelopeError(env.Error, "failed to fetch summary")
	}
	return env.Data, nil
}

// UpdateSummary applies a partial update; nil fields are not sent.
func (c *Client) UpdateSummary(ctx context.Context, id string, update models.UpdateSummaryRequest) (*models.SavedSummary, error) {
	var env itemEnvelope
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/api/summaries/"+id, update, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, envelopeError(env.Error, "failed to update summary")
	}
	return env.Data, nil
}

// ToggleFavorite flips only the favorite flag, leaving title and tags alone.
func (c *Client) ToggleFavorite(ctx context.Context, id string, favorite bool) (*models.SavedSummary, error) {
	return c.UpdateSummary(ctx, id, models.UpdateSummaryRequest{IsFavorite: &favorite})
}

// DeleteSummary removes a saved summary.
func (c *Client) DeleteSummary(ctx context.Context, id string) error {
	var env itemEnvelope
	if err := c.do(ctx, http.MethodDelete, c.baseURL+"/api/summaries/"+id, nil, &env); err != nil {
		return err
	}
	if !env.Success {
		return envelopeError(env.Error, "failed to delete summary")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("summaries request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("summaries request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("summaries fetch: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("summaries decode: %w", err)
	}
	return nil
}

func envelopeError(msg, fallback string) error {
	if msg == "" {
		msg = fallback
	}
	return fmt.Errorf("summaries api: %s", msg)
}
