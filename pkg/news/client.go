package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Source identifies the outlet an article came from.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Favicon string `json:"favicon"`
}

// Article is one news item as returned by the topic-search API.
type Article struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Date        string   `json:"date"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Source      Source   `json:"source"`
	Keywords    []string `json:"keywords"`
	Authors     []string `json:"authors"`
}

// Response is the envelope the news API wraps article listings in.
type Response struct {
	Success bool      `json:"success"`
	Total   int       `json:"total"`
	Data    []Article `json:"data"`
}

// Client fetches topic-categorized articles from the RapidAPI news endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, apiHost string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiHost:    apiHost,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// TopicNews fetches US English-language articles for one topic.
func (c *Client) TopicNews(ctx context.Context, topic string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}

	q := req.URL.Query()
	q.Set("country", "US")
	q.Set("language", "en")
	q.Set("topic", topic)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api: unexpected status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}
	return &out, nil
}
