package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"newsbrief/pkg/news"
)

const groqBaseURL = "https://api.groq.com/openai/v1/"

const summarySystemPrompt = "You are a professional news analyst. Provide clear, concise, and informative summaries of news topics. Always respond with valid JSON format."

const maxPromptArticles = 10

// TopicSummary is the shaped output of one summarization call, ready to be
// saved through the summary API.
type TopicSummary struct {
	Topic         string    `json:"topic"`
	Summary       string    `json:"summary"`
	KeyPoints     []string  `json:"keyPoints"`
	TotalArticles int       `json:"totalArticles"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// GroqClient summarizes articles through Groq's OpenAI-compatible
// chat-completions endpoint.
type GroqClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewGroqClient(apiKey string) *GroqClient {
	return newGroqClient(apiKey, groqBaseURL)
}

func newGroqClient(apiKey, baseURL string) *GroqClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &GroqClient{
		client: &client,
		model:  "llama3-8b-8192",
	}
}

// GenerateTopicSummary asks the model for a summary of the given articles.
// When the model ignores the JSON instruction, its raw text becomes the
// summary and a single placeholder key point is supplied.
func (c *GroqClient) GenerateTopicSummary(ctx context.Context, topic string, articles []news.Article) (*TopicSummary, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarySystemPrompt),
			openai.UserMessage(buildSummaryPrompt(topic, articles)),
		},
		MaxTokens:   openai.Int(1000),
		Temperature: openai.Float(0.7),
	})

	if err != nil {
		return nil, fmt.Errorf("groq API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from groq")
	}

	content := resp.Choices[0].Message.Content

	var parsed struct {
		Summary   string   `json:"summary"`
		KeyPoints []string `json:"keyPoints"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &parsed); err != nil {
		parsed.Summary = content
		parsed.KeyPoints = []string{"Summary generated successfully"}
	}
	if parsed.KeyPoints == nil {
		parsed.KeyPoints = []string{}
	}

	return &TopicSummary{
		Topic:         topic,
		Summary:       parsed.Summary,
		KeyPoints:     parsed.KeyPoints,
		TotalArticles: len(articles),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

func buildSummaryPrompt(topic string, articles []news.Article) string {
	var sb strings.Builder
	n := len(articles)
	if n > maxPromptArticles {
		n = maxPromptArticles
	}
	for i := 0; i < n; i++ {
		a := articles[i]
		fmt.Fprintf(&sb, "Title: %s\nDescription: %s\nSource: %s\n\n", a.Title, a.Description, a.Source.Name)
	}

	return fmt.Sprintf(`Analyze the following %s news articles and provide:
1. A comprehensive summary of the main trends and developments
2. Key points (3-5 bullet points) highlighting the most important information
3. Make it engaging and informative for general readers

News Articles:
%s
Please format your response as JSON with the following structure:
{
  "summary": "Your comprehensive summary here",
  "keyPoints": ["Point 1", "Point 2", "Point 3"]
}`, topic, sb.String())
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
