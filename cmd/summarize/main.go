package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"newsbrief/internal/models"
	"newsbrief/pkg/client"
	"newsbrief/pkg/config"
	"newsbrief/pkg/llm"
	"newsbrief/pkg/news"
)

// Fetches articles for one topic, generates an AI summary, and optionally
// saves it through the summary API.
func main() {
	topic := flag.String("topic", "general", "news topic to summarize")
	apiURL := flag.String("api", "http://localhost:8080", "summary API base URL")
	save := flag.Bool("save", true, "persist the generated summary")
	flag.Parse()

	if !models.ValidTopic(*topic) {
		logrus.Fatalf("Unknown topic %q, expected one of %v", *topic, models.SummaryTopics)
	}

	cfg := config.Load()
	if cfg.NewsAPIKey == "" {
		logrus.Fatal("NEWS_API_KEY environment variable not set")
	}
	if cfg.GroqAPIKey == "" {
		logrus.Fatal("GROQ_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	newsClient := news.NewClient(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.NewsAPIHost)
	listing, err := newsClient.TopicNews(ctx, *topic)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to fetch articles")
	}
	if len(listing.Data) == 0 {
		logrus.WithField("topic", *topic).Fatal("No articles returned")
	}

	summarizer := llm.NewGroqClient(cfg.GroqAPIKey)
	summary, err := summarizer.GenerateTopicSummary(ctx, *topic, listing.Data)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to generate summary")
	}

	fmt.Println(summary.Summary)
	for _, point := range summary.KeyPoints {
		fmt.Println("  -", point)
	}

	if !*save {
		return
	}

	saved, err := client.New(*apiURL).SaveSummary(ctx, summary, "", nil)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to save summary")
	}
	logrus.WithField("id", saved.ID.Hex()).Info("Summary saved.")
}
