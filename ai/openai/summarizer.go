package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/triage/ai"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Summarizer implements ai.Summarizer with a map-reduce summarization chain.
// Each document is summarized independently and the partial summaries are
// combined, so inputs larger than the model's context window still work.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(clientToken(config)),
		openai.WithModel(config.GenerativeModel),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize produces a summary of the given document texts.
func (s *Summarizer) Summarize(ctx context.Context, texts []string) (string, error) {
	if len(texts) == 0 {
		return "", fmt.Errorf("no documents to summarize")
	}

	s.logger.Debug("summarizing documents", "count", len(texts))

	docs := make([]schema.Document, len(texts))
	for i, text := range texts {
		docs[i] = schema.Document{PageContent: text}
	}

	chain := chains.LoadMapReduceSummarization(s.client)
	result, err := chains.Call(ctx, chain, map[string]any{"input_documents": docs})
	if err != nil {
		s.logger.Error("summarization chain failed", "err", err)
		return "", err
	}

	summary, ok := result["text"].(string)
	if !ok {
		return "", fmt.Errorf("summarization chain returned no text output")
	}

	return strings.TrimSpace(summary), nil
}
