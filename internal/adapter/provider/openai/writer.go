// Package openai writes letters with OpenAI chat completions.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/heartmarshall/credit-disputer/internal/config"
)

// Writer produces letter text through the chat completions API.
type Writer struct {
	client    sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewWriter creates a Writer from the letter config.
func NewWriter(logger *slog.Logger, cfg config.LetterConfig, opts ...option.RequestOption) *Writer {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &Writer{
		client:    sdk.NewClient(opts...),
		model:     cfg.DefaultModel(),
		maxTokens: int64(cfg.MaxTokens),
		log:       logger.With("adapter", "openai"),
	}
}

// Write sends a system and a user message and returns the first choice.
func (w *Writer) Write(ctx context.Context, system, prompt string) (string, error) {
	resp, err := w.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(w.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(system),
			sdk.UserMessage(prompt),
		},
		MaxTokens:   sdk.Int(w.maxTokens),
		Temperature: sdk.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}

	w.log.DebugContext(ctx, "letter written",
		slog.String("model", w.model),
		slog.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
