// Package anthropic writes letters with Claude.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/credit-disputer/internal/config"
)

// Writer produces letter text through the Messages API.
type Writer struct {
	client    sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewWriter creates a Writer from the letter config. Extra options are
// appended after the API key (tests pass option.WithBaseURL).
func NewWriter(logger *slog.Logger, cfg config.LetterConfig, opts ...option.RequestOption) *Writer {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &Writer{
		client:    sdk.NewClient(opts...),
		model:     cfg.DefaultModel(),
		maxTokens: int64(cfg.MaxTokens),
		log:       logger.With("adapter", "anthropic"),
	}
}

// Write sends one system+user prompt and returns the concatenated text blocks.
func (w *Writer) Write(ctx context.Context, system, prompt string) (string, error) {
	msg, err := w.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(w.model),
		MaxTokens: w.maxTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: messages: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", errors.New("anthropic: empty response")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	w.log.DebugContext(ctx, "letter written",
		slog.String("model", w.model),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return b.String(), nil
}
