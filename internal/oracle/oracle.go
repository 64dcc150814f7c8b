// Package oracle wraps the external text-generation API. The rest of the
// codebase treats it as an opaque prompt-in, text-out service.
package oracle

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/seogenix/backend/internal/config"
	"github.com/seogenix/backend/internal/pkg/logger"
)

// Request is one completion call. Temperature and MaxTokens are set per
// endpoint: low temperature for structured output, moderate for free-form
// content and chat.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Oracle is the text-generation interface handlers depend on.
type Oracle interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// OpenAI is the production Oracle.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewOpenAI creates an oracle backed by the OpenAI chat completion API.
func NewOpenAI(cfg config.OracleConfig, log *logger.Logger) *OpenAI {
	return &OpenAI{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  log,
	}
}

// Complete sends a prompt and returns the first choice's content. The call
// carries its own deadline so a slow upstream cannot hold a request open
// indefinitely.
func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
