// Package llm talks to an OpenAI-compatible chat completion API. It extracts
// structured events from articles and writes on-demand analysis of stored conflicts.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/mappin-app/mappin/pkg/config"
)

// ErrRateLimited is returned when rate limit retries are exhausted
var ErrRateLimited = errors.New("llm rate limited")

// errPermanent stops the retry loop for anything except rate limits
var errPermanent = errors.New("permanent llm error")

type permanentError struct{ err error }

func (e *permanentError) Error() string   { return e.err.Error() }
func (e *permanentError) Unwrap() []error { return []error{e.err, errPermanent} }

// Client is a thin wrapper over go-openai with rate limit retries
type Client struct {
	api    *openai.Client
	config config.LLMConfig
}

// NewClient creates a new LLM client
func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{api: openai.NewClientWithConfig(clientConfig), config: cfg}
}

// Model returns the configured model name
func (c *Client) Model() string { return c.config.Model }

// Complete sends system and user messages and returns the content of the first choice.
// Rate limit responses are retried with linear backoff, other failures return at once.
// The JSON response format is requested only for jsonOut calls with json mode enabled.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int, jsonOut bool) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}
	chatReq := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	if jsonOut && c.config.UseJSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var content string
	attempt := 0
	err := c.retrier().Do(ctx, func() error {
		attempt++
		resp, err := c.api.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			if IsRateLimit(err) {
				log.Printf("[WARN] llm rate limited, attempt %d of %d", attempt, c.config.Retries+1)
				return err // repeater will retry this
			}
			return &permanentError{err: fmt.Errorf("llm request failed: %w", err)}
		}
		if len(resp.Choices) == 0 {
			return &permanentError{err: errors.New("no response from llm")}
		}
		content = resp.Choices[0].Message.Content
		return nil
	}, errPermanent)

	switch {
	case err == nil:
		return content, nil
	case errors.Is(err, errPermanent):
		return "", err
	case IsRateLimit(err):
		return "", fmt.Errorf("%w after %d attempts: %w", ErrRateLimited, attempt, err)
	default:
		return "", fmt.Errorf("llm request failed: %w", err)
	}
}

// retrier waits delay, 2*delay, 3*delay ... between attempts
func (c *Client) retrier() *repeater.Repeater {
	delay := c.config.RetryDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	retries := max(c.config.Retries, 0)
	return repeater.NewBackoff(retries+1, delay,
		repeater.WithBackoffType(repeater.BackoffLinear),
		repeater.WithMaxDelay(time.Duration(retries+1)*delay),
		repeater.WithJitter(0),
	)
}

// IsRateLimit reports whether err is an HTTP 429 or a quota exhaustion response
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(err.Error(), "RESOURCE_EXHAUSTED")
}
