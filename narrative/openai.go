package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

const systemPrompt = `You are a strategy advisor. Given a scenario, the move with the highest
expected value, and that value, explain in two sentences why the move is the
strongest choice. Do not invent numbers other than the ones provided.`

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 20 * time.Second
)

type OpenAIOption func(g *OpenAI)

func WithModel(model string) OpenAIOption {
	return func(g *OpenAI) {
		if model != "" {
			g.model = model
		}
	}
}

func WithBaseURL(url string) OpenAIOption {
	return func(g *OpenAI) {
		if url != "" {
			g.requestOptions = append(g.requestOptions, option.WithBaseURL(url))
		}
	}
}

func WithTimeout(timeout time.Duration) OpenAIOption {
	return func(g *OpenAI) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

func WithMaxRetries(retries int) OpenAIOption {
	return func(g *OpenAI) {
		if retries >= 0 {
			g.requestOptions = append(g.requestOptions, option.WithMaxRetries(retries))
		}
	}
}

// OpenAI generates justifications with a chat completion model.
type OpenAI struct {
	client         openai.Client
	model          string
	timeout        time.Duration
	requestOptions []option.RequestOption
}

func NewOpenAI(apiKey string, options ...OpenAIOption) *OpenAI {
	g := &OpenAI{ // Default values
		model:   defaultModel,
		timeout: defaultTimeout,
	}
	for _, opt := range options {
		opt(g)
	}
	g.client = openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, g.requestOptions...)...)
	return g
}

func (g *OpenAI) Justify(ctx context.Context, req Request) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.generate(ctx, buildUserPrompt(req))
	if err != nil {
		log.Warn().Err(err).Str("model", g.model).Msg("narrative generation failed")
		return Unavailable
	}
	return text
}

func (g *OpenAI) generate(ctx context.Context, user string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("chat completion: empty content")
	}
	return text, nil
}

func buildUserPrompt(req Request) string {
	return fmt.Sprintf("Scenario: %s\nBest move: %s\nWeighted expected value: %.2f", req.Scenario, req.BestMove, req.WeightedEV)
}
