package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAI implements Generator using the official OpenAI SDK.
type OpenAI struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOpenAI creates an OpenAI generator.
func NewOpenAI(apiKey, model string, maxTokens int, temperature float64) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// ID returns the provider identifier
func (p *OpenAI) ID() string {
	return "openai"
}

// Generate sends a single chat completion request and returns the text of
// the first choice.
func (p *OpenAI) Generate(ctx context.Context, prompt, system string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	}
	if p.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(p.maxTokens))
	}
	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapErr(p.ID(), err)
	}
	if len(resp.Choices) == 0 {
		return "", wrapErr(p.ID(), fmt.Errorf("empty response (no choices)"))
	}
	return resp.Choices[0].Message.Content, nil
}
