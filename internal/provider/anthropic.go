package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultMaxTokens = 1024

// Anthropic implements Generator using the official Anthropic SDK.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropic creates an Anthropic generator.
func NewAnthropic(apiKey, model string, maxTokens int) *Anthropic {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Anthropic{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// ID returns the provider identifier
func (p *Anthropic) ID() string {
	return "anthropic"
}

// Generate sends a single messages request and concatenates the text blocks
// of the reply.
func (p *Anthropic) Generate(ctx context.Context, prompt, system string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", wrapErr(p.ID(), err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", wrapErr(p.ID(), fmt.Errorf("empty response (no text blocks)"))
	}
	return sb.String(), nil
}
