package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator produces draft text with an OpenAI chat completion
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	instruction string
}

// NewOpenAIGenerator creates a generator using apiKey and model.
func NewOpenAIGenerator(apiKey, model, instruction string) (*OpenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return newOpenAIGenerator(openai.NewClient(apiKey), model, instruction), nil
}

// NewOpenAIGeneratorWithBaseURL points the generator at an OpenAI-compatible endpoint.
func NewOpenAIGeneratorWithBaseURL(apiKey, baseURL, model, instruction string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return newOpenAIGenerator(openai.NewClientWithConfig(cfg), model, instruction)
}

func newOpenAIGenerator(client *openai.Client, model, instruction string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{client: client, model: model, instruction: instruction}
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return "openai"
}

// Generate asks the model for the draft JSON and returns the raw content.
func (g *OpenAIGenerator) Generate(ctx context.Context, transcript string) (string, error) {
	systemPrompt, userPrompt := BuildPrompt(transcript, g.instruction)

	log.Printf("[OpenAI] Generating draft with model %s, transcript length %d", g.model, len(transcript))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	log.Printf("[OpenAI] Usage - Prompt tokens: %d, Completion tokens: %d, Total tokens: %d",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: OpenAI returned no choices", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
