package translate

import (
	"context"
	"fmt"
	"strings"

	"bhasharag/internal/lang"
	"bhasharag/internal/upstream/openai"
)

const translateSystemPrompt = `You are a translation engine for English, Hindi and Telugu.

Output rules:
- Return ONLY the translated text, nothing else.
- Do not add explanations, transliterations, or quotation marks.
- Preserve names, numbers, and formatting such as bullet lists.`

type ChatClient interface {
	ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider translates through an OpenAI-compatible chat completions API.
type OpenAIProvider struct {
	client ChatClient
	model  string
}

func NewOpenAIProvider(client ChatClient, model string) *OpenAIProvider {
	return &OpenAIProvider{client: client, model: strings.TrimSpace(model)}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Translate(ctx context.Context, req Request) (string, error) {
	userMessage := fmt.Sprintf("Translate the following text from %s to %s:\n\n%s",
		lang.Name(req.SourceLang), lang.Name(req.TargetLang), req.Text)

	resp, err := p.client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.0,
		Messages: []openai.ChatMessage{
			{Role: "system", Content: translateSystemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", err
	}
	return sanitizeTranslation(resp.Content), nil
}

func sanitizeTranslation(value string) string {
	result := strings.TrimSpace(value)
	if strings.HasPrefix(result, "\"") && strings.HasSuffix(result, "\"") && len(result) > 1 {
		result = strings.TrimSpace(strings.TrimPrefix(strings.TrimSuffix(result, "\""), "\""))
	}
	return result
}
