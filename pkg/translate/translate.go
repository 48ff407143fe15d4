// Package translate provides best-effort title translation.
package translate

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/soundprediction/globescope/pkg/config"
)

// Translator translates short strings. Implementations are best-effort:
// callers fall back to the original text on error and never propagate it.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// OpenAITranslator implements Translator with a chat completion. Titles are
// short, so a single small-model call per title is cheap enough.
type OpenAITranslator struct {
	client         *openai.Client
	model          string
	targetLanguage string
}

var _ Translator = (*OpenAITranslator)(nil)

// NewOpenAITranslator creates a translator from config.
func NewOpenAITranslator(cfg config.TranslationConfig) *OpenAITranslator {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	target := cfg.TargetLanguage
	if target == "" {
		target = "English"
	}

	return &OpenAITranslator{
		client:         openai.NewClientWithConfig(apiCfg),
		model:          model,
		targetLanguage: target,
	}
}

// Translate implements Translator.
func (t *OpenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Translate the news headline the user sends into %s. "+
						"Reply with the translated headline only, no quotes, no commentary.",
					t.targetLanguage),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("translate title: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translate title: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
