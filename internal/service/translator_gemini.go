package service

import (
	"context"
	"fmt"
	"strings"

	"cultura-llm/internal/llm"
)

const geminiTranslatePrompt = `Translate the following text from %s to %s. Preserve tone, formality and formatting. Reply with the translation only, no preamble.

%s`

// GeminiTranslator es el tier de mayor calidad: traduce via el modelo
// generativo cuando el cliente esta cargado.
type GeminiTranslator struct {
	client llm.GenerativeClient
}

func NewGeminiTranslator(client llm.GenerativeClient) *GeminiTranslator {
	return &GeminiTranslator{client: client}
}

func (t *GeminiTranslator) Name() string { return "gemini" }

func (t *GeminiTranslator) IsAvailable() bool {
	return t != nil && t.client != nil && t.client.IsAvailable()
}

func (t *GeminiTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	source := languageInfoName(normalizeLang(sourceLang))
	target := languageInfoName(normalizeLang(targetLang))

	prompt := fmt.Sprintf(geminiTranslatePrompt, source, target, text)
	translated, err := t.client.GenerateText(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("gemini translate: %w", err)
	}
	return strings.TrimSpace(translated), nil
}
