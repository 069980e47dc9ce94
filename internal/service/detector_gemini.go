package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cultura-llm/internal/llm"
)

const geminiDetectPrompt = `Identify the language of the following text. Reply with exactly two tokens separated by a space: the ISO 639-1 language code and your confidence between 0.0 and 1.0. Nothing else.

Text: %q`

// GeminiDetector delega la clasificacion al backend generativo. Solo se
// consulta cuando el cliente esta configurado; sus fallas se tratan como
// ausencia de lectura.
type GeminiDetector struct {
	client llm.GenerativeClient
}

func NewGeminiDetector(client llm.GenerativeClient) *GeminiDetector {
	return &GeminiDetector{client: client}
}

func (d *GeminiDetector) Name() string { return "gemini" }

func (d *GeminiDetector) IsAvailable() bool {
	return d != nil && d.client != nil && d.client.IsAvailable()
}

func (d *GeminiDetector) Detect(ctx context.Context, text string) (string, float64, error) {
	if len(text) > 512 {
		text = text[:512]
	}

	raw, err := d.client.GenerateText(ctx, fmt.Sprintf(geminiDetectPrompt, text), nil)
	if err != nil {
		return "", 0, err
	}

	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) < 2 {
		return "", 0, nil
	}

	code := normalizeLang(fields[0])
	if len(code) < 2 || len(code) > 3 {
		return "", 0, nil
	}
	conf, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || conf < 0 || conf > 1 {
		return "", 0, nil
	}
	return code, conf, nil
}
