package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cultura-llm/internal/llm"
)

const geminiSentimentPrompt = `Classify the sentiment of the following %s text. Reply with exactly two tokens separated by a space: one of positive/negative/neutral and your confidence between 0.0 and 1.0. Nothing else.

%s`

// SentimentResult es la clasificacion de sentimiento de un texto.
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language,omitempty"`
}

var neutralSentiment = SentimentResult{Sentiment: "neutral", Confidence: 0.0}

// SentimentService clasifica sentimiento via el backend generativo y
// degrada a neutral cuando no hay analizador disponible. Nunca bloquea
// una respuesta del pipeline.
type SentimentService struct {
	client llm.GenerativeClient
}

func NewSentimentService(client llm.GenerativeClient) *SentimentService {
	return &SentimentService{client: client}
}

func (s *SentimentService) IsAvailable() bool {
	return s != nil && s.client != nil && s.client.IsAvailable()
}

func (s *SentimentService) Analyze(ctx context.Context, text, language string) SentimentResult {
	if strings.TrimSpace(text) == "" || !s.IsAvailable() {
		return neutralSentiment
	}

	langName := languageInfoName(normalizeLang(language))
	raw, err := s.client.GenerateText(ctx, fmt.Sprintf(geminiSentimentPrompt, langName, text), nil)
	if err != nil {
		return neutralSentiment
	}

	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) < 2 {
		return neutralSentiment
	}

	label := fields[0]
	if label != "positive" && label != "negative" && label != "neutral" {
		return neutralSentiment
	}
	conf, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || conf < 0 || conf > 1 {
		return neutralSentiment
	}

	return SentimentResult{Sentiment: label, Confidence: conf, Language: normalizeLang(language)}
}
