package llm

import (
	"context"
	"errors"

	"cultura-llm/internal/domain"
)

// GenerativeClient define la interfaz hacia el backend generativo.
// Cada capacidad es opcional: el pipeline consulta IsAvailable antes de
// depender del backend en lugar de inspeccionar el tipo concreto.
type GenerativeClient interface {
	GenerateText(ctx context.Context, prompt string, history []domain.Message) (string, error)
	AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
	IsAvailable() bool
}

var (
	ErrClientUnavailable = errors.New("generative client not configured")
	ErrEmptyResponse     = errors.New("generative backend returned empty response")
	ErrNoImage           = errors.New("generative backend returned no image data")
)
