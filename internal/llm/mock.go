package llm

import (
	"context"

	"cultura-llm/internal/domain"
)

// MockClient permite tests sin llamar al backend real.
type MockClient struct {
	TextResponse     string
	AnalysisResponse string
	ImageResponse    []byte
	Embedding        []float32
	Err              error
	Unavailable      bool

	LastPrompt  string
	LastHistory []domain.Message
}

func (m *MockClient) GenerateText(_ context.Context, prompt string, history []domain.Message) (string, error) {
	m.LastPrompt = prompt
	m.LastHistory = history
	return m.TextResponse, m.Err
}

func (m *MockClient) AnalyzeImage(_ context.Context, _ []byte, prompt string) (string, error) {
	m.LastPrompt = prompt
	return m.AnalysisResponse, m.Err
}

func (m *MockClient) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	m.LastPrompt = prompt
	return m.ImageResponse, m.Err
}

func (m *MockClient) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return m.Embedding, m.Err
}

func (m *MockClient) IsAvailable() bool {
	return !m.Unavailable
}
